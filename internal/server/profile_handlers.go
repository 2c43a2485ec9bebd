package server

import (
	"github.com/kaushiks90/DevConnector/internal/middleware"
	"github.com/kaushiks90/DevConnector/internal/models"
	"github.com/kaushiks90/DevConnector/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const noProfileMsg = "There is no profile for this user"

// GetCurrentProfile returns the authenticated user's profile.
func (s *Server) GetCurrentProfile(c *fiber.Ctx) error {
	profile, err := s.profileRepo.GetByUserID(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if profile == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"noprofile": noProfileMsg})
	}
	return c.JSON(profile)
}

// GetAllProfiles returns every profile, newest first.
func (s *Server) GetAllProfiles(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	profiles, err := s.profileRepo.GetAll(c.UserContext(), limit, offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if len(profiles) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"noprofile": "There are no profiles"})
	}
	return c.JSON(profiles)
}

// GetProfileByHandle looks a profile up by its unique handle.
func (s *Server) GetProfileByHandle(c *fiber.Ctx) error {
	profile, err := s.profileRepo.GetByHandle(c.UserContext(), c.Params("handle"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if profile == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"noprofile": noProfileMsg})
	}
	return c.JSON(profile)
}

// GetProfileByUserID looks a profile up by the owning user's id.
func (s *Server) GetProfileByUserID(c *fiber.Ctx) error {
	userID, err := parseID(c, "user_id", "noprofile", noProfileMsg)
	if err != nil {
		if err == errResponseWritten {
			return nil
		}
		return err
	}

	profile, err := s.profileRepo.GetByUserID(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if profile == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"noprofile": noProfileMsg})
	}
	return c.JSON(profile)
}

// UpsertProfile creates the authenticated user's profile or updates the
// existing one. Optional fields that arrive empty keep their stored value.
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var form validation.ProfileForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs, ok := validation.Check(&form); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	ctx := c.UserContext()
	userID := currentUserID(c)

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	creating := profile == nil
	if creating {
		profile = &models.Profile{UserID: userID}
	}

	taken, err := s.profileRepo.HandleTaken(ctx, form.Handle, profile.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if taken {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"handle": "That handle already exists",
		})
	}

	profile.Handle = form.Handle
	profile.Status = form.Status
	profile.Skills = splitSkills(form.Skills)
	applyIfSet(&profile.Company, form.Company)
	applyIfSet(&profile.Website, form.Website)
	applyIfSet(&profile.Location, form.Location)
	applyIfSet(&profile.Bio, form.Bio)
	applyIfSet(&profile.GithubUsername, form.GithubUsername)
	applyIfSet(&profile.Social.Youtube, form.Youtube)
	applyIfSet(&profile.Social.Twitter, form.Twitter)
	applyIfSet(&profile.Social.Facebook, form.Facebook)
	applyIfSet(&profile.Social.LinkedIn, form.LinkedIn)
	applyIfSet(&profile.Social.Instagram, form.Instagram)

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		if models.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"handle": "That handle already exists",
			})
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if creating {
		middleware.Logger.InfoContext(ctx, "profile created", "user_id", userID, "handle", profile.Handle)
	}

	saved, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(saved)
}

// AddExperience prepends a work history entry to the user's profile.
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var form validation.ExperienceForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs, ok := validation.Check(&form); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	ctx := c.UserContext()
	userID := currentUserID(c)

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if profile == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"noprofile": noProfileMsg})
	}

	exp := &models.Experience{
		Title:       form.Title,
		Company:     form.Company,
		Location:    form.Location,
		From:        form.From,
		To:          form.To,
		Current:     form.Current,
		Description: form.Description,
	}
	if err := s.profileRepo.AddExperience(ctx, profile, exp); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return s.respondWithProfile(c, userID)
}

// DeleteExperience removes an experience entry; an unknown id is a no-op.
func (s *Server) DeleteExperience(c *fiber.Ctx) error {
	expID, err := parseID(c, "exp_id", "experiencenotfound", "Experience entry not found")
	if err != nil {
		if err == errResponseWritten {
			return nil
		}
		return err
	}

	ctx := c.UserContext()
	userID := currentUserID(c)

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if profile == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"noprofile": noProfileMsg})
	}

	if err := s.profileRepo.RemoveExperience(ctx, profile, expID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return s.respondWithProfile(c, userID)
}

// AddEducation prepends a schooling entry to the user's profile.
func (s *Server) AddEducation(c *fiber.Ctx) error {
	var form validation.EducationForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs, ok := validation.Check(&form); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	ctx := c.UserContext()
	userID := currentUserID(c)

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if profile == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"noprofile": noProfileMsg})
	}

	edu := &models.Education{
		School:       form.School,
		Degree:       form.Degree,
		FieldOfStudy: form.FieldOfStudy,
		From:         form.From,
		To:           form.To,
		Current:      form.Current,
		Description:  form.Description,
	}
	if err := s.profileRepo.AddEducation(ctx, profile, edu); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return s.respondWithProfile(c, userID)
}

// DeleteEducation removes an education entry; an unknown id is a no-op.
func (s *Server) DeleteEducation(c *fiber.Ctx) error {
	eduID, err := parseID(c, "edu_id", "educationnotfound", "Education entry not found")
	if err != nil {
		if err == errResponseWritten {
			return nil
		}
		return err
	}

	ctx := c.UserContext()
	userID := currentUserID(c)

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if profile == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"noprofile": noProfileMsg})
	}

	if err := s.profileRepo.RemoveEducation(ctx, profile, eduID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return s.respondWithProfile(c, userID)
}

// DeleteAccount removes the user's profile and account in one call.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := currentUserID(c)

	if err := s.profileRepo.DeleteByUserID(ctx, userID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	middleware.Logger.InfoContext(ctx, "account deleted", "user_id", userID)

	return c.JSON(fiber.Map{"success": true})
}

// respondWithProfile reloads the profile and writes it, so mutations return
// the full updated document.
func (s *Server) respondWithProfile(c *fiber.Ctx, userID uint) error {
	profile, err := s.profileRepo.GetByUserID(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(profile)
}

// applyIfSet overwrites dst only when the incoming value is non-empty,
// preserving stored values for fields the client omitted.
func applyIfSet(dst *string, val string) {
	if val != "" {
		*dst = val
	}
}
