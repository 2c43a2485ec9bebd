package server

import (
	"github.com/kaushiks90/DevConnector/internal/middleware"
	"github.com/kaushiks90/DevConnector/internal/models"
	"github.com/kaushiks90/DevConnector/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const postNotFoundMsg = "No post found"

// GetPosts returns the public feed, newest first.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	posts, err := s.postRepo.List(c.UserContext(), limit, offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return c.JSON(posts)
}

// GetPost returns a single post with its likes and comments.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id", "postnotfound", postNotFoundMsg)
	if err != nil {
		if err == errResponseWritten {
			return nil
		}
		return err
	}

	post, err := s.postRepo.GetByID(c.UserContext(), postID)
	if err != nil {
		if models.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"postnotfound": postNotFoundMsg})
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(post)
}

// CreatePost publishes a post under the authenticated user. The author
// snapshot falls back to the token's name/avatar claims when the body omits
// them.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var form validation.PostForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs, ok := validation.Check(&form); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	ctx := c.UserContext()
	userID := currentUserID(c)

	name := form.Name
	if name == "" {
		name, _ = c.Locals("name").(string)
	}
	avatar := form.Avatar
	if avatar == "" {
		avatar, _ = c.Locals("avatar").(string)
	}

	post := &models.Post{
		Text:   form.Text,
		Name:   name,
		Avatar: avatar,
		UserID: userID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	middleware.Logger.InfoContext(ctx, "post created", "post_id", post.ID)

	return s.respondWithPost(c, post.ID)
}

// DeletePost removes a post. Only the author may delete it, and the author
// must still have a profile.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id", "postnotfound", postNotFoundMsg)
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
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"notauthorized": "User is not authorized",
		})
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if models.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"postnotfound": postNotFoundMsg})
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if post.UserID != userID {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"notauthorized": "User is not authorized",
		})
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	middleware.Logger.InfoContext(ctx, "post deleted", "post_id", postID)

	return c.JSON(fiber.Map{"success": true})
}

// LikePost records a like. Liking the same post twice is rejected.
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id", "postnotfound", postNotFoundMsg)
	if err != nil {
		if err == errResponseWritten {
			return nil
		}
		return err
	}

	ctx := c.UserContext()
	userID := currentUserID(c)

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if models.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"postnotfound": postNotFoundMsg})
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if liked {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"alreadyliked": "User already liked this post",
		})
	}

	if err := s.postRepo.Like(ctx, userID, postID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return s.respondWithPost(c, postID)
}

// UnlikePost removes an existing like. Unliking a post that was never liked
// is rejected.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id", "postnotfound", postNotFoundMsg)
	if err != nil {
		if err == errResponseWritten {
			return nil
		}
		return err
	}

	ctx := c.UserContext()
	userID := currentUserID(c)

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if models.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"postnotfound": postNotFoundMsg})
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if !liked {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"notliked": "User has not yet liked this post",
		})
	}

	if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return s.respondWithPost(c, postID)
}

// CreateComment adds a comment to a post.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id", "postnotfound", postNotFoundMsg)
	if err != nil {
		if err == errResponseWritten {
			return nil
		}
		return err
	}

	var form validation.PostForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs, ok := validation.Check(&form); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	ctx := c.UserContext()
	userID := currentUserID(c)

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if models.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"postnotfound": postNotFoundMsg})
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	name := form.Name
	if name == "" {
		name, _ = c.Locals("name").(string)
	}
	avatar := form.Avatar
	if avatar == "" {
		avatar, _ = c.Locals("avatar").(string)
	}

	comment := &models.Comment{
		PostID: postID,
		Text:   form.Text,
		Name:   name,
		Avatar: avatar,
		UserID: userID,
	}
	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return s.respondWithPost(c, postID)
}

// DeleteComment removes a comment from a post.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id", "postnotfound", postNotFoundMsg)
	if err != nil {
		if err == errResponseWritten {
			return nil
		}
		return err
	}
	commentID, err := parseID(c, "comment_id", "commentnotexists", "Comment does not exist")
	if err != nil {
		if err == errResponseWritten {
			return nil
		}
		return err
	}

	ctx := c.UserContext()

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if models.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"postnotfound": postNotFoundMsg})
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	exists, err := s.postRepo.HasComment(ctx, postID, commentID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if !exists {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"commentnotexists": "Comment does not exist",
		})
	}

	if err := s.postRepo.RemoveComment(ctx, postID, commentID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return s.respondWithPost(c, postID)
}

// respondWithPost reloads the post and writes it, so mutations return the
// full updated document.
func (s *Server) respondWithPost(c *fiber.Ctx, postID uint) error {
	post, err := s.postRepo.GetByID(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(post)
}
