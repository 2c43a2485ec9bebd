package repository

import (
	"context"
	"errors"

	"github.com/kaushiks90/DevConnector/internal/cache"
	"github.com/kaushiks90/DevConnector/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for profiles and their
// owned experience/education entries.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	GetByHandle(ctx context.Context, handle string) (*models.Profile, error)
	GetAll(ctx context.Context, limit, offset int) ([]*models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) error
	HandleTaken(ctx context.Context, handle string, excludeProfileID uint) (bool, error)
	AddExperience(ctx context.Context, profile *models.Profile, exp *models.Experience) error
	RemoveExperience(ctx context.Context, profile *models.Profile, expID uint) error
	AddEducation(ctx context.Context, profile *models.Profile, edu *models.Education) error
	RemoveEducation(ctx context.Context, profile *models.Profile, eduID uint) error
	DeleteByUserID(ctx context.Context, userID uint) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// withAssociations preloads the owning user (name and avatar only) and the
// child lists in newest-first order, matching the prepend semantics clients
// expect.
func (r *profileRepository) withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "avatar")
		}).
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		})
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	key := cache.ProfileKey(userID)

	found := true
	err := cache.Aside(ctx, key, &profile, cache.ProfileTTL, func() error {
		if err := r.withAssociations(r.db.WithContext(ctx)).
			Where("user_id = ?", userID).
			First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				found = false
				return nil
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found || profile.ID == 0 {
		return nil, nil
	}
	return &profile, nil
}

func (r *profileRepository) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.withAssociations(r.db.WithContext(ctx)).
		Where("handle = ?", handle).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) GetAll(ctx context.Context, limit, offset int) ([]*models.Profile, error) {
	var profiles []*models.Profile
	if err := r.withAssociations(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

// Save creates or updates the profile row itself. Child lists are managed
// through the Add/Remove methods, so association saving stays off.
func (r *profileRepository) Save(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).
		Omit("User", "Experience", "Education").
		Save(profile).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("That handle already exists")
		}
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ProfileKey(profile.UserID))
	return nil
}

func (r *profileRepository) HandleTaken(ctx context.Context, handle string, excludeProfileID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("handle = ?", handle)
	if excludeProfileID != 0 {
		query = query.Where("id <> ?", excludeProfileID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *profileRepository) AddExperience(ctx context.Context, profile *models.Profile, exp *models.Experience) error {
	exp.ProfileID = profile.ID
	if err := r.db.WithContext(ctx).Create(exp).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ProfileKey(profile.UserID))
	return nil
}

// RemoveExperience deletes the entry by id within the profile. Removing an id
// that does not exist is a no-op, not an error.
func (r *profileRepository) RemoveExperience(ctx context.Context, profile *models.Profile, expID uint) error {
	if err := r.db.WithContext(ctx).
		Where("profile_id = ? AND id = ?", profile.ID, expID).
		Delete(&models.Experience{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ProfileKey(profile.UserID))
	return nil
}

func (r *profileRepository) AddEducation(ctx context.Context, profile *models.Profile, edu *models.Education) error {
	edu.ProfileID = profile.ID
	if err := r.db.WithContext(ctx).Create(edu).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ProfileKey(profile.UserID))
	return nil
}

func (r *profileRepository) RemoveEducation(ctx context.Context, profile *models.Profile, eduID uint) error {
	if err := r.db.WithContext(ctx).
		Where("profile_id = ? AND id = ?", profile.ID, eduID).
		Delete(&models.Education{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ProfileKey(profile.UserID))
	return nil
}

func (r *profileRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return models.NewInternalError(err)
	}

	// Child rows go first so the delete works without FK cascade support.
	if err := r.db.WithContext(ctx).Where("profile_id = ?", profile.ID).Delete(&models.Experience{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Where("profile_id = ?", profile.ID).Delete(&models.Education{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Delete(&models.Profile{}, profile.ID).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ProfileKey(userID))
	return nil
}
