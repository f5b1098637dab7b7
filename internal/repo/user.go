package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skirsanov/gadgetshop/internal/models"
)

func (r *GormRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return r.DB.WithContext(ctx).Create(u).Error
}

func (r *GormRepo) SaveUser(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Save(u).Error
}

func (r *GormRepo) AddRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt int64) error {
	row := models.RefreshToken{
		ID:        uuid.New(),
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	return r.DB.WithContext(ctx).Create(&row).Error
}

// HasRefreshToken reports whether this exact token is still in the user's
// stored list. Missing row means revoked or never issued.
func (r *GormRepo) HasRefreshToken(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("user_id = ? AND token = ?", userID, token).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// RemoveRefreshToken deletes the exact token row. Deleting an absent token is
// a no-op, which keeps logout idempotent.
func (r *GormRepo) RemoveRefreshToken(ctx context.Context, userID uuid.UUID, token string) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&models.RefreshToken{}).Error
}
