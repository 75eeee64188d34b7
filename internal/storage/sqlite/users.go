package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
	"github.com/polkiloo/pontobip/internal/domain/model"
)

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if user.Role == "" {
		user.Role = model.DefaultRole
	}

	rec := userRecord{
		ID:           user.ID,
		Name:         user.Name,
		Login:        user.Login,
		PasswordHash: user.PasswordHash,
		AvatarURL:    user.AvatarURL,
		Balance:      user.Balance,
		Role:         string(user.Role),
		CreatedAt:    user.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).Where("login = ?", login).First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	u := rec.toModel()
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	u := rec.toModel()
	return &u, nil
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id, url string) error {
	return r.updateColumn(ctx, id, "avatar_url", url)
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	return r.updateColumn(ctx, id, "password_hash", hash)
}

func (r *userRepository) updateColumn(ctx context.Context, id, column string, value any) error {
	res := r.db.WithContext(ctx).Model(&userRecord{}).Where("id = ?", id).UpdateColumn(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	var recs []userRecord
	if err := r.db.WithContext(ctx).Where("role = ?", string(role)).Order("name ASC, id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	users := make([]model.User, 0, len(recs))
	for _, rec := range recs {
		users = append(users, rec.toModel())
	}
	return users, nil
}

// DeleteByRole removes the user and its events only when it holds role.
func (r *userRepository) DeleteByRole(ctx context.Context, id string, role model.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND role = ?", id, string(role)).Delete(&userRecord{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domainErrors.ErrNotFound
		}
		return tx.Where("user_id = ?", id).Delete(&pointRecord{}).Error
	})
}
