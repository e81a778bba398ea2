package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/ikhfad/sporton-backend/internal/models"
)

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := models.User{}
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateFirstUser inserts the admin user only if no user exists yet. The
// count and the insert share one DB transaction, and the unique email index
// backs it up, so a concurrent bootstrap cannot slip a second admin in.
func (r *GormRepo) CreateFirstUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(user).Error
	})
}
