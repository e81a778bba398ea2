package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ikhfad/sporton-backend/internal/models"
)

func (r *GormRepo) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category := models.Category{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormRepo) GetCategories(ctx context.Context, offset, limit int) (int64, []models.Category, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Category{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Category
	if err := r.DB.WithContext(ctx).Model(&models.Category{}).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.DB.WithContext(ctx).Create(category).Error
}

func (r *GormRepo) SaveCategory(ctx context.Context, category *models.Category) error {
	return r.DB.WithContext(ctx).Save(category).Error
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
