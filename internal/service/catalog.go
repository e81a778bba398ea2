package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ikhfad/sporton-backend/internal/models"
	"github.com/ikhfad/sporton-backend/internal/repo"
	"github.com/ikhfad/sporton-backend/internal/transport"
)

// CatalogService owns categories and products. Every mutation that also
// touched the upload store cleans up after itself: a freshly stored image is
// removed when the DB write fails, and a replaced image is removed only
// after the DB write succeeded.
type CatalogService struct {
	Repo   *repo.GormRepo
	Assets AssetStore
}

func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return s.Repo.GetCategory(ctx, id)
}

func (s *CatalogService) GetCategories(ctx context.Context, offset, limit int) (int64, []models.Category, error) {
	return s.Repo.GetCategories(ctx, offset, limit)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest, imageRef string) (*models.Category, error) {
	if req.Name == "" {
		s.Assets.Remove(ctx, imageRef)
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    imageRef,
	}

	if err := s.Repo.CreateCategory(ctx, category); err != nil {
		s.Assets.Remove(ctx, imageRef)
		return nil, err
	}

	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req transport.UpdateCategoryRequest, newImageRef string) (*models.Category, error) {
	category, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		s.Assets.Remove(ctx, newImageRef)
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			s.Assets.Remove(ctx, newImageRef)
			return nil, fmt.Errorf("%w: name required", ErrValidation)
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	oldImageRef := ""
	if newImageRef != "" {
		oldImageRef = category.ImageURL
		category.ImageURL = newImageRef
	}

	if err := s.Repo.SaveCategory(ctx, category); err != nil {
		s.Assets.Remove(ctx, newImageRef)
		return nil, err
	}

	// the record now points at the new image, the old file is orphaned
	if oldImageRef != "" && oldImageRef != newImageRef {
		s.Assets.Remove(ctx, oldImageRef)
	}

	return category, nil
}

// DeleteCategory removes the category and its image. Products referencing
// the category keep their category_id; readers treat the dangling reference
// as uncategorized.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		return err
	}

	s.Assets.Remove(ctx, category.ImageURL)
	return nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *CatalogService) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, offset, limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest, imageRef string) (*models.Product, error) {
	if err := validateProduct(req); err != nil {
		s.Assets.Remove(ctx, imageRef)
		return nil, err
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		s.Assets.Remove(ctx, imageRef)
		return nil, fmt.Errorf("%w: category_id is not a uuid", ErrValidation)
	}

	if _, err := s.Repo.GetCategory(ctx, categoryID); err != nil {
		s.Assets.Remove(ctx, imageRef)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category does not exist", ErrValidation)
		}
		return nil, err
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  categoryID,
		ImageURL:    imageRef,
	}

	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		s.Assets.Remove(ctx, imageRef)
		return nil, err
	}

	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req transport.UpdateProductRequest, newImageRef string) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		s.Assets.Remove(ctx, newImageRef)
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			s.Assets.Remove(ctx, newImageRef)
			return nil, fmt.Errorf("%w: name required", ErrValidation)
		}
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			s.Assets.Remove(ctx, newImageRef)
			return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
		}
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			s.Assets.Remove(ctx, newImageRef)
			return nil, fmt.Errorf("%w: category_id is not a uuid", ErrValidation)
		}
		product.CategoryID = categoryID
		product.Category = nil
	}

	oldImageRef := ""
	if newImageRef != "" {
		oldImageRef = product.ImageURL
		product.ImageURL = newImageRef
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		s.Assets.Remove(ctx, newImageRef)
		return nil, err
	}

	if oldImageRef != "" && oldImageRef != newImageRef {
		s.Assets.Remove(ctx, oldImageRef)
	}

	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.Assets.Remove(ctx, product.ImageURL)
	return nil
}

func validateProduct(req transport.CreateProductRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if req.CategoryID == "" {
		return fmt.Errorf("%w: category_id required", ErrValidation)
	}
	return nil
}
