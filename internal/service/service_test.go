package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ikhfad/sporton-backend/internal/config"
	"github.com/ikhfad/sporton-backend/internal/models"
	"github.com/ikhfad/sporton-backend/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a fresh connection would see a fresh in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

// fakeAssets records removals so tests can assert compensating cleanup.
type fakeAssets struct {
	removed []string
}

func (f *fakeAssets) Remove(_ context.Context, ref string) {
	if ref != "" {
		f.removed = append(f.removed, ref)
	}
}

func createCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createProduct(t *testing.T, db *gorm.DB, name string, stock uint, category *models.Category) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:       name,
		Price:      100,
		Stock:      stock,
		CategoryID: category.ID,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func productStock(t *testing.T, db *gorm.DB, product *models.Product) uint {
	t.Helper()
	var p models.Product
	require.NoError(t, db.First(&p, "id = ?", product.ID).Error)
	return p.Stock
}

func newRandomID() uuid.UUID { return uuid.New() }

func newCatalogService(db *gorm.DB, assets *fakeAssets) *CatalogService {
	return &CatalogService{Repo: &repo.GormRepo{DB: db}, Assets: assets}
}

func newTransactionService(db *gorm.DB, assets *fakeAssets) *TransactionService {
	return &TransactionService{Repo: &repo.GormRepo{DB: db}, Assets: assets}
}
