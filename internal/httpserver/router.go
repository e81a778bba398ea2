package httpserver

import (
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/ikhfad/sporton-backend/internal/middleware/auth"
	"github.com/ikhfad/sporton-backend/internal/storage"
)

type Deps struct {
	JWTSecret          []byte
	UploadDir          string
	AuthHandler        *AuthHTTP
	CategoryHandler    *CategoryHTTP
	ProductHandler     *ProductHTTP
	BankHandler        *BankHTTP
	TransactionHandler *TransactionHTTP
	SearchHandler      *SearchHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	// uploaded assets are served under the same relative references the
	// records store
	e.Static("/categories", filepath.Join(d.UploadDir, storage.KindCategories))
	e.Static("/products", filepath.Join(d.UploadDir, storage.KindProducts))
	e.Static("/transactions", filepath.Join(d.UploadDir, storage.KindTransactions))

	requireAuth := auth.RequireAuth(d.JWTSecret)

	api := e.Group("/api")

	api.POST("/auth/signin", d.AuthHandler.SignIn)
	api.POST("/auth/initiate-admin-user", d.AuthHandler.InitiateAdmin)

	categories := api.Group("/categories")
	categories.GET("", d.CategoryHandler.GetCategories)
	categories.GET("/:id", d.CategoryHandler.GetCategory)
	categories.POST("", d.CategoryHandler.CreateCategory, requireAuth)
	categories.PATCH("/:id", d.CategoryHandler.UpdateCategory, requireAuth)
	categories.DELETE("/:id", d.CategoryHandler.DeleteCategory, requireAuth)

	products := api.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct, requireAuth)
	products.PATCH("/:id", d.ProductHandler.UpdateProduct, requireAuth)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, requireAuth)

	banks := api.Group("/banks")
	banks.GET("", d.BankHandler.GetBanks)
	banks.GET("/:id", d.BankHandler.GetBank)
	banks.POST("", d.BankHandler.CreateBank, requireAuth)
	banks.PATCH("/:id", d.BankHandler.UpdateBank, requireAuth)
	banks.DELETE("/:id", d.BankHandler.DeleteBank, requireAuth)

	transactions := api.Group("/transactions")
	transactions.GET("", d.TransactionHandler.GetTransactions, requireAuth)
	transactions.GET("/:id", d.TransactionHandler.GetTransaction, requireAuth)
	transactions.POST("", d.TransactionHandler.CreateTransaction)
	transactions.PATCH("/:id", d.TransactionHandler.UpdateStatus, requireAuth)

	if d.SearchHandler != nil {
		api.GET("/search", d.SearchHandler.Search)
	}
}
