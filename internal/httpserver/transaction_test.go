package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ikhfad/sporton-backend/internal/config"
	"github.com/ikhfad/sporton-backend/internal/models"
	"github.com/ikhfad/sporton-backend/internal/repo"
	"github.com/ikhfad/sporton-backend/internal/service"
	"github.com/ikhfad/sporton-backend/internal/storage"
)

type testEnv struct {
	E      *echo.Echo
	DB     *gorm.DB
	Assets *storage.Store
	Trx    *TransactionHTTP
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))

	assets, err := storage.New(t.TempDir())
	require.NoError(t, err)

	r := &repo.GormRepo{DB: db}
	return &testEnv{
		E:      echo.New(),
		DB:     db,
		Assets: assets,
		Trx: &TransactionHTTP{
			Svc:    &service.TransactionService{Repo: r, Assets: assets},
			Assets: assets,
		},
	}
}

func (env *testEnv) seedProduct(t *testing.T, stock uint) *models.Product {
	t.Helper()
	category := &models.Category{Name: "balls"}
	require.NoError(t, env.DB.Create(category).Error)
	product := &models.Product{Name: "football", Price: 100, Stock: stock, CategoryID: category.ID}
	require.NoError(t, env.DB.Create(product).Error)
	return product
}

func checkoutForm(t *testing.T, items string, withProof bool) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("customer_name", "Budi"))
	require.NoError(t, w.WriteField("customer_contact", "+62-812-0000-0000"))
	require.NoError(t, w.WriteField("customer_address", "Jl. Merdeka 1, Jakarta"))
	require.NoError(t, w.WriteField("total_payment", "500"))
	require.NoError(t, w.WriteField("purchased_items", items))

	if withProof {
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{`form-data; name="payment_proof"; filename="proof.png"`}
		h["Content-Type"] = []string{"image/png"}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func (env *testEnv) doCreate(t *testing.T, items string, withProof bool) (*httptest.ResponseRecorder, error) {
	t.Helper()
	body, contentType := checkoutForm(t, items, withProof)
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, env.Trx.CreateTransaction(c)
}

func (env *testEnv) doUpdateStatus(t *testing.T, id, status string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	body, err := json.Marshal(map[string]string{"status": status})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPatch, "/api/transactions/"+id, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return rec, env.Trx.UpdateStatus(c)
}

func proofFiles(t *testing.T, env *testEnv) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(env.Assets.Root, storage.KindTransactions))
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

func TestCreateTransactionHandler(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, 10)

	items := fmt.Sprintf(`[{"productId":%q,"qty":3}]`, product.ID)
	rec, err := env.doCreate(t, items, true)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.Transaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusPending, resp.Status)
	assert.True(t, strings.HasPrefix(resp.PaymentProof, "/transactions/"))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, product.ID, resp.Items[0].ProductID)

	assert.Len(t, proofFiles(t, env), 1)
}

func TestCreateTransactionHandler_MissingProof(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, 10)

	items := fmt.Sprintf(`[{"productId":%q,"qty":3}]`, product.ID)
	_, err := env.doCreate(t, items, false)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))

	var count int64
	require.NoError(t, env.DB.Model(&models.Transaction{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	assert.Empty(t, proofFiles(t, env))
}

func TestCreateTransactionHandler_BadItems_CleansUpStoredProof(t *testing.T) {
	env := newTestEnv(t)

	for _, items := range []string{"not-json", "[]"} {
		_, err := env.doCreate(t, items, true)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	}

	// the proof was stored before validation, then cleaned up again
	assert.Empty(t, proofFiles(t, env))
}

func TestUpdateStatusHandler_Approve(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, 10)

	items := fmt.Sprintf(`[{"productId":%q,"qty":3}]`, product.ID)
	rec, err := env.doCreate(t, items, true)
	require.NoError(t, err)

	var created models.Transaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec, err = env.doUpdateStatus(t, created.ID.String(), "paid")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Transaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, models.StatusPaid, updated.Status)

	var p models.Product
	require.NoError(t, env.DB.First(&p, "id = ?", product.ID).Error)
	assert.EqualValues(t, 7, p.Stock)

	// second approval must not decrement again
	_, err = env.doUpdateStatus(t, created.ID.String(), "paid")
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, httpCode(t, err))

	require.NoError(t, env.DB.First(&p, "id = ?", product.ID).Error)
	assert.EqualValues(t, 7, p.Stock)
}

func TestUpdateStatusHandler_InsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, 2)

	items := fmt.Sprintf(`[{"productId":%q,"qty":3}]`, product.ID)
	rec, err := env.doCreate(t, items, true)
	require.NoError(t, err)

	var created models.Transaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	_, err = env.doUpdateStatus(t, created.ID.String(), "paid")
	require.Error(t, err)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Contains(t, fmt.Sprint(he.Message), "1 with insufficient stock")

	var p models.Product
	require.NoError(t, env.DB.First(&p, "id = ?", product.ID).Error)
	assert.EqualValues(t, 2, p.Stock)
}

func TestUpdateStatusHandler_Errors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		id     string
		status string
		code   int
	}{
		{name: "malformed id", id: "not-a-uuid", status: "paid", code: http.StatusBadRequest},
		{name: "unknown id", id: uuid.NewString(), status: "paid", code: http.StatusNotFound},
		{name: "invalid status", id: uuid.NewString(), status: "shipped", code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.doUpdateStatus(t, tt.id, tt.status)
			require.Error(t, err)
			assert.Equal(t, tt.code, httpCode(t, err))
		})
	}
}
