package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	catalogapp "github.com/sobitas/backend/internal/application/catalog"
	partnerapp "github.com/sobitas/backend/internal/application/partner"
	salesapp "github.com/sobitas/backend/internal/application/sales"
	"github.com/sobitas/backend/internal/domain/catalog"
	"github.com/sobitas/backend/internal/domain/partner"
	"github.com/sobitas/backend/internal/infrastructure/persistence"
	"github.com/sobitas/backend/internal/infrastructure/persistence/models"
	"github.com/sobitas/backend/internal/interfaces/http/handler"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping() error { return p.err }

func setupRouter(t *testing.T, pinger handler.Pinger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Product{},
		&partner.Customer{},
		&models.DocumentModel{},
		&models.DocumentLineModel{},
		&models.StatusHistoryModel{},
	))

	log := zap.NewNop()
	documentService := salesapp.NewDocumentService(
		persistence.NewGormDocumentRepository(db),
		persistence.NewGormTransactionScope(db, log, true),
		log,
		salesapp.Config{},
	)
	productService := catalogapp.NewProductService(persistence.NewGormProductRepository(db), log)
	customerService := partnerapp.NewCustomerService(persistence.NewGormCustomerRepository(db), log)

	engine := gin.New()
	Setup(engine, Handlers{
		Documents: handler.NewDocumentHandler(documentService),
		Products:  handler.NewProductHandler(productService),
		Customers: handler.NewCustomerHandler(customerService),
		Health:    handler.NewHealthHandler(pinger),
	}, Config{})
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	envelope := decodeEnvelope(t, w)
	errInfo, ok := envelope["error"].(map[string]any)
	require.True(t, ok, "expected error envelope, got %s", w.Body.String())
	code, _ := errInfo["code"].(string)
	return code
}

func TestRouter_Health(t *testing.T) {
	engine := setupRouter(t, stubPinger{})

	w := doJSON(t, engine, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ReadinessFailsWhenDBDown(t *testing.T) {
	engine := setupRouter(t, stubPinger{err: errors.New("connection refused")})

	w := doJSON(t, engine, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_ProductLifecycle(t *testing.T) {
	engine := setupRouter(t, stubPinger{})

	w := doJSON(t, engine, http.MethodPost, "/api/v1/catalog/products", map[string]any{
		"reference":  "whey-2kg",
		"name":       "Whey Protein 2kg",
		"unit_price": "120.000",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, true, envelope["success"])
	data := envelope["data"].(map[string]any)
	assert.Equal(t, "WHEY-2KG", data["reference"])
	productID := data["id"].(string)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/catalog/products/"+productID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/catalog/products", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	envelope = decodeEnvelope(t, w)
	meta := envelope["meta"].(map[string]any)
	assert.Equal(t, float64(1), meta["total"])

	w = doJSON(t, engine, http.MethodDelete, "/api/v1/catalog/products/"+productID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_ProductErrorMapping(t *testing.T) {
	engine := setupRouter(t, stubPinger{})

	create := map[string]any{"reference": "REF-1", "name": "Whey", "unit_price": "10"}
	require.Equal(t, http.StatusCreated, doJSON(t, engine, http.MethodPost, "/api/v1/catalog/products", create).Code)

	// Duplicate reference conflicts.
	w := doJSON(t, engine, http.MethodPost, "/api/v1/catalog/products", create)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_REFERENCE", errorCode(t, w))

	// Missing required body fields.
	w = doJSON(t, engine, http.MethodPost, "/api/v1/catalog/products", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, w))

	// Malformed and unknown IDs.
	w = doJSON(t, engine, http.MethodGet, "/api/v1/catalog/products/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/catalog/products/1bd49f5e-22d1-4b49-9f19-3a5d1a0c3f6e", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}

func TestRouter_DocumentTypeValidation(t *testing.T) {
	engine := setupRouter(t, stubPinger{})

	w := doJSON(t, engine, http.MethodGet, "/api/v1/documents/receipt", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A valid type with no documents lists an empty page.
	w = doJSON(t, engine, http.MethodGet, "/api/v1/documents/quotation", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_RequestIDPropagation(t *testing.T) {
	engine := setupRouter(t, stubPinger{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products/not-a-uuid", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	envelope := decodeEnvelope(t, w)
	errInfo := envelope["error"].(map[string]any)
	assert.Equal(t, "req-123", errInfo["request_id"])
}
