package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeJournal/internal/app"
	"tradeJournal/internal/domain"
	"tradeJournal/internal/ports"
	"tradeJournal/internal/tradeimport"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

// memStore is an in-memory ports.TradeStore.
type memStore struct {
	records []domain.TradeRecord
	fail    error
}

func (m *memStore) SaveAll(ctx context.Context, records []domain.TradeRecord) (int, error) {
	if m.fail != nil {
		return 0, m.fail
	}
	m.records = append(m.records, records...)
	return len(records), nil
}

func (m *memStore) GetAll(ctx context.Context) ([]domain.TradeRecord, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	return append([]domain.TradeRecord{}, m.records...), nil
}

func (m *memStore) ClearAll(ctx context.Context) error {
	if m.fail != nil {
		return m.fail
	}
	m.records = nil
	return nil
}

func setupRouter(t *testing.T, store ports.TradeStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := &mockLogger{}
	parser, err := tradeimport.New(tradeimport.Config{Logger: log})
	require.NoError(t, err)
	svc, err := app.NewJournalService(log, store, parser, 3)
	require.NoError(t, err)

	router := gin.New()
	NewHandler(svc, log).RegisterRoutes(router)
	return router
}

const sampleCSV = "Symbol,DESCRIPTION,Qty,Price,Date,Time\n" +
	"AAPL,Bought 100 shares,100,150.25,2024-01-02,09:31\n" +
	"TSLA,Sold short,-50,200.00,2024-01-02,10:00\n"

func TestImportEndpoint_RawBody(t *testing.T) {
	router := setupRouter(t, &memStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/trades/import", bytes.NewBufferString(sampleCSV))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result app.ImportResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Saved)
	assert.Len(t, result.Preview, 2)
}

func TestImportEndpoint_MultipartFile(t *testing.T) {
	router := setupRouter(t, &memStore{})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "trades.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/trades/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result app.ImportResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Saved)
}

func TestImportEndpoint_UnsupportedFormat(t *testing.T) {
	router := setupRouter(t, &memStore{})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "trades.xlsx")
	require.NoError(t, err)
	_, err = fw.Write([]byte{'P', 'K', 0x03, 0x04})
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/trades/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestImportEndpoint_StoreFailure(t *testing.T) {
	store := &memStore{fail: fmt.Errorf("%w: connection refused", ports.ErrStoreUnavailable)}
	router := setupRouter(t, store)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/trades/import", bytes.NewBufferString(sampleCSV))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestTradesEndpoints(t *testing.T) {
	router := setupRouter(t, &memStore{})

	// Add a manual entry.
	entry := `{"symbol":"aapl","side":"BUY","quantity":10,"price":"150.25","date":"2024-01-02","netPnL":"42"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trades", bytes.NewBufferString(entry))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	// List it back.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/trades", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var records []domain.TradeRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "AAPL", records[0].Symbol)

	// Clear and confirm empty.
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/trades", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/trades", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	assert.Empty(t, records)
}

func TestAddTradeEndpoint_Invalid(t *testing.T) {
	router := setupRouter(t, &memStore{})

	entry := `{"symbol":"","side":"BUY","quantity":10,"price":"150.25","date":"2024-01-02"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trades", bytes.NewBufferString(entry))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatsEndpoints(t *testing.T) {
	router := setupRouter(t, &memStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/trades/import", bytes.NewBufferString(sampleCSV))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/stats/daily", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var daily []domain.DailyStat
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &daily))
	require.Len(t, daily, 1)
	assert.Equal(t, "2024-01-02", daily[0].Date)
	assert.Equal(t, 2, daily[0].Trades)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/stats/overall", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var overall domain.OverallStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overall))
	assert.Equal(t, 2, overall.TotalTrades)
}

func TestStatsEndpoints_EmptyStore(t *testing.T) {
	router := setupRouter(t, &memStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats/daily", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/v1/stats/overall", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var overall domain.OverallStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overall))
	assert.Equal(t, 0, overall.TotalTrades)
}

func TestExportEndpoint(t *testing.T) {
	router := setupRouter(t, &memStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/trades/import", bytes.NewBufferString(sampleCSV))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/trades/export", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "AAPL")
}

func TestHealthEndpoint(t *testing.T) {
	router := setupRouter(t, &memStore{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
