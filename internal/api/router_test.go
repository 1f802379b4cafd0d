package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retaildash/sales-backend-go/internal/config"
	"github.com/retaildash/sales-backend-go/internal/core/dataset"
	"github.com/retaildash/sales-backend-go/pkg/logger"
)

const testDataset = `[
  {
    "Order ID": 10001,
    "OrderDate": 1709596800000,
    "Customer Name": "Alice Cooper",
    "Country": "United States",
    "State": "Kentucky",
    "City": "Henderson",
    "Region": "South",
    "Segment": "Consumer",
    "Ship Mode": "Second Class",
    "Category": "Furniture",
    "Sub-Category": "Bookcases",
    "Product Name": "Bush Somerset Collection Bookcase",
    "Discount": 0,
    "Total Sales": 261.96,
    "Profit": 41.91,
    "Quantity": 2,
    "Month": "Mar"
  },
  {
    "Order ID": 10002,
    "OrderDate": 1718150400000,
    "Customer Name": "Bob Smith",
    "Country": "Canada",
    "State": "Ontario",
    "City": "Toronto",
    "Region": "East",
    "Segment": "Corporate",
    "Ship Mode": "Standard Class",
    "Category": "Technology",
    "Sub-Category": "Phones",
    "Product Name": "Nokia Smart Phone",
    "Discount": 0.2,
    "Total Sales": 907.15,
    "Profit": 90.72,
    "Quantity": 4,
    "Month": "Jun"
  }
]`

func testConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Port: 3001, Mode: "production"},
		Dataset: config.DatasetConfig{Path: "unused"},
		Export:  config.ExportConfig{BaseFilename: "walmart_sales_data"},
		Security: config.SecurityConfig{
			RateLimit:      1000,
			RateLimitBurst: 2000,
			EnableCORS:     false,
		},
		// Metrics stay off so repeated router construction across tests
		// does not re-register prometheus collectors.
		Metrics:   config.MetricsConfig{Enabled: false},
		WebSocket: config.WebSocketConfig{Enabled: false},
	}
}

func newTestRouter(t *testing.T, datasetJSON string) (http.Handler, *dataset.Service) {
	t.Helper()

	log := logger.New()
	log.SetOutput(os.Stderr)

	ds := dataset.NewService(writeTestDataset(t, datasetJSON), log)
	if datasetJSON != "" {
		require.NoError(t, ds.Load())
	}

	return NewRouter(testConfig(), ds, log, nil, nil), ds
}

func writeTestDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return path
}

func doRequest(router http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Meta    map[string]int  `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestGetDataReturnsRawArray(t *testing.T) {
	router, _ := newTestRouter(t, testDataset)

	rec := doRequest(router, http.MethodGet, "/api/data")
	require.Equal(t, http.StatusOK, rec.Code)

	// Raw array, no response envelope.
	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Alice Cooper", records[0]["Customer Name"])
	assert.Equal(t, float64(1709596800000), records[0]["OrderDate"])
}

func TestGetDataWhenDatasetNeverLoaded(t *testing.T) {
	router, _ := newTestRouter(t, "")

	rec := doRequest(router, http.MethodGet, "/api/data")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to fetch data", body["error"])
	assert.NotEmpty(t, body["details"])
}

func TestGetOrdersWithFilterMeta(t *testing.T) {
	router, _ := newTestRouter(t, testDataset)

	rec := doRequest(router, http.MethodGet, "/api/v1/orders?country=Canada")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, 2, env.Meta["total"])
	assert.Equal(t, 1, env.Meta["filtered"])

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Bob Smith", records[0]["Customer Name"])
}

func TestGetSummaryFiltered(t *testing.T) {
	router, _ := newTestRouter(t, testDataset)

	rec := doRequest(router, http.MethodGet, "/api/v1/summary?country=United+States")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var summary map[string]float64
	require.NoError(t, json.Unmarshal(env.Data, &summary))

	assert.InDelta(t, 261.96, summary["totalSales"], 1e-9)
	assert.InDelta(t, 41.91, summary["totalProfit"], 1e-9)
	assert.Equal(t, float64(1), summary["totalOrders"])
}

func TestGetSummaryRejectsBadStartDate(t *testing.T) {
	router, _ := newTestRouter(t, testDataset)

	rec := doRequest(router, http.MethodGet, "/api/v1/summary?start_date=03-05-2024")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "start_date")
}

func TestGetSalesTrendRejectsBadPeriod(t *testing.T) {
	router, _ := newTestRouter(t, testDataset)

	rec := doRequest(router, http.MethodGet, "/api/v1/charts/sales-trend?period=daily")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSalesTrendMonthDefault(t *testing.T) {
	router, _ := newTestRouter(t, testDataset)

	rec := doRequest(router, http.MethodGet, "/api/v1/charts/sales-trend")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var chart struct {
		Labels []string  `json:"labels"`
		Values []float64 `json:"values"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &chart))

	require.Len(t, chart.Labels, 12)
	assert.InDelta(t, 261.96, chart.Values[2], 1e-9)
	assert.InDelta(t, 907.15, chart.Values[5], 1e-9)
	assert.Zero(t, chart.Values[0])
}

func TestGetTopCountriesRejectsBadLimit(t *testing.T) {
	router, _ := newTestRouter(t, testDataset)

	assert.Equal(t, http.StatusBadRequest, doRequest(router, http.MethodGet, "/api/v1/charts/top-countries?limit=0").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(router, http.MethodGet, "/api/v1/charts/top-countries?limit=abc").Code)
}

func TestGetFilterOptionsIgnoresCriteria(t *testing.T) {
	router, _ := newTestRouter(t, testDataset)

	rec := doRequest(router, http.MethodGet, "/api/v1/filters/options?country=Canada")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var options struct {
		Countries []string `json:"countries"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &options))

	// Option lists always come from the unfiltered base collection.
	assert.Equal(t, []string{"Canada", "United States"}, options.Countries)
}

func TestExportCSVDownload(t *testing.T) {
	router, _ := newTestRouter(t, testDataset)

	rec := doRequest(router, http.MethodGet, "/api/v1/export/csv")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, `attachment; filename="walmart_sales_data.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Body.String(), "Order ID,OrderDate,")
}

func TestExportEmptyFilteredCollection(t *testing.T) {
	router, _ := newTestRouter(t, testDataset)

	rec := doRequest(router, http.MethodGet, "/api/v1/export/csv?country=Germany")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestExportJSONCustomFilename(t *testing.T) {
	router, _ := newTestRouter(t, testDataset)

	rec := doRequest(router, http.MethodGet, "/api/v1/export/json?filename=snapshot")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, `attachment; filename="snapshot.json"`, rec.Header().Get("Content-Disposition"))

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	assert.Len(t, records, 2)
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, testDataset)

	rec := doRequest(router, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var health struct {
		Status  string `json:"status"`
		Dataset struct {
			Loaded  bool `json:"loaded"`
			Records int  `json:"records"`
		} `json:"dataset"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &health))

	assert.Equal(t, "healthy", health.Status)
	assert.True(t, health.Dataset.Loaded)
	assert.Equal(t, 2, health.Dataset.Records)
}

func TestHealthDegradedWithoutDataset(t *testing.T) {
	router, _ := newTestRouter(t, "")

	rec := doRequest(router, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var health struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &health))
	assert.Equal(t, "degraded", health.Status)
}

func TestReloadDataset(t *testing.T) {
	router, ds := newTestRouter(t, testDataset)

	rec := doRequest(router, http.MethodPost, "/api/v1/dataset/reload")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, int64(2), ds.Version())
}
