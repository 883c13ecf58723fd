// routes_test.go - End-to-end tests through the registered routes
package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/mdt-route/backend/internal/config"
	"github.com/mdt-route/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Advanced.EnableRequestLogging = false

	e := echo.New()
	SetupMiddleware(e, cfg)
	RegisterRoutes(e, NewHandlers(&Dependencies{
		Decoder:      newTestDecoder(t),
		Store:        testutil.NewMockStore(),
		MaxBatchSize: cfg.Processing.MaxBatchSize,
		Version:      "test",
	}))
	return e
}

func doRequest(e *echo.Echo, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_DecodeStoreAndQuery(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/api/decode", map[string]interface{}{
		"input":   testutil.SampleExport(),
		"persist": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var decoded struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	require.NotEmpty(t, decoded.ID)

	rec = doRequest(e, http.MethodGet, "/api/routes/"+decoded.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/routes/npc/1001", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), decoded.ID)

	rec = doRequest(e, http.MethodDelete, "/api/routes/"+decoded.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/routes/"+decoded.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutes_DecodeErrorsUseErrorHandler(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/api/decode", map[string]string{"input": "!not valid"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_SYMBOL", body.Code)
	require.NotNil(t, body.Offset)
}

func TestRoutes_HealthAndDungeons(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/dungeons", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Test Halls")

	rec = doRequest(e, http.MethodGet, "/api/dungeons/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
