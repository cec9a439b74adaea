// cmd/satyasetu/dashboard_test.go
package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDashboard(t *testing.T) *Dashboard {
	t.Helper()
	return NewDashboard(newTestEngine(), newTestStore(t, 50), nil)
}

func TestDashboardAnalyzeEndpoint(t *testing.T) {
	dashboard := newTestDashboard(t)

	body, _ := json.Marshal(AnalyzeRequest{
		Title:         "Putin sworn in as Prime Minister of India",
		Text:          "Sources say the ceremony happened yesterday. Forwarded as received.",
		SkipWebVerify: true,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	dashboard.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var record AnalysisRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.NotEmpty(t, record.ID)
	assert.GreaterOrEqual(t, record.Result.MisinformationLikelihood, 0.8)

	// the analysis is retrievable afterwards
	getReq := httptest.NewRequest(http.MethodGet, "/api/analyses/"+record.ID, nil)
	getRec := httptest.NewRecorder()
	dashboard.Router().ServeHTTP(getRec, getReq)
	assert.Equal(t, http.StatusOK, getRec.Code)
}

func TestDashboardAnalyzeRejectsBadInput(t *testing.T) {
	dashboard := newTestDashboard(t)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader([]byte(`{"title": "", "text": ""}`)))
	rec := httptest.NewRecorder()
	dashboard.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	malformed := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader([]byte(`not json`)))
	rec = httptest.NewRecorder()
	dashboard.Router().ServeHTTP(rec, malformed)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboardStatusEndpoint(t *testing.T) {
	dashboard := newTestDashboard(t)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	dashboard.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var status map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status["status"])
}

func TestDashboardNotFoundAnalysis(t *testing.T) {
	dashboard := newTestDashboard(t)

	req := httptest.NewRequest(http.MethodGet, "/api/analyses/nope", nil)
	rec := httptest.NewRecorder()
	dashboard.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
