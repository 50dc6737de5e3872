package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexkit/case-cli/internal/archive"
	"github.com/lexkit/case-cli/internal/config"
	"github.com/lexkit/case-cli/internal/hearing"
)

// newTestMux wires a mux over a throwaway archive and hearing store. The
// resolver stays nil; endpoints that reach the completion chain are not
// exercised here.
func newTestMux(t *testing.T) (*http.ServeMux, *archive.Store, *hearing.Store) {
	t.Helper()

	dir := t.TempDir()
	st, err := archive.NewStore(filepath.Join(dir, "arsiv"))
	require.NoError(t, err)
	hearings, err := hearing.OpenStore(filepath.Join(dir, "hearings.json"))
	require.NoError(t, err)

	cfg = &config.Config{}
	cfg.Extract.Concurrency = 2

	return newMux(&pipelineEnv{Archive: st}, hearings), st, hearings
}

func postJSON(t *testing.T, mux *http.ServeMux, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestMux_HealthEndpoint(t *testing.T) {
	mux, _, _ := newTestMux(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestMux_CreateCase(t *testing.T) {
	mux, _, _ := newTestMux(t)

	rr := postJSON(t, mux, "/cases", map[string]string{
		"court":       "Ankara 1. Asliye Hukuk",
		"case_number": "2024-123",
	})

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp["path"], "2024-123")
}

func TestMux_CreateCase_MissingFields(t *testing.T) {
	mux, _, _ := newTestMux(t)

	rr := postJSON(t, mux, "/cases", map[string]string{"court": "Ankara 1. Asliye Hukuk"})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestMux_Search(t *testing.T) {
	mux, st, _ := newTestMux(t)

	_, err := st.CreateCase("Hukuk Davaları", "Ankara 1. Asliye Hukuk", "2024-123", "")
	require.NoError(t, err)

	rr := postJSON(t, mux, "/search", map[string]string{"term": "2024-123"})
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Results []struct {
			Path  string `json:"path"`
			IsDir bool   `json:"is_dir"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.True(t, resp.Results[0].IsDir)
}

func TestMux_Hearings(t *testing.T) {
	mux, _, hearings := newTestMux(t)

	_, err := hearings.Add([]hearing.Event{
		{Summary: "Duruşma", Start: time.Now().Add(2 * time.Hour)},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/hearings", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Hearings []struct {
			Summary string `json:"summary"`
			Status  string `json:"status"`
		} `json:"hearings"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Hearings, 1)
	assert.Equal(t, "Duruşma", resp.Hearings[0].Summary)
	assert.Equal(t, "imminent", resp.Hearings[0].Status)
}

func TestMux_Deadline(t *testing.T) {
	mux, _, _ := newTestMux(t)

	rr := postJSON(t, mux, "/deadline", map[string]any{
		"start":         "2024-07-22",
		"duration_days": 14,
		"recess_adjust": true,
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		DueDate         string `json:"due_date"`
		RecessAdjusted  bool   `json:"recess_adjusted"`
		WeekendAdjusted bool   `json:"weekend_adjusted"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "2024-09-09", resp.DueDate)
	assert.True(t, resp.RecessAdjusted)
	assert.True(t, resp.WeekendAdjusted)
}

func TestMux_Deadline_BadDate(t *testing.T) {
	mux, _, _ := newTestMux(t)

	rr := postJSON(t, mux, "/deadline", map[string]any{"start": "22.07.2024", "duration_days": 14})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "start must be YYYY-MM-DD")
}

func TestMux_Ask_MissingPrompt(t *testing.T) {
	mux, _, _ := newTestMux(t)

	rr := postJSON(t, mux, "/ask", map[string]string{"case": "x"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "prompt is required")
}
