package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"intervention-graph/backend/internal/intake"
	"intervention-graph/backend/internal/store"
	"intervention-graph/backend/internal/tracker"
	"intervention-graph/backend/pkg/config"
	"intervention-graph/backend/pkg/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	repo := store.NewRepository(filepath.Join(dir, "graph.nt"))
	db, err := intake.OpenDB(filepath.Join(dir, "intake.db"))
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{TargetedDomain: "employment"}
	svc := tracker.NewService(repo, db, cfg)

	router := gin.New()
	registerRoutes(router, svc, logger.Get())
	return router
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "ok", response["status"])
}

func TestCreateParticipantEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, "POST", "/api/participants", map[string]any{
		"age":                34,
		"days_since_release": 20,
		"housing_status":     "transitional",
		"employment_status":  "unemployed_seeking",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "P001", response["participant_id"])
	assert.NotEmpty(t, response["tags"])

	// Invalid age is a 400
	w = doJSON(router, "POST", "/api/participants", map[string]any{"age": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEncounterEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, "POST", "/api/participants", map[string]any{"age": 30})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "POST", "/api/encounters", map[string]any{
		"participant_id":   "P001",
		"protocol_id":      "housing_action_planning",
		"practitioner_id":  "CLW001",
		"mode":             "face_to_face",
		"duration_minutes": 30,
		"referral": map[string]any{
			"was_made":    true,
			"category":    "housing",
			"destination": "Emergency shelter",
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &created)
	// The referral technique is synthesized even with no confirmed BCTs
	assert.Equal(t, float64(1), created["bct_count"])

	w = doJSON(router, "GET", "/api/participants/P001/encounters", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var listed map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &listed)
	assert.Equal(t, float64(1), listed["count"])

	// Unknown participant is a 404
	w = doJSON(router, "POST", "/api/encounters", map[string]any{
		"participant_id":   "P404",
		"protocol_id":      "check_in",
		"practitioner_id":  "CLW001",
		"mode":             "phone",
		"duration_minutes": 15,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssessmentAndAnalyticsEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, "POST", "/api/participants", map[string]any{"age": 30})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "POST", "/api/assessments", map[string]any{
		"participant_id": "P001",
		"domain":         "employment",
		"timepoint":      "baseline",
		"scores":         map[string]int{"physical_capability": 6, "psychological_capability": 7},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "POST", "/api/assessments", map[string]any{
		"participant_id": "P001",
		"domain":         "employment",
		"timepoint":      "day_30",
		"scores":         map[string]int{"physical_capability": 4, "psychological_capability": 7},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "GET", "/api/participants/P001/progress", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var progress struct {
		Stats struct {
			Improved int `json:"improved"`
			Stable   int `json:"stable"`
		} `json:"stats"`
	}
	json.Unmarshal(w.Body.Bytes(), &progress)
	assert.Equal(t, 1, progress.Stats.Improved)
	assert.Equal(t, 1, progress.Stats.Stable)

	w = doJSON(router, "GET", "/api/analytics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var analytics struct {
		Changes struct {
			HasData bool `json:"has_data"`
		} `json:"change_distribution"`
	}
	json.Unmarshal(w.Body.Bytes(), &analytics)
	assert.True(t, analytics.Changes.HasData)

	// Severity out of range is a 400
	w = doJSON(router, "POST", "/api/assessments", map[string]any{
		"participant_id": "P001",
		"domain":         "employment",
		"timepoint":      "day_90",
		"scores":         map[string]int{"physical_capability": 11},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, "GET", "/api/protocols", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "GET", "/api/protocols/employment_support_v1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "GET", "/api/protocols/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, "GET", "/api/referrals", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExportEndpoint_Disabled(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, "POST", "/api/export", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
