package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csab-tools/csab-match-api/internal/models"
	"github.com/csab-tools/csab-match-api/internal/service"
)

type stubCutoffRepo struct {
	cutoffs []models.Cutoff
	total   int
}

func (s *stubCutoffRepo) List(ctx context.Context, filter models.CutoffFilter) ([]models.Cutoff, error) {
	return s.cutoffs, nil
}

func (s *stubCutoffRepo) Count(ctx context.Context, filter models.CutoffFilter) (int, error) {
	return s.total, nil
}

func matchRouter(repo *stubCutoffRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewMatchHandler(service.NewMatchService(repo, nil, nil, 25, 100))
	r := gin.New()
	r.POST("/api/v1/colleges/match", h.Match)
	r.GET("/api/v1/colleges/margin", h.Margin)
	return r
}

func TestMatchEndpointMissingSeatType(t *testing.T) {
	r := matchRouter(&stubCutoffRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/colleges/match", strings.NewReader(`{"rank": 50000}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
}

func TestMatchEndpointMalformedJSON(t *testing.T) {
	r := matchRouter(&stubCutoffRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/colleges/match", strings.NewReader(`{"rank":`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatchEndpointReturnsEnvelope(t *testing.T) {
	repo := &stubCutoffRepo{
		cutoffs: []models.Cutoff{{
			Institute:   "IIT Delhi",
			ProgramName: "cse",
			Quota:       "AI",
			SeatType:    "OPEN",
			Gender:      "Gender-Neutral",
			ClosingRank: sql.NullString{String: "48900", Valid: true},
			Year:        2024,
			Round:       2,
		}},
		total: 1,
	}
	r := matchRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/colleges/match",
		strings.NewReader(`{"seat_type": "OPEN", "rank": 50000}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var body struct {
		Data       []models.MatchResult `json:"data"`
		Pagination *models.Pagination   `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "IIT Delhi", body.Data[0].Institute)
	assert.NotEmpty(t, body.Data[0].ID)
	require.NotNil(t, body.Pagination)
	assert.Equal(t, 1, body.Pagination.TotalCount)
	assert.Equal(t, 1, body.Pagination.TotalPages)
}

func TestMarginEndpoint(t *testing.T) {
	r := matchRouter(&stubCutoffRepo{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/colleges/margin?rank=50000", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data struct {
			Rank           int `json:"rank"`
			Margin         int `json:"margin"`
			MinAllowedRank int `json:"min_allowed_rank"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 50000, body.Data.Rank)
	assert.Equal(t, 4500, body.Data.Margin)
	assert.Equal(t, 45500, body.Data.MinAllowedRank)
}

func TestMarginEndpointRejectsBadRank(t *testing.T) {
	r := matchRouter(&stubCutoffRepo{})

	for _, q := range []string{"", "?rank=0", "?rank=abc"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/colleges/margin"+q, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}
