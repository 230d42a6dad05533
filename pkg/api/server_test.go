package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mocks "github.com/cbodonnell/isozombie/mocks/github.com/cbodonnell/isozombie/pkg/repositories"
	"github.com/cbodonnell/isozombie/pkg/repositories"
	"github.com/cbodonnell/isozombie/pkg/repositories/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	topScores := []*models.Score{
		{ID: 2, Name: "b", Points: 200},
		{ID: 1, Name: "a", Points: 100},
	}

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		setup      func(r *mocks.Repository)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "top scores default limit",
			method: http.MethodGet,
			target: "/scores",
			setup: func(r *mocks.Repository) {
				r.EXPECT().TopScores(mock.Anything, 10).Return(topScores, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"name":"b"`,
		},
		{
			name:   "top scores with limit",
			method: http.MethodGet,
			target: "/scores?limit=5",
			setup: func(r *mocks.Repository) {
				r.EXPECT().TopScores(mock.Anything, 5).Return([]*models.Score{}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
		},
		{name: "limit too small", method: http.MethodGet, target: "/scores?limit=0", wantStatus: http.StatusBadRequest},
		{name: "limit too large", method: http.MethodGet, target: "/scores?limit=101", wantStatus: http.StatusBadRequest},
		{name: "limit not a number", method: http.MethodGet, target: "/scores?limit=ten", wantStatus: http.StatusBadRequest},
		{
			name:   "top scores failure",
			method: http.MethodGet,
			target: "/scores",
			setup: func(r *mocks.Repository) {
				r.EXPECT().TopScores(mock.Anything, 10).Return(nil, errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:   "submit score",
			method: http.MethodPost,
			target: "/scores",
			body:   `{"id":99,"name":"ash","points":120,"kills":12,"wave":3,"durationMs":65000,"createdAt":7}`,
			setup: func(r *mocks.Repository) {
				r.EXPECT().SaveScore(mock.Anything, mock.MatchedBy(func(s *models.Score) bool {
					return s.Name == "ash" && s.Points == 120 && s.ID == 0 && s.CreatedAt == 0
				})).Return(&models.Score{ID: 1, Name: "ash", Points: 120, CreatedAt: 1000}, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"id":1`,
		},
		{name: "submit bad json", method: http.MethodPost, target: "/scores", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "submit empty name", method: http.MethodPost, target: "/scores", body: `{"name":"","points":1}`, wantStatus: http.StatusBadRequest},
		{name: "submit special characters", method: http.MethodPost, target: "/scores", body: `{"name":"ash!","points":1}`, wantStatus: http.StatusBadRequest},
		{name: "submit long name", method: http.MethodPost, target: "/scores", body: `{"name":"abcdefghijklmnopq","points":1}`, wantStatus: http.StatusBadRequest},
		{name: "submit negative points", method: http.MethodPost, target: "/scores", body: `{"name":"ash","points":-1}`, wantStatus: http.StatusBadRequest},
		{
			name:   "best score",
			method: http.MethodGet,
			target: "/scores/ash%20k/best",
			setup: func(r *mocks.Repository) {
				r.EXPECT().BestScore(mock.Anything, "ash k").Return(&models.Score{ID: 3, Name: "ash k", Points: 90}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"points":90`,
		},
		{
			name:   "best score not found",
			method: http.MethodGet,
			target: "/scores/ash/best",
			setup: func(r *mocks.Repository) {
				r.EXPECT().BestScore(mock.Anything, "ash").Return(nil, &repositories.ErrNotFound{})
			},
			wantStatus: http.StatusNotFound,
		},
		{name: "preflight", method: http.MethodOptions, target: "/scores", wantStatus: http.StatusNoContent},
		{name: "method not allowed", method: http.MethodDelete, target: "/scores", wantStatus: http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := mocks.NewRepository(t)
			if tt.setup != nil {
				tt.setup(repository)
			}
			router := NewRouter(repository, "")

			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			if tt.wantStatus < 400 {
				assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestRouter_topScoresOrder(t *testing.T) {
	repository := mocks.NewRepository(t)
	repository.EXPECT().TopScores(mock.Anything, 2).Return([]*models.Score{
		{ID: 2, Name: "b", Points: 200},
		{ID: 1, Name: "a", Points: 100},
	}, nil)

	rec := httptest.NewRecorder()
	NewRouter(repository, "example.com").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scores?limit=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var scores []*models.Score
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&scores))
	require.Len(t, scores, 2)
	assert.Equal(t, "b", scores[0].Name)
	assert.Equal(t, "a", scores[1].Name)
}
