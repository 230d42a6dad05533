package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"

	"github.com/cbodonnell/isozombie/pkg/log"
	"github.com/cbodonnell/isozombie/pkg/repositories"
	"github.com/cbodonnell/isozombie/pkg/repositories/models"
	"github.com/gorilla/mux"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
	MaxNameLen   = 16
)

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)

// ValidateName checks a player name: 1 to 16 letters, digits or spaces.
func ValidateName(name string) error {
	if len(name) < 1 || len(name) > MaxNameLen {
		return fmt.Errorf("name must be between 1 and %d characters", MaxNameLen)
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("name cannot contain special characters")
	}
	return nil
}

func ValidateScore(score *models.Score) error {
	if err := ValidateName(score.Name); err != nil {
		return err
	}
	if score.Points < 0 || score.Kills < 0 || score.Wave < 0 || score.DurationMS < 0 {
		return fmt.Errorf("score values cannot be negative")
	}
	return nil
}

// ParseLimit reads the limit query parameter, defaulting to DefaultLimit.
func ParseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return DefaultLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("limit must be a number")
	}
	if limit < 1 || limit > MaxLimit {
		return 0, fmt.Errorf("limit must be between 1 and %d", MaxLimit)
	}
	return limit, nil
}

func HandleTopScores(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := ParseLimit(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		scores, err := repository.TopScores(r.Context(), limit)
		if err != nil {
			log.Error("failed to list scores: %v", err)
			http.Error(w, "Failed to list scores", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, scores)
	}
}

func HandleSubmitScore(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		score := &models.Score{}
		if err := json.NewDecoder(r.Body).Decode(score); err != nil {
			http.Error(w, "Invalid score", http.StatusBadRequest)
			return
		}
		if err := ValidateScore(score); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// the server decides identity and time
		score.ID = 0
		score.CreatedAt = 0

		saved, err := repository.SaveScore(r.Context(), score)
		if err != nil {
			log.Error("failed to save score: %v", err)
			http.Error(w, "Failed to save score", http.StatusInternalServerError)
			return
		}

		log.Debug("Saved score %d for %s", saved.Points, saved.Name)
		writeJSON(w, http.StatusCreated, saved)
	}
}

func HandleBestScore(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]
		if err := ValidateName(name); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		score, err := repository.BestScore(r.Context(), name)
		if err != nil {
			if repositories.IsNotFound(err) {
				http.Error(w, "Score not found", http.StatusNotFound)
				return
			}
			log.Error("failed to get best score: %v", err)
			http.Error(w, "Failed to get best score", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, score)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
	}
}
