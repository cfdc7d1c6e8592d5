package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/codegrade-ai/codegrade/internal/activity"
	"github.com/codegrade-ai/codegrade/internal/rbac"
)

// POST /activities
func CreateActivityHandler(svc *activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a activity.Activity
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		a.CreatedBy = rbac.SubjectFromContext(r.Context())
		code, err := svc.CreateActivity(r.Context(), a)
		if err != nil {
			if errors.Is(err, activity.ErrJoinCodeExhausted) {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"join_code": code})
	}
}

// GET /activities?limit=N
func ListActivitiesHandler(svc *activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		items, err := svc.RecentActivities(r.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(items)
	}
}

// GET /activities/{joinCode}
func GetActivityHandler(svc *activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimSpace(chi.URLParam(r, "joinCode"))
		a, err := svc.FetchActivity(r.Context(), code)
		if err != nil {
			if errors.Is(err, activity.ErrNotFound) {
				http.Error(w, "activity not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(a)
	}
}

// POST /activities/{joinCode}/participants
func JoinActivityHandler(svc *activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimSpace(chi.URLParam(r, "joinCode"))
		var p activity.Participant
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		p.JoinCode = code
		if err := svc.Join(r.Context(), p); err != nil {
			if errors.Is(err, activity.ErrNotFound) {
				http.Error(w, "activity not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /activities/{joinCode}/leaderboard
func LeaderboardHandler(svc *activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimSpace(chi.URLParam(r, "joinCode"))
		rows, err := svc.Leaderboard(r.Context(), code)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(rows)
	}
}
