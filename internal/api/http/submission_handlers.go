package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/codegrade-ai/codegrade/internal/activity"
	"github.com/codegrade-ai/codegrade/internal/grading"
)

type submitReq struct {
	StudentName string `json:"student_name"`
	Section     string `json:"section"`
	Language    string `json:"language"`
	Code        string `json:"code"`
}

// POST /activities/{joinCode}/submissions
//
// Runs the full grading pipeline. A degraded (fallback) result is persisted
// and returned like any other; an unavailable oracle persists nothing and
// tells the student to try again.
func SubmitCodeHandler(svc *activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimSpace(chi.URLParam(r, "joinCode"))
		var req submitReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		p := activity.Participant{
			JoinCode:    code,
			StudentName: req.StudentName,
			Section:     req.Section,
		}
		sub, err := svc.Submit(r.Context(), p, req.Language, req.Code)
		switch {
		case err == nil:
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(sub)
		case errors.Is(err, activity.ErrNotFound):
			http.Error(w, "activity not found", http.StatusNotFound)
		case errors.Is(err, grading.ErrOracleUnavailable):
			http.Error(w, "grading temporarily unavailable, try again", http.StatusServiceUnavailable)
		case errors.Is(err, grading.ErrEmptyRubric), errors.Is(err, grading.ErrInvalidRequest):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
