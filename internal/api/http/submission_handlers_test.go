package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/codegrade-ai/codegrade/internal/activity"
	api "github.com/codegrade-ai/codegrade/internal/api/http"
	"github.com/codegrade-ai/codegrade/internal/grading"
)

type fakeGrader struct {
	res grading.GradingResult
	err error
}

func (f *fakeGrader) Grade(context.Context, grading.Request) (grading.GradingResult, error) {
	return f.res, f.err
}

func (f *fakeGrader) Model() string { return "fake-model" }

func newTestServer(t *testing.T, grader activity.Grader) (*httptest.Server, string) {
	t.Helper()
	svc := activity.NewService(activity.NewInMemoryStore(), grader)
	code, err := svc.CreateActivity(context.Background(), activity.Activity{
		Title:       "FizzBuzz",
		Instruction: "Classic fizzbuzz.",
		MaxScore:    100,
		Criteria: []grading.Criterion{
			{Criterion: "Correctness", Weight: 1},
		},
	})
	if err != nil {
		t.Fatalf("seed activity: %v", err)
	}

	r := chi.NewRouter()
	r.Post("/activities/{joinCode}/submissions", api.SubmitCodeHandler(svc))
	r.Get("/activities/{joinCode}/leaderboard", api.LeaderboardHandler(svc))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, code
}

func postSubmission(t *testing.T, srv *httptest.Server, joinCode string) *http.Response {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"student_name": "Ada",
		"section":      "A",
		"language":     "go",
		"code":         "package main",
	})
	resp, err := http.Post(srv.URL+"/activities/"+joinCode+"/submissions", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	return resp
}

func TestSubmitCodeHandler_GradedAndPersisted(t *testing.T) {
	grader := &fakeGrader{res: grading.GradingResult{
		PerCriterion: []grading.PerCriterion{{Criterion: "Correctness", Weight: 1, Score: 81}},
		OverallScore: 81,
		Summary:      "works",
		ScaledTotal:  81,
	}}
	srv, code := newTestServer(t, grader)

	resp := postSubmission(t, srv, code)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var sub activity.Submission
	if err := json.NewDecoder(resp.Body).Decode(&sub); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sub.TotalScore != 81 || sub.Feedback.Summary != "works" {
		t.Fatalf("unexpected submission: %+v", sub)
	}

	lb, err := http.Get(srv.URL + "/activities/" + code + "/leaderboard")
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	defer lb.Body.Close()
	var rows []activity.LeaderboardRow
	if err := json.NewDecoder(lb.Body).Decode(&rows); err != nil {
		t.Fatalf("decode leaderboard: %v", err)
	}
	if len(rows) != 1 || rows[0].TotalScore != 81 {
		t.Fatalf("unexpected leaderboard: %+v", rows)
	}
}

func TestSubmitCodeHandler_OracleUnavailable(t *testing.T) {
	grader := &fakeGrader{err: fmt.Errorf("%w: exhausted", grading.ErrOracleUnavailable)}
	srv, code := newTestServer(t, grader)

	resp := postSubmission(t, srv, code)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}

	// Nothing persisted for the failed attempt.
	lb, err := http.Get(srv.URL + "/activities/" + code + "/leaderboard")
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	defer lb.Body.Close()
	var rows []activity.LeaderboardRow
	if err := json.NewDecoder(lb.Body).Decode(&rows); err != nil {
		t.Fatalf("decode leaderboard: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty leaderboard, got %+v", rows)
	}
}

func TestSubmitCodeHandler_UnknownActivity(t *testing.T) {
	srv, _ := newTestServer(t, &fakeGrader{})

	resp := postSubmission(t, srv, "ZZZZZZ")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}
