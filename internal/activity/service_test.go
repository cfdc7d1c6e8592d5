package activity_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/codegrade-ai/codegrade/internal/activity"
	"github.com/codegrade-ai/codegrade/internal/grading"
)

type fakeGrader struct {
	res   grading.GradingResult
	err   error
	calls int
}

func (f *fakeGrader) Grade(_ context.Context, _ grading.Request) (grading.GradingResult, error) {
	f.calls++
	return f.res, f.err
}

func (f *fakeGrader) Model() string { return "fake-model" }

func seedActivity() activity.Activity {
	return activity.Activity{
		Title:       "FizzBuzz",
		Instruction: "Classic fizzbuzz up to 100.",
		MaxScore:    100,
		Criteria: []grading.Criterion{
			{Criterion: "Correctness", Weight: 0.5},
			{Criterion: "Style", Weight: 0.5},
		},
	}
}

func TestService_CreateActivityIssuesJoinCode(t *testing.T) {
	svc := activity.NewService(activity.NewInMemoryStore(), &fakeGrader{})

	code, err := svc.CreateActivity(context.Background(), seedActivity())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !regexp.MustCompile(`^[0-9A-F]{6}$`).MatchString(code) {
		t.Fatalf("join code %q not 6 uppercase hex chars", code)
	}

	a, err := svc.FetchActivity(context.Background(), code)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if a.Title != "FizzBuzz" || len(a.Criteria) != 2 {
		t.Fatalf("unexpected activity: %+v", a)
	}
}

func TestService_CreateActivityValidatesRubric(t *testing.T) {
	svc := activity.NewService(activity.NewInMemoryStore(), &fakeGrader{})

	a := seedActivity()
	a.Criteria = nil
	if _, err := svc.CreateActivity(context.Background(), a); err == nil {
		t.Fatalf("expected validation error for empty rubric")
	}

	a = seedActivity()
	a.MaxScore = 0
	if _, err := svc.CreateActivity(context.Background(), a); err == nil {
		t.Fatalf("expected validation error for zero max score")
	}
}

func TestService_JoinUnknownActivity(t *testing.T) {
	svc := activity.NewService(activity.NewInMemoryStore(), &fakeGrader{})
	err := svc.Join(context.Background(), activity.Participant{JoinCode: "NOPE42", StudentName: "Ada"})
	if !errors.Is(err, activity.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestService_SubmitPersistsGradedRecord(t *testing.T) {
	grader := &fakeGrader{res: grading.GradingResult{
		PerCriterion: []grading.PerCriterion{
			{Criterion: "Correctness", Weight: 0.5, Score: 100},
			{Criterion: "Style", Weight: 0.5, Score: 60},
		},
		OverallScore: 80,
		Summary:      "nice",
		ScaledTotal:  80,
	}}
	store := activity.NewInMemoryStore()
	svc := activity.NewService(store, grader)

	code, err := svc.CreateActivity(context.Background(), seedActivity())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	p := activity.Participant{JoinCode: code, StudentName: "Ada", Section: "A"}
	sub, err := svc.Submit(context.Background(), p, "go", "package main")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.ID == "" {
		t.Fatalf("expected store-assigned submission id")
	}
	if sub.TotalScore != 80 {
		t.Fatalf("total = %f, want scaled 80", sub.TotalScore)
	}
	if sub.AIModel != "fake-model" {
		t.Fatalf("model = %q", sub.AIModel)
	}
	if sub.Feedback.Summary != "nice" {
		t.Fatalf("feedback not attached: %+v", sub.Feedback)
	}

	rows, err := svc.Leaderboard(context.Background(), code)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(rows) != 1 || rows[0].StudentName != "Ada" || rows[0].TotalScore != 80 {
		t.Fatalf("unexpected leaderboard: %+v", rows)
	}
}

func TestService_SubmitOracleFailurePersistsNothing(t *testing.T) {
	grader := &fakeGrader{err: fmt.Errorf("%w: all attempts failed", grading.ErrOracleUnavailable)}
	store := activity.NewInMemoryStore()
	svc := activity.NewService(store, grader)

	code, err := svc.CreateActivity(context.Background(), seedActivity())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	p := activity.Participant{JoinCode: code, StudentName: "Ada"}
	if _, err := svc.Submit(context.Background(), p, "go", "package main"); !errors.Is(err, grading.ErrOracleUnavailable) {
		t.Fatalf("got %v, want ErrOracleUnavailable", err)
	}

	rows, err := svc.Leaderboard(context.Background(), code)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("nothing may be persisted on oracle failure, got %+v", rows)
	}
}

func TestService_LeaderboardOrdering(t *testing.T) {
	grader := &fakeGrader{}
	store := activity.NewInMemoryStore()
	svc := activity.NewService(store, grader)

	code, err := svc.CreateActivity(context.Background(), seedActivity())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, s := range []struct {
		name  string
		score float64
	}{{"Ben", 55}, {"Ada", 90}, {"Cia", 90}} {
		grader.res = grading.GradingResult{ScaledTotal: s.score}
		p := activity.Participant{JoinCode: code, StudentName: s.name}
		if _, err := svc.Submit(context.Background(), p, "go", "x := 1"); err != nil {
			t.Fatalf("submit %s: %v", s.name, err)
		}
	}

	rows, err := svc.Leaderboard(context.Background(), code)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	// Score desc, earlier submission breaking the tie.
	if rows[0].StudentName != "Ada" || rows[1].StudentName != "Cia" || rows[2].StudentName != "Ben" {
		t.Fatalf("unexpected order: %v, %v, %v", rows[0].StudentName, rows[1].StudentName, rows[2].StudentName)
	}
}

func TestBuildSubmission(t *testing.T) {
	p := activity.Participant{JoinCode: "ABC123", StudentName: "Ada", Section: "B"}
	req := grading.Request{Code: "code here", Language: "go", MaxScore: 40}
	res := grading.GradingResult{OverallScore: 75, ScaledTotal: 30, Summary: "fine"}

	sub := activity.BuildSubmission(p, req, "gemini-1.5-flash", res)
	if sub.JoinCode != "ABC123" || sub.StudentName != "Ada" || sub.Section != "B" {
		t.Fatalf("identity not carried: %+v", sub)
	}
	if sub.Language != "go" || sub.Code != "code here" {
		t.Fatalf("request fields not carried: %+v", sub)
	}
	if sub.AIModel != "gemini-1.5-flash" {
		t.Fatalf("model = %q", sub.AIModel)
	}
	if sub.TotalScore != res.ScaledTotal {
		t.Fatalf("total = %f, want scaled %f", sub.TotalScore, res.ScaledTotal)
	}
}
