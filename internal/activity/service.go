package activity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/codegrade-ai/codegrade/internal/grading"
)

// Grader is the grading pipeline the service drives per submission.
type Grader interface {
	Grade(ctx context.Context, req grading.Request) (grading.GradingResult, error)
	Model() string
}

var ErrJoinCodeExhausted = errors.New("failed to generate unique join code")

// Service owns the activity lifecycle: publishing under a unique join code,
// participants joining, graded submissions, and the leaderboard.
type Service struct {
	store    Store
	grader   Grader
	validate *validator.Validate
}

func NewService(store Store, grader Grader) *Service {
	return &Service{store: store, grader: grader, validate: validator.New()}
}

// CreateActivity publishes an activity under a fresh join code and returns it.
// Code collisions are resolved by a bounded retry loop.
func (s *Service) CreateActivity(ctx context.Context, a Activity) (string, error) {
	if err := s.validate.Struct(a); err != nil {
		return "", fmt.Errorf("invalid activity: %w", err)
	}
	for i := 0; i < 5; i++ {
		code := genJoinCode()
		if _, err := s.store.GetActivity(ctx, code); err == nil {
			continue
		} else if !errors.Is(err, ErrNotFound) {
			return "", err
		}
		a.JoinCode = code
		if err := s.store.PutActivity(ctx, a); err != nil {
			return "", err
		}
		return code, nil
	}
	return "", ErrJoinCodeExhausted
}

func (s *Service) FetchActivity(ctx context.Context, joinCode string) (Activity, error) {
	return s.store.GetActivity(ctx, joinCode)
}

func (s *Service) RecentActivities(ctx context.Context, limit int) ([]Summary, error) {
	return s.store.ListActivities(ctx, limit)
}

// Join registers a participant on an activity.
func (s *Service) Join(ctx context.Context, p Participant) error {
	if err := s.validate.Struct(p); err != nil {
		return fmt.Errorf("invalid participant: %w", err)
	}
	if _, err := s.store.GetActivity(ctx, p.JoinCode); err != nil {
		return err
	}
	return s.store.AddParticipant(ctx, p)
}

// Submit runs the grading pipeline for a student's code against the
// activity's rubric and persists the outcome. Either a complete graded
// submission is stored, or — on oracle failure — nothing is.
func (s *Service) Submit(ctx context.Context, p Participant, language, code string) (Submission, error) {
	act, err := s.store.GetActivity(ctx, p.JoinCode)
	if err != nil {
		return Submission{}, err
	}
	req := grading.Request{
		Code:        code,
		Language:    language,
		Criteria:    act.Criteria,
		Instruction: act.Instruction,
		MaxScore:    act.MaxScore,
	}
	res, err := s.grader.Grade(ctx, req)
	if err != nil {
		return Submission{}, err
	}
	sub := BuildSubmission(p, req, s.grader.Model(), res)
	return s.store.SaveSubmission(ctx, sub)
}

func (s *Service) Leaderboard(ctx context.Context, joinCode string) ([]LeaderboardRow, error) {
	return s.store.Leaderboard(ctx, joinCode)
}

func genJoinCode() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(hex[:6])
}
