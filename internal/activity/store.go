package activity

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("activity not found")

type Store interface {
	PutActivity(ctx context.Context, a Activity) error
	// GetActivity returns the latest activity published under the join code.
	GetActivity(ctx context.Context, joinCode string) (Activity, error)
	ListActivities(ctx context.Context, limit int) ([]Summary, error)

	AddParticipant(ctx context.Context, p Participant) error

	SaveSubmission(ctx context.Context, s Submission) (Submission, error)
	Leaderboard(ctx context.Context, joinCode string) ([]LeaderboardRow, error)
}
