package activity

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryStore backs tests and offline single-process runs.
type memoryStore struct {
	mu          sync.RWMutex
	activities  []Activity
	parts       []Participant
	submissions []Submission
}

func NewInMemoryStore() Store {
	return &memoryStore{}
}

func (m *memoryStore) PutActivity(_ context.Context, a Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.CreatedAt = time.Now().Unix()
	m.activities = append(m.activities, a)
	return nil
}

func (m *memoryStore) GetActivity(_ context.Context, joinCode string) (Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	// latest row wins, matching SQLStore
	for i := len(m.activities) - 1; i >= 0; i-- {
		if m.activities[i].JoinCode == joinCode {
			return m.activities[i], nil
		}
	}
	return Activity{}, ErrNotFound
}

func (m *memoryStore) ListActivities(_ context.Context, limit int) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 {
		limit = 100
	}
	out := []Summary{}
	for i := len(m.activities) - 1; i >= 0 && len(out) < limit; i-- {
		a := m.activities[i]
		out = append(out, Summary{JoinCode: a.JoinCode, Title: a.Title, MaxScore: a.MaxScore, CreatedAt: a.CreatedAt})
	}
	return out, nil
}

func (m *memoryStore) AddParticipant(_ context.Context, p Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.CreatedAt = time.Now().Unix()
	m.parts = append(m.parts, p)
	return nil
}

func (m *memoryStore) SaveSubmission(_ context.Context, s Submission) (Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = uuid.NewString()
	s.SubmittedAt = time.Now().Unix()
	m.submissions = append(m.submissions, s)
	return s, nil
}

func (m *memoryStore) Leaderboard(_ context.Context, joinCode string) ([]LeaderboardRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []LeaderboardRow{}
	for _, s := range m.submissions {
		if s.JoinCode != joinCode {
			continue
		}
		out = append(out, LeaderboardRow{
			StudentName: s.StudentName,
			Section:     s.Section,
			TotalScore:  s.TotalScore,
			AIModel:     s.AIModel,
			SubmittedAt: s.SubmittedAt,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalScore != out[j].TotalScore {
			return out[i].TotalScore > out[j].TotalScore
		}
		return out[i].SubmittedAt < out[j].SubmittedAt
	})
	return out, nil
}
