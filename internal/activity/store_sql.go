package activity

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/codegrade-ai/codegrade/internal/grading"
)

// SQLStore persists activities, participants and submissions. Works against
// both sqlite and postgres (see internal/db).
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) PutActivity(ctx context.Context, a Activity) error {
	cj, err := json.Marshal(a.Criteria)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO activities (id,join_code,title,instruction,max_score,criteria_json,created_by,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		uuid.NewString(), a.JoinCode, a.Title, a.Instruction, a.MaxScore, string(cj), a.CreatedBy, time.Now().Unix())
	return err
}

func (s *SQLStore) GetActivity(ctx context.Context, joinCode string) (Activity, error) {
	// Rubrics are re-published under the same join code when edited; the
	// latest row wins.
	row := s.db.QueryRowContext(ctx, `SELECT join_code,title,instruction,max_score,criteria_json,created_by,created_at
		FROM activities WHERE join_code=$1 ORDER BY created_at DESC LIMIT 1`, joinCode)
	var a Activity
	var cjson string
	if err := row.Scan(&a.JoinCode, &a.Title, &a.Instruction, &a.MaxScore, &cjson, &a.CreatedBy, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Activity{}, ErrNotFound
		}
		return Activity{}, err
	}
	if err := json.Unmarshal([]byte(cjson), &a.Criteria); err != nil {
		a.Criteria = []grading.Criterion{}
	}
	return a, nil
}

func (s *SQLStore) ListActivities(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `SELECT join_code,title,max_score,created_at
		FROM activities ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Summary{}
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.JoinCode, &sm.Title, &sm.MaxScore, &sm.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

func (s *SQLStore) AddParticipant(ctx context.Context, p Participant) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO participants (id,join_code,student_name,section,created_at)
		VALUES ($1,$2,$3,$4,$5)`,
		uuid.NewString(), p.JoinCode, p.StudentName, p.Section, time.Now().Unix())
	return err
}

func (s *SQLStore) SaveSubmission(ctx context.Context, sub Submission) (Submission, error) {
	fj, err := json.Marshal(sub.Feedback)
	if err != nil {
		return Submission{}, err
	}
	sub.ID = uuid.NewString()
	sub.SubmittedAt = time.Now().Unix()
	_, err = s.db.ExecContext(ctx, `INSERT INTO submissions (id,ts,join_code,student_name,section,language,code,ai_model,total_score,feedback_json)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		sub.ID, sub.SubmittedAt, sub.JoinCode, sub.StudentName, sub.Section, sub.Language, sub.Code, sub.AIModel, sub.TotalScore, string(fj))
	if err != nil {
		return Submission{}, err
	}
	return sub, nil
}

func (s *SQLStore) Leaderboard(ctx context.Context, joinCode string) ([]LeaderboardRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT student_name,section,total_score,ai_model,ts
		FROM submissions WHERE join_code=$1 ORDER BY total_score DESC, ts ASC`, joinCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LeaderboardRow{}
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.StudentName, &r.Section, &r.TotalScore, &r.AIModel, &r.SubmittedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
