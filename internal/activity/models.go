package activity

import (
	"github.com/codegrade-ai/codegrade/internal/grading"
)

// Activity is a coding exercise a teacher publishes under a join code.
// Criteria are stored raw and re-normalized on every grading pass; editing a
// rubric never requires regrading past submissions.
type Activity struct {
	JoinCode    string              `json:"join_code"`
	Title       string              `json:"title" validate:"required,max=200"`
	Instruction string              `json:"instruction" validate:"required"`
	MaxScore    float64             `json:"max_score" validate:"gt=0"`
	Criteria    []grading.Criterion `json:"criteria" validate:"min=1,dive"`
	CreatedBy   string              `json:"created_by,omitempty"`
	CreatedAt   int64               `json:"created_at,omitempty"`
}

// Summary is the list view of an activity.
type Summary struct {
	JoinCode  string  `json:"join_code"`
	Title     string  `json:"title"`
	MaxScore  float64 `json:"max_score"`
	CreatedAt int64   `json:"created_at"`
}

type Participant struct {
	JoinCode    string `json:"join_code"`
	StudentName string `json:"student_name" validate:"required"`
	Section     string `json:"section"`
	CreatedAt   int64  `json:"created_at,omitempty"`
}

// Submission is the persisted record of one graded attempt. Feedback carries
// the full GradingResult; TotalScore duplicates its ScaledTotal as a scalar
// for leaderboard queries.
type Submission struct {
	ID          string                `json:"id,omitempty"`
	JoinCode    string                `json:"join_code"`
	StudentName string                `json:"student_name"`
	Section     string                `json:"section"`
	Language    string                `json:"language"`
	Code        string                `json:"code"`
	AIModel     string                `json:"ai_model"`
	TotalScore  float64               `json:"total_score"`
	Feedback    grading.GradingResult `json:"feedback_json"`
	SubmittedAt int64                 `json:"ts,omitempty"`
}

type LeaderboardRow struct {
	StudentName string  `json:"student_name"`
	Section     string  `json:"section"`
	TotalScore  float64 `json:"total_score"`
	AIModel     string  `json:"ai_model"`
	SubmittedAt int64   `json:"ts"`
}

// BuildSubmission assembles the persisted record from the student's identity,
// the graded request and the pipeline's result. Pure assembly — upstream
// components already validated everything; the store assigns ID and
// timestamp.
func BuildSubmission(p Participant, req grading.Request, model string, res grading.GradingResult) Submission {
	return Submission{
		JoinCode:    p.JoinCode,
		StudentName: p.StudentName,
		Section:     p.Section,
		Language:    req.Language,
		Code:        req.Code,
		AIModel:     model,
		TotalScore:  res.ScaledTotal,
		Feedback:    res,
	}
}
