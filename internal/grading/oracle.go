package grading

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Request is one grading attempt's input, constructed once per submission.
type Request struct {
	Code        string      `json:"code" validate:"required"`
	Language    string      `json:"language" validate:"required"`
	Criteria    []Criterion `json:"criteria" validate:"min=1,dive"`
	Instruction string      `json:"instruction"`
	MaxScore    float64     `json:"max_score" validate:"gt=0"`
}

// Oracle is the external language-model grader. Implementations own retries;
// the raw text they return carries no JSON guarantee — ParseFeedback handles
// prose, fences and missing fields.
type Oracle interface {
	Evaluate(ctx context.Context, req Request, rubric NormalizedRubric) (string, error)
	Model() string
}

const systemPrompt = "You are an expert programming instructor and strict grader. " +
	"Evaluate the student's submission using ONLY the rubric and instructions. " +
	"Return valid JSON with fields: per_criterion[], overall_score(0..100), summary."

const payloadExample = `{"per_criterion":[{"criterion":"...", "weight":0.2, "score":87, "comment":"..."}], "overall_score":88.5, "summary":"..."}`

// buildUserPrompt renders the full grading request for the oracle: language,
// teacher instructions, the normalized rubric, the target scale, and the
// fenced student code. No hidden state — everything the oracle sees is here.
func buildUserPrompt(req Request, rubric NormalizedRubric) string {
	rj, _ := json.MarshalIndent(rubric.Criteria, "", "  ")

	var b strings.Builder
	fmt.Fprintf(&b, "Language: %s\n\n", req.Language)
	fmt.Fprintf(&b, "Instructions from teacher:\n%s\n\n", req.Instruction)
	fmt.Fprintf(&b, "Rubric (criterion, weight):\n%s\n\n", rj)
	fmt.Fprintf(&b, "Max score for activity: %g\n\n", req.MaxScore)
	fmt.Fprintf(&b, "Student code (fenced):\n```%s\n%s\n```\n", req.Language, req.Code)
	b.WriteString("Score each criterion 0-100; compute weighted overall_score out of 100.\n")
	b.WriteString("Respond ONLY with JSON:\n")
	b.WriteString(payloadExample)
	return b.String()
}
