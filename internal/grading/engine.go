package grading

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Engine runs the full grading pipeline for one submission: validate the
// request, normalize the rubric, consult the oracle, parse and reconcile the
// feedback, aggregate the score. It holds no per-submission state, so one
// Engine serves concurrent pipelines.
type Engine struct {
	oracle   Oracle
	validate *validator.Validate
}

func NewEngine(oracle Oracle) *Engine {
	return &Engine{
		oracle:   oracle,
		validate: validator.New(),
	}
}

// Model reports the oracle model identifier, recorded on each submission.
func (e *Engine) Model() string { return e.oracle.Model() }

// Grade produces a complete GradingResult or nothing: either the pipeline
// runs through aggregation, or it fails (ErrInvalidRequest, ErrEmptyRubric,
// ErrOracleUnavailable) before any result exists. A malformed oracle response
// is not an error — it degrades to the parser's zero-score fallback so the
// student still gets a recorded attempt.
func (e *Engine) Grade(ctx context.Context, req Request) (GradingResult, error) {
	if err := e.validate.Struct(req); err != nil {
		return GradingResult{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	rubric, err := Normalize(req.Criteria)
	if err != nil {
		return GradingResult{}, err
	}

	raw, err := e.oracle.Evaluate(ctx, req, rubric)
	if err != nil {
		return GradingResult{}, err
	}

	res, _ := ParseFeedback(raw, rubric)
	res.OverallScore, res.ScaledTotal = Aggregate(res.PerCriterion, req.MaxScore)
	return res, nil
}
