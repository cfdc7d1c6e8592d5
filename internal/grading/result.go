package grading

// PerCriterion is the oracle's verdict on a single rubric criterion. Weight is
// always the reconciled rubric weight, never the oracle's self-reported one.
type PerCriterion struct {
	Criterion string  `json:"criterion"`
	Weight    float64 `json:"weight"`
	Score     float64 `json:"score"`
	Comment   string  `json:"comment,omitempty"`
}

// GradingResult is the immutable outcome of one grading pass. A regrade
// produces a fresh GradingResult; existing ones are never edited.
type GradingResult struct {
	PerCriterion []PerCriterion `json:"per_criterion"`
	OverallScore float64        `json:"overall_score"` // 0..100
	Summary      string         `json:"summary"`
	ScaledTotal  float64        `json:"scaled_total"` // 0..max_score, 2 decimals
}
