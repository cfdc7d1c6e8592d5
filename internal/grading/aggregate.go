package grading

import "math"

// Aggregate computes the bounded overall score from reconciled per-criterion
// rows and projects it onto the activity's max score.
//
// overall = Σ(score_i * weight_i), clamped to [0,100] to absorb oracle scores
// outside range and floating-point drift in the weight sum. The clamp makes
// scaled implicitly bounded to [0, maxScore]. Pure: identical inputs yield
// bit-identical outputs.
func Aggregate(rows []PerCriterion, maxScore float64) (overall, scaled float64) {
	for _, r := range rows {
		overall += r.Score * r.Weight
	}
	if overall < 0 {
		overall = 0
	}
	if overall > 100 {
		overall = 100
	}
	scaled = round2(overall / 100.0 * maxScore)
	return overall, scaled
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
