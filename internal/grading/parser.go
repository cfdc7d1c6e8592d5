package grading

import (
	"encoding/json"
	"strings"
)

// ParseStatus tags how much of the oracle's response survived parsing, so the
// fallback path is a typed branch rather than a caught error posing as success.
type ParseStatus int

const (
	// ParseOK means the payload parsed and carried per-criterion feedback.
	ParseOK ParseStatus = iota
	// ParseEmpty means the payload parsed but listed no criteria; the result
	// enumerates the full rubric with zero scores.
	ParseEmpty
	// ParseFallback means the response was not parseable JSON at all.
	ParseFallback
)

const (
	summaryParseFailed = "Parsing failed."
	summaryNoFeedback  = "No feedback returned."
)

// oraclePayload is the shape the oracle is instructed to return. Fields may
// still be missing, duplicated or invented; reconciliation handles that.
type oraclePayload struct {
	PerCriterion []PerCriterion `json:"per_criterion"`
	OverallScore float64        `json:"overall_score"`
	Summary      string         `json:"summary"`
}

// ParseFeedback extracts the oracle's JSON payload from raw text and
// reconciles it against the normalized rubric.
//
// The oracle may wrap its JSON in prose or markdown fences, so extraction
// takes the span between the first '{' and the last '}'. A response that
// cannot be parsed degrades to a zero-score result instead of failing the
// submission: a broken grader must never crash the flow or award credit.
//
// Every returned row's Weight is overwritten with the rubric's normalized
// weight for that criterion (0 for invented names) — only the oracle's scores
// are trusted, never its weights. If the payload lists no criteria, the full
// rubric is enumerated with zero scores so the result always covers every
// criterion.
func ParseFeedback(raw string, rubric NormalizedRubric) (GradingResult, ParseStatus) {
	payload, ok := extractPayload(raw)
	if !ok {
		return GradingResult{
			PerCriterion: []PerCriterion{},
			OverallScore: 0,
			Summary:      summaryParseFailed,
		}, ParseFallback
	}

	if len(payload.PerCriterion) == 0 {
		rows := make([]PerCriterion, 0, len(rubric.Criteria))
		for _, c := range rubric.Criteria {
			rows = append(rows, PerCriterion{Criterion: c.Criterion, Weight: c.Weight})
		}
		summary := payload.Summary
		if summary == "" {
			summary = summaryNoFeedback
		}
		return GradingResult{
			PerCriterion: rows,
			OverallScore: 0,
			Summary:      summary,
		}, ParseEmpty
	}

	rows := make([]PerCriterion, 0, len(payload.PerCriterion))
	for _, r := range payload.PerCriterion {
		r.Weight = rubric.Weight(r.Criterion)
		rows = append(rows, r)
	}
	return GradingResult{
		PerCriterion: rows,
		OverallScore: payload.OverallScore,
		Summary:      payload.Summary,
	}, ParseOK
}

func extractPayload(raw string) (oraclePayload, bool) {
	var p oraclePayload
	i := strings.Index(raw, "{")
	j := strings.LastIndex(raw, "}")
	if i >= 0 && j > i {
		raw = raw[i : j+1]
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return oraclePayload{}, false
	}
	return p, true
}
