package grading

// Criterion is one named, weighted grading dimension of an activity rubric.
// Weights arrive on whatever scale the teacher typed them in (raw percentages,
// fractions, point values) and are re-normalized on every grading pass.
type Criterion struct {
	Criterion string  `json:"criterion" validate:"required,min=2,max=200"`
	Weight    float64 `json:"weight" validate:"gte=0"`
}

// NormalizedRubric is a rubric whose weights are non-negative and sum to 1.0,
// in the original rubric order. It is recomputed per grading pass and never
// persisted.
type NormalizedRubric struct {
	Criteria []Criterion

	byName map[string]float64
}

// Weight returns the normalized weight for a criterion name, or 0 for names
// the rubric does not contain (e.g. criteria the oracle invented). Duplicate
// names resolve last-write-wins, mirroring rubric-editing semantics.
func (r NormalizedRubric) Weight(name string) float64 {
	return r.byName[name]
}

// Normalize converts raw rubric criteria into a NormalizedRubric.
//
// If the raw weights sum to zero or less (all zero, all missing), the total is
// treated as 1.0 so every normalized weight stays 0 instead of dividing by
// zero. That is a policy choice: an all-zero rubric is a valid, if odd,
// teacher input and must not fail a student's submission.
func Normalize(criteria []Criterion) (NormalizedRubric, error) {
	if len(criteria) == 0 {
		return NormalizedRubric{}, ErrEmptyRubric
	}
	total := 0.0
	for _, c := range criteria {
		if c.Weight > 0 {
			total += c.Weight
		}
	}
	if total <= 0 {
		total = 1.0
	}
	out := NormalizedRubric{
		Criteria: make([]Criterion, 0, len(criteria)),
		byName:   make(map[string]float64, len(criteria)),
	}
	for _, c := range criteria {
		w := c.Weight / total
		if w < 0 {
			w = 0
		}
		out.Criteria = append(out.Criteria, Criterion{Criterion: c.Criterion, Weight: w})
		out.byName[c.Criterion] = w
	}
	return out, nil
}
