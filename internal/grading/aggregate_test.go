package grading_test

import (
	"testing"

	"github.com/codegrade-ai/codegrade/internal/grading"
)

func TestAggregate_WeightedSum(t *testing.T) {
	rows := []grading.PerCriterion{
		{Criterion: "Correctness", Weight: 0.5, Score: 90},
		{Criterion: "Quality", Weight: 0.2, Score: 80},
		{Criterion: "Efficiency", Weight: 0.2, Score: 70},
		{Criterion: "Edge Cases", Weight: 0.1, Score: 60},
	}
	overall, scaled := grading.Aggregate(rows, 100)
	if overall != 81.0 {
		t.Fatalf("overall = %f, want 81.0", overall)
	}
	if scaled != 81.0 {
		t.Fatalf("scaled = %f, want 81.0", scaled)
	}
}

func TestAggregate_Bounds(t *testing.T) {
	cases := []struct {
		name        string
		rows        []grading.PerCriterion
		maxScore    float64
		wantOverall float64
		wantScaled  float64
	}{
		{
			"oracle score above range clamps to 100",
			[]grading.PerCriterion{{Weight: 1.0, Score: 250}},
			50, 100, 50,
		},
		{
			"negative drift clamps to 0",
			[]grading.PerCriterion{{Weight: 1.0, Score: -5}},
			100, 0, 0,
		},
		{
			"weights drifting past 1.0 stay bounded",
			[]grading.PerCriterion{
				{Weight: 0.6, Score: 100},
				{Weight: 0.6, Score: 100},
			},
			100, 100, 100,
		},
		{
			"no rows scores zero",
			nil, 100, 0, 0,
		},
		{
			"scaled rounds to two decimals",
			[]grading.PerCriterion{{Weight: 1.0, Score: 81}},
			33, 81, 26.73,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			overall, scaled := grading.Aggregate(tc.rows, tc.maxScore)
			if overall != tc.wantOverall {
				t.Fatalf("overall = %f, want %f", overall, tc.wantOverall)
			}
			if scaled != tc.wantScaled {
				t.Fatalf("scaled = %f, want %f", scaled, tc.wantScaled)
			}
			if overall < 0 || overall > 100 {
				t.Fatalf("overall %f out of [0,100]", overall)
			}
			if scaled < 0 || scaled > tc.maxScore {
				t.Fatalf("scaled %f out of [0,%f]", scaled, tc.maxScore)
			}
		})
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	rows := []grading.PerCriterion{
		{Criterion: "A", Weight: 0.3333333333, Score: 77.7},
		{Criterion: "B", Weight: 0.6666666667, Score: 33.3},
	}
	o1, s1 := grading.Aggregate(rows, 40)
	o2, s2 := grading.Aggregate(rows, 40)
	if o1 != o2 || s1 != s2 {
		t.Fatalf("aggregate not bit-identical: (%v,%v) vs (%v,%v)", o1, s1, o2, s2)
	}
}
