package reconcile

import (
	"testing"

	"github.com/jij0517269/gongtan-duishu-tool/internal/model"
)

func rowsWithOutcomes(counts map[model.Outcome]int) []model.ReconciliationRow {
	var rows []model.ReconciliationRow
	for outcome, n := range counts {
		for i := 0; i < n; i++ {
			rows = append(rows, model.ReconciliationRow{Outcome: outcome})
		}
	}
	return rows
}

func TestAggregate_Example(t *testing.T) {
	t.Parallel()

	rows := rowsWithOutcomes(map[model.Outcome]int{
		model.OutcomeConsistent:   6,
		model.OutcomeInconsistent: 3,
		model.OutcomeMissing:      1,
	})
	got := Aggregate(rows, RoundHalfUp)
	want := model.Stats{
		Total:             10,
		ConsistentCount:   6,
		ConsistentPct:     60.0,
		InconsistentCount: 3,
		InconsistentPct:   30.0,
		OtherCount:        1,
		MissingCount:      1,
	}
	if got != want {
		t.Fatalf("stats=%+v want=%+v", got, want)
	}
}

func TestAggregate_Empty(t *testing.T) {
	t.Parallel()

	got := Aggregate(nil, RoundHalfUp)
	if got != (model.Stats{}) {
		t.Fatalf("expected zero stats, got %+v", got)
	}
}

func TestAggregate_CountsAlwaysSum(t *testing.T) {
	t.Parallel()

	inputs := []map[model.Outcome]int{
		{},
		{model.OutcomeMalformed: 2},
		{model.OutcomeConsistent: 1, model.OutcomeInconsistent: 1, model.OutcomeMissing: 1},
		{model.OutcomeUnset: 4, model.OutcomeConsistent: 3},
	}
	for _, in := range inputs {
		s := Aggregate(rowsWithOutcomes(in), RoundHalfUp)
		if s.ConsistentCount+s.InconsistentCount+s.OtherCount != s.Total {
			t.Fatalf("counts do not sum: %+v", s)
		}
	}
}

func TestAggregate_PercentOneDecimal(t *testing.T) {
	t.Parallel()

	rows := rowsWithOutcomes(map[model.Outcome]int{
		model.OutcomeConsistent:   1,
		model.OutcomeInconsistent: 2,
	})
	s := Aggregate(rows, RoundHalfUp)
	if s.ConsistentPct != 33.3 || s.InconsistentPct != 66.7 {
		t.Fatalf("unexpected pct: %+v", s)
	}
}
