package reconcile

import (
	"testing"

	"github.com/jij0517269/gongtan-duishu-tool/internal/model"
)

func TestComparator_Outcome(t *testing.T) {
	t.Parallel()

	c := NewComparator(RoundHalfUp)
	cases := []struct {
		name    string
		claimed string
		matched string
		want    model.Outcome
	}{
		{name: "equal", claimed: "150.01", matched: "150.01", want: model.OutcomeConsistent},
		{name: "equal after rounding", claimed: "150.005", matched: "150.01", want: model.OutcomeConsistent},
		{name: "beyond second decimal", claimed: "10.001", matched: "10.004", want: model.OutcomeConsistent},
		{name: "differ", claimed: "99.994", matched: "100.00", want: model.OutcomeInconsistent},
		{name: "one cent", claimed: "10.00", matched: "10.01", want: model.OutcomeInconsistent},
		{name: "claimed absent", claimed: "", matched: "1", want: model.OutcomeMissing},
		{name: "matched absent", claimed: "1", matched: "", want: model.OutcomeMissing},
		{name: "both absent", claimed: "", matched: "", want: model.OutcomeMissing},
		{name: "claimed malformed", claimed: "abc", matched: "1", want: model.OutcomeMalformed},
		{name: "malformed beats missing", claimed: "abc", matched: "", want: model.OutcomeMalformed},
		{name: "matched malformed", claimed: "1", matched: "#VALUE!", want: model.OutcomeMalformed},
	}
	for _, tc := range cases {
		if got := c.Outcome(amt(tc.claimed), amt(tc.matched)); got != tc.want {
			t.Fatalf("%s: outcome=%q want=%q", tc.name, got, tc.want)
		}
	}
}

func TestComparator_RoundingModeAtBoundary(t *testing.T) {
	t.Parallel()

	// 0.125 vs 0.13：四舍五入一致，银行家舍入不一致
	if got := NewComparator(RoundHalfUp).Outcome(amt("0.125"), amt("0.13")); got != model.OutcomeConsistent {
		t.Fatalf("half_up: %q", got)
	}
	if got := NewComparator(RoundHalfEven).Outcome(amt("0.125"), amt("0.13")); got != model.OutcomeInconsistent {
		t.Fatalf("half_even: %q", got)
	}
}

func TestComparator_RoundedEqualityProperty(t *testing.T) {
	t.Parallel()

	c := NewComparator(RoundHalfUp)
	values := []string{"0", "0.004", "0.005", "0.014", "1.999", "2", "2.004", "-0.005", "-0.004", "1234.5678"}
	for _, a := range values {
		for _, b := range values {
			ra := RoundHalfUp.Round(amt(a).Value, 2)
			rb := RoundHalfUp.Round(amt(b).Value, 2)
			want := model.OutcomeInconsistent
			if ra.Equal(rb) {
				want = model.OutcomeConsistent
			}
			if got := c.Outcome(amt(a), amt(b)); got != want {
				t.Fatalf("Outcome(%s,%s)=%q want=%q", a, b, got, want)
			}
		}
	}
}

func TestComparator_CompareIsIdempotent(t *testing.T) {
	t.Parallel()

	c := NewComparator(RoundHalfUp)
	rows := []model.ReconciliationRow{
		{ResourceName: "a", ClaimedAmount: amt("1"), MatchedAmount: amt("1")},
		{ResourceName: "b", ClaimedAmount: amt("1"), MatchedAmount: amt("2")},
		{ResourceName: "c", ClaimedAmount: amt("1")},
	}
	once := c.Compare(rows)
	twice := c.Compare(once)
	for i := range once {
		if once[i].Outcome != twice[i].Outcome {
			t.Fatalf("row %d: %q vs %q", i, once[i].Outcome, twice[i].Outcome)
		}
	}
	if rows[0].Outcome != model.OutcomeUnset {
		t.Fatalf("input rows mutated")
	}
}
