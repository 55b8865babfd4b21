package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/jij0517269/gongtan-duishu-tool/internal/model"
	"github.com/jij0517269/gongtan-duishu-tool/internal/parser"
)

func amt(s string) model.Amount {
	return parser.ParseAmount(s)
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}

func building12Sheet(amount string) model.FormulaSheet {
	return model.FormulaSheet{
		SheetName:      "12栋",
		BuildingNumber: 12,
		Floors: []model.FloorAmount{
			{BuildingNumber: 12, FloorLabel: "2层", ApportionedAmount: amt("88.8")},
			{BuildingNumber: 12, FloorLabel: "3层", ApportionedAmount: amt(amount)},
		},
	}
}
