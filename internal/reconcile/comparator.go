package reconcile

import "github.com/jij0517269/gongtan-duishu-tool/internal/model"

// Comparator 账单金额与分摊金额对比
type Comparator struct {
	rounding RoundingMode
}

// NewComparator 创建对比器
func NewComparator(rounding RoundingMode) *Comparator {
	return &Comparator{rounding: rounding}
}

// Outcome 判定单行结果
//
// 各自保留两位小数后精确比较。有值但无法转为数值时为格式错误，
// 优先于缺失判定。
func (c *Comparator) Outcome(claimed, matched model.Amount) model.Outcome {
	if claimed.Malformed() || matched.Malformed() {
		return model.OutcomeMalformed
	}
	if !claimed.Valid || !matched.Valid {
		return model.OutcomeMissing
	}

	a := c.rounding.Round(claimed.Value, AmountPlaces)
	b := c.rounding.Round(matched.Value, AmountPlaces)
	if a.Equal(b) {
		return model.OutcomeConsistent
	}
	return model.OutcomeInconsistent
}

// Compare 对比全部行，返回新切片
func (c *Comparator) Compare(rows []model.ReconciliationRow) []model.ReconciliationRow {
	out := make([]model.ReconciliationRow, len(rows))
	for i, row := range rows {
		row.Outcome = c.Outcome(row.ClaimedAmount, row.MatchedAmount)
		out[i] = row
	}
	return out
}
