package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/jij0517269/gongtan-duishu-tool/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Aggregate 统计各类结果数量与占比
//
// 总数为 0 时所有计数为 0，不计算占比。
func Aggregate(rows []model.ReconciliationRow, rounding RoundingMode) model.Stats {
	stats := model.Stats{Total: len(rows)}
	for _, row := range rows {
		switch row.Outcome {
		case model.OutcomeConsistent:
			stats.ConsistentCount++
		case model.OutcomeInconsistent:
			stats.InconsistentCount++
		case model.OutcomeMissing:
			stats.MissingCount++
		case model.OutcomeMalformed:
			stats.MalformedCount++
		}
	}
	stats.OtherCount = stats.Total - stats.ConsistentCount - stats.InconsistentCount

	if stats.Total == 0 {
		return stats
	}
	stats.ConsistentPct = percent(stats.ConsistentCount, stats.Total, rounding)
	stats.InconsistentPct = percent(stats.InconsistentCount, stats.Total, rounding)
	return stats
}

func percent(count, total int, rounding RoundingMode) float64 {
	v := decimal.NewFromInt(int64(count)).Mul(hundred).Div(decimal.NewFromInt(int64(total)))
	return rounding.Round(v, 1).InexactFloat64()
}
