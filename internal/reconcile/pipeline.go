package reconcile

import "github.com/jij0517269/gongtan-duishu-tool/internal/model"

// Options 对数参数
type Options struct {
	Rounding     RoundingMode
	MatchWorkers int
}

// NewRows 由账单记录生成结果行，账单金额保留两位小数
func NewRows(records []model.BillingRecord, rounding RoundingMode) []model.ReconciliationRow {
	rows := make([]model.ReconciliationRow, 0, len(records))
	for _, rec := range records {
		if rec.ResourceName == "" {
			continue
		}
		rows = append(rows, model.ReconciliationRow{
			ResourceName:  rec.ResourceName,
			ClaimedAmount: rounding.RoundAmount(rec.ClaimedAmount),
		})
	}
	return rows
}

// Result 一次完整对数的产物
type Result struct {
	Index *FloorIndex
	Rows  []model.ReconciliationRow
	Match MatchSummary
	Stats model.Stats
}

// Run 执行 建索引 -> 匹配 -> 对比 -> 统计
func Run(records []model.BillingRecord, sheets []model.FormulaSheet, opts Options) Result {
	index := BuildFloorIndex(sheets, opts.Rounding)
	rows, summary := NewMatcher(index, opts.Rounding, opts.MatchWorkers).Match(NewRows(records, opts.Rounding))
	rows = NewComparator(opts.Rounding).Compare(rows)
	return Result{
		Index: index,
		Rows:  rows,
		Match: summary,
		Stats: Aggregate(rows, opts.Rounding),
	}
}
