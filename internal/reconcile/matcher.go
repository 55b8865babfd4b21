package reconcile

import (
	"golang.org/x/sync/errgroup"

	"github.com/jij0517269/gongtan-duishu-tool/internal/model"
	"github.com/jij0517269/gongtan-duishu-tool/internal/parser"
)

// matchChunkSize 并行匹配时每个任务处理的行数
const matchChunkSize = 256

// Matcher 将账单行按 (楼栋, 楼层) 关联到公式表金额
type Matcher struct {
	index    *FloorIndex
	rounding RoundingMode
	workers  int
}

// NewMatcher 创建匹配器；workers <= 1 时顺序执行
func NewMatcher(index *FloorIndex, rounding RoundingMode, workers int) *Matcher {
	return &Matcher{
		index:    index,
		rounding: rounding,
		workers:  workers,
	}
}

// MatchSummary 匹配汇总
type MatchSummary struct {
	Total           int `json:"total"`
	Matched         int `json:"matched"`         // 取到金额
	Unparsed        int `json:"unparsed"`        // 资源名称不符合命名规则
	BuildingMissing int `json:"buildingMissing"` // 楼栋表单未加载
	FloorMissing    int `json:"floorMissing"`    // 楼层不存在
}

// MatchRow 匹配单行
//
// 先清空上一次的匹配结果与对比结果，保证重复匹配结果一致。
func (m *Matcher) MatchRow(row model.ReconciliationRow) model.ReconciliationRow {
	row, _ = m.matchRow(row)
	return row
}

func (m *Matcher) matchRow(row model.ReconciliationRow) (model.ReconciliationRow, matchStatus) {
	row.FormFloorLabel = ""
	row.MatchedAmount = model.Amount{}
	row.Outcome = model.OutcomeUnset

	key, ok := parser.ParseResourceName(row.ResourceName)
	if !ok {
		return row, statusUnparsed
	}
	row.FormFloorLabel = key.FormLabel()

	amount, res := m.index.Lookup(key.BuildingNumber, key.FloorLabel)
	switch res {
	case LookupBuildingMissing:
		return row, statusBuildingMissing
	case LookupFloorMissing:
		return row, statusFloorMissing
	}

	row.MatchedAmount = m.rounding.RoundAmount(amount)
	return row, statusMatched
}

type matchStatus uint8

const (
	statusMatched matchStatus = iota
	statusUnparsed
	statusBuildingMissing
	statusFloorMissing
)

// Match 匹配全部行，返回新切片，顺序与输入一致
func (m *Matcher) Match(rows []model.ReconciliationRow) ([]model.ReconciliationRow, MatchSummary) {
	out := make([]model.ReconciliationRow, len(rows))
	statuses := make([]matchStatus, len(rows))

	if m.workers <= 1 || len(rows) <= matchChunkSize {
		for i, row := range rows {
			out[i], statuses[i] = m.matchRow(row)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(m.workers)
		for start := 0; start < len(rows); start += matchChunkSize {
			end := min(start+matchChunkSize, len(rows))
			g.Go(func() error {
				for i := start; i < end; i++ {
					out[i], statuses[i] = m.matchRow(rows[i])
				}
				return nil
			})
		}
		_ = g.Wait()
	}

	summary := MatchSummary{Total: len(rows)}
	for _, s := range statuses {
		switch s {
		case statusMatched:
			summary.Matched++
		case statusUnparsed:
			summary.Unparsed++
		case statusBuildingMissing:
			summary.BuildingMissing++
		case statusFloorMissing:
			summary.FloorMissing++
		}
	}
	return out, summary
}
