package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jij0517269/gongtan-duishu-tool/internal/model"
)

// 结果表 Sheet 名与表头
const (
	ResultSheet  = "对比结果"
	SummarySheet = "统计"
)

var resultHeader = []interface{}{"资源名称", "增量推账金额(元)", "表单-楼层", "总计每户分摊金额", "对比结果"}

// 行底色
const (
	colorConsistent   = "90EE90"
	colorInconsistent = "FFA07A"
	colorDefault      = "FFFFFF"
)

// Exporter 对比结果导出器
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

// ExportOptions 导出选项
type ExportOptions struct {
	Stats    *model.Stats // 为空时不生成统计 Sheet
	Progress func(ProgressEvent)
}

// rowStyles 一类结果行使用的样式
type rowStyles struct {
	amount  int // 金额列：居中、两位小数
	outcome int // 结果列
}

// Export 生成结果工作簿
//
// 金额列居中并保留两位小数；一致行标绿，不一致行标橙，其余行不着色。
func (e *Exporter) Export(rows []model.ReconciliationRow, opts ExportOptions) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", ResultSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("创建结果表失败: %w", err)
	}
	reportProgress(opts.Progress, 5, "准备样式")

	styles, err := buildStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	if err := e.writeResultSheet(f, rows, styles, opts.Progress); err != nil {
		_ = f.Close()
		return nil, err
	}

	if opts.Stats != nil {
		reportProgress(opts.Progress, 95, "写入统计")
		if err := e.writeSummarySheet(f, *opts.Stats); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	reportProgress(opts.Progress, 100, "完成")
	return f, nil
}

func buildStyles(f *excelize.File) (map[model.Outcome]rowStyles, error) {
	numFmt := 2 // 0.00
	newStyle := func(color string, center, amount bool) (int, error) {
		s := &excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		}
		if center {
			s.Alignment = &excelize.Alignment{Horizontal: "center"}
		}
		if amount {
			s.NumFmt = numFmt
		}
		return f.NewStyle(s)
	}

	styles := make(map[model.Outcome]rowStyles)
	for outcome, color := range map[model.Outcome]string{
		model.OutcomeUnset:        colorDefault,
		model.OutcomeConsistent:   colorConsistent,
		model.OutcomeInconsistent: colorInconsistent,
	} {
		amount, err := newStyle(color, true, true)
		if err != nil {
			return nil, fmt.Errorf("创建样式失败: %w", err)
		}
		outcomeStyle := 0
		if outcome != model.OutcomeUnset {
			if outcomeStyle, err = newStyle(color, false, false); err != nil {
				return nil, fmt.Errorf("创建样式失败: %w", err)
			}
		}
		styles[outcome] = rowStyles{amount: amount, outcome: outcomeStyle}
	}
	return styles, nil
}

func (e *Exporter) writeResultSheet(f *excelize.File, rows []model.ReconciliationRow, styles map[model.Outcome]rowStyles, progress func(ProgressEvent)) error {
	if err := f.SetSheetRow(ResultSheet, "A1", &resultHeader); err != nil {
		return fmt.Errorf("写入表头失败: %w", err)
	}
	_ = f.SetColWidth(ResultSheet, "A", "A", 28)
	_ = f.SetColWidth(ResultSheet, "B", "E", 18)

	for i, row := range rows {
		r := i + 2
		values := []interface{}{
			row.ResourceName,
			amountCellValue(row.ClaimedAmount),
			row.FormFloorLabel,
			amountCellValue(row.MatchedAmount),
			row.Outcome.Label(),
		}
		axis := fmt.Sprintf("A%d", r)
		if err := f.SetSheetRow(ResultSheet, axis, &values); err != nil {
			return fmt.Errorf("写入第 %d 行失败: %w", r, err)
		}

		st, ok := styles[row.Outcome]
		if !ok {
			st = styles[model.OutcomeUnset]
		}
		if err := f.SetCellStyle(ResultSheet, fmt.Sprintf("B%d", r), fmt.Sprintf("B%d", r), st.amount); err != nil {
			return err
		}
		if err := f.SetCellStyle(ResultSheet, fmt.Sprintf("D%d", r), fmt.Sprintf("D%d", r), st.amount); err != nil {
			return err
		}
		if st.outcome != 0 {
			if err := f.SetCellStyle(ResultSheet, fmt.Sprintf("E%d", r), fmt.Sprintf("E%d", r), st.outcome); err != nil {
				return err
			}
		}

		if len(rows) > 0 && i%500 == 0 {
			reportProgress(progress, 10+80*i/len(rows), "写入结果行")
		}
	}
	return nil
}

func (e *Exporter) writeSummarySheet(f *excelize.File, stats model.Stats) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("创建统计表失败: %w", err)
	}
	lines := [][]interface{}{
		{"项目", "行数", "占比(%)"},
		{"总计", stats.Total, nil},
		{"一致", stats.ConsistentCount, stats.ConsistentPct},
		{"不一致", stats.InconsistentCount, stats.InconsistentPct},
		{"其他（缺失/错误）", stats.OtherCount, nil},
		{"其中：数据缺失", stats.MissingCount, nil},
		{"其中：格式错误", stats.MalformedCount, nil},
	}
	for i, line := range lines {
		line := line
		if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", i+1), &line); err != nil {
			return fmt.Errorf("写入统计失败: %w", err)
		}
	}
	_ = f.SetColWidth(SummarySheet, "A", "A", 20)
	return nil
}

// amountCellValue 有效金额写数值，格式错误写原文，缺失留空
func amountCellValue(a model.Amount) interface{} {
	switch {
	case a.Valid:
		return a.Value.InexactFloat64()
	case a.Raw != "":
		return a.Raw
	default:
		return nil
	}
}
