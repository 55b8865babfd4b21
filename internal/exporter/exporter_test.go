package exporter

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/jij0517269/gongtan-duishu-tool/internal/model"
	"github.com/jij0517269/gongtan-duishu-tool/internal/parser"
)

func sampleRows() []model.ReconciliationRow {
	return []model.ReconciliationRow{
		{ResourceName: "住宅12-0301电费", ClaimedAmount: parser.ParseAmount("150.01"), FormFloorLabel: "表单'12栋'-3层", MatchedAmount: parser.ParseAmount("150.01"), Outcome: model.OutcomeConsistent},
		{ResourceName: "住宅12-0401电费", ClaimedAmount: parser.ParseAmount("99.99"), FormFloorLabel: "表单'12栋'-4层", MatchedAmount: parser.ParseAmount("100"), Outcome: model.OutcomeInconsistent},
		{ResourceName: "住宅08-0101电费", ClaimedAmount: parser.ParseAmount("10"), FormFloorLabel: "表单'8栋'-1层", Outcome: model.OutcomeMissing},
		{ResourceName: "车位费", ClaimedAmount: parser.ParseAmount("abc"), Outcome: model.OutcomeMalformed},
	}
}

func fillColor(t *testing.T, f *excelize.File, cell string) string {
	t.Helper()
	id, err := f.GetCellStyle(ResultSheet, cell)
	if err != nil {
		t.Fatalf("GetCellStyle %s: %v", cell, err)
	}
	style, err := f.GetStyle(id)
	if err != nil {
		t.Fatalf("GetStyle %s: %v", cell, err)
	}
	if len(style.Fill.Color) == 0 {
		return ""
	}
	return strings.ToUpper(style.Fill.Color[0])
}

func TestExport_ResultSheet(t *testing.T) {
	t.Parallel()

	stats := model.Stats{Total: 4, ConsistentCount: 1, ConsistentPct: 25, InconsistentCount: 1, InconsistentPct: 25, OtherCount: 2, MissingCount: 1, MalformedCount: 1}

	var events []ProgressEvent
	f, err := NewExporter().Export(sampleRows(), ExportOptions{
		Stats:    &stats,
		Progress: func(e ProgressEvent) { events = append(events, e) },
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows(ResultSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("rows=%d", len(rows))
	}
	if rows[0][0] != "资源名称" || rows[0][4] != "对比结果" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "150.01" || rows[1][3] != "150.01" || rows[1][4] != "一致" {
		t.Fatalf("unexpected row 2: %v", rows[1])
	}
	if rows[2][3] != "100.00" || rows[2][4] != "不一致" {
		t.Fatalf("unexpected row 3: %v", rows[2])
	}
	if rows[3][3] != "" || rows[3][4] != "数据缺失" {
		t.Fatalf("unexpected row 4: %v", rows[3])
	}
	if rows[4][1] != "abc" || rows[4][4] != "格式错误" {
		t.Fatalf("unexpected row 5: %v", rows[4])
	}

	if c := fillColor(t, f, "B2"); !strings.Contains(c, colorConsistent) {
		t.Fatalf("consistent fill=%q", c)
	}
	if c := fillColor(t, f, "E3"); !strings.Contains(c, colorInconsistent) {
		t.Fatalf("inconsistent fill=%q", c)
	}
	if c := fillColor(t, f, "D4"); !strings.Contains(c, colorDefault) {
		t.Fatalf("missing row fill=%q", c)
	}

	summary, err := f.GetRows(SummarySheet)
	if err != nil {
		t.Fatalf("GetRows summary: %v", err)
	}
	if len(summary) != 7 || summary[2][1] != "1" || summary[2][2] != "25" {
		t.Fatalf("unexpected summary: %v", summary)
	}

	if len(events) == 0 || events[len(events)-1].Percent != 100 {
		t.Fatalf("unexpected progress events: %v", events)
	}
}

func TestExport_WithoutStats(t *testing.T) {
	t.Parallel()

	f, err := NewExporter().Export(nil, ExportOptions{})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	if idx, _ := f.GetSheetIndex(SummarySheet); idx != -1 {
		t.Fatalf("summary sheet should not exist")
	}
	rows, err := f.GetRows(ResultSheet)
	if err != nil || len(rows) != 1 {
		t.Fatalf("expected header only: %v %v", rows, err)
	}
}
