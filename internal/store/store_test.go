package store

import (
	"path/filepath"
	"testing"

	"github.com/jij0517269/gongtan-duishu-tool/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(filepath.Join(t.TempDir(), "gongtan.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestImportLogs(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	report := &model.ImportReport{
		Kind:         model.TableFormula,
		Filename:     "表格2.xlsx",
		TotalSheets:  36,
		LoadedSheets: 34,
		LoadedRows:   612,
		SkippedRows:  3,
	}
	id, err := st.CreateImportLog(NewImportLog("s-1", report, 2048, "abc123"))
	if err != nil {
		t.Fatalf("CreateImportLog: %v", err)
	}
	if id <= 0 {
		t.Fatalf("unexpected id: %d", id)
	}

	failed := ImportLog{SessionID: "s-1", Kind: model.TableBilling, Filename: "坏文件.xlsx", Status: "error", ErrorMessage: "缺少必要列"}
	if _, err := st.CreateImportLog(failed); err != nil {
		t.Fatalf("CreateImportLog failed log: %v", err)
	}

	logs, err := st.ListImportLogs(10)
	if err != nil {
		t.Fatalf("ListImportLogs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("logs=%d", len(logs))
	}
	if logs[0].Filename != "坏文件.xlsx" || logs[0].Status != "error" {
		t.Fatalf("expected newest first: %+v", logs[0])
	}
	l := logs[1]
	if l.Kind != model.TableFormula || l.LoadedSheets != 34 || l.LoadedRows != 612 || l.FileHash != "abc123" || l.CreatedAt.IsZero() {
		t.Fatalf("unexpected log: %+v", l)
	}

	limited, err := st.ListImportLogs(1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("limit not applied: %d %v", len(limited), err)
	}
}

func TestCompareRuns(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	stats := model.Stats{
		Total:             10,
		ConsistentCount:   6,
		ConsistentPct:     60,
		InconsistentCount: 3,
		InconsistentPct:   30,
		OtherCount:        1,
		MissingCount:      1,
	}
	id, err := st.InsertCompareRun(CompareRun{
		SessionID:   "s-1",
		BillingFile: "表格1.xlsx",
		FormulaFile: "表格2.xlsx",
		Rounding:    "half_up",
		Stats:       stats,
	})
	if err != nil {
		t.Fatalf("InsertCompareRun: %v", err)
	}
	if id == "" {
		t.Fatalf("expected generated id")
	}

	runs, err := st.ListCompareRuns(0)
	if err != nil {
		t.Fatalf("ListCompareRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs=%d", len(runs))
	}
	if runs[0].ID != id || runs[0].Stats != stats || runs[0].Rounding != "half_up" {
		t.Fatalf("unexpected run: %+v", runs[0])
	}
}

func TestNew_ReopenKeepsHistory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "gongtan.db")
	st, err := New(path)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	if _, err := st.InsertCompareRun(CompareRun{SessionID: "s"}); err != nil {
		t.Fatalf("InsertCompareRun: %v", err)
	}
	_ = st.Close()

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	imports, compares, err := reopened.Counts()
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if imports != 0 || compares != 1 {
		t.Fatalf("imports=%d compares=%d", imports, compares)
	}
}
