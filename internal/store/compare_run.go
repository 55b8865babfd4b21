package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jij0517269/gongtan-duishu-tool/internal/model"
)

// CompareRun 一次对比的统计记录
type CompareRun struct {
	ID          string      `json:"id"`
	SessionID   string      `json:"sessionId"`
	BillingFile string      `json:"billingFile"`
	FormulaFile string      `json:"formulaFile"`
	Rounding    string      `json:"rounding"`
	Stats       model.Stats `json:"stats"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// InsertCompareRun 写入对比记录；ID 为空时自动生成
func (s *Store) InsertCompareRun(run CompareRun) (string, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	st := run.Stats
	_, err := s.db.Exec(`
		INSERT INTO compare_runs (
			id, session_id, billing_file, formula_file, rounding,
			total, consistent_count, inconsistent_count, missing_count, malformed_count,
			consistent_pct, inconsistent_pct
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID, run.SessionID, run.BillingFile, run.FormulaFile, run.Rounding,
		st.Total, st.ConsistentCount, st.InconsistentCount, st.MissingCount, st.MalformedCount,
		st.ConsistentPct, st.InconsistentPct,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert compare run: %w", err)
	}
	return run.ID, nil
}

// ListCompareRuns 最近的对比记录（新的在前）
func (s *Store) ListCompareRuns(limit int) ([]CompareRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, session_id, billing_file, formula_file, rounding,
			total, consistent_count, inconsistent_count, missing_count, malformed_count,
			consistent_pct, inconsistent_pct, created_at
		FROM compare_runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query compare runs: %w", err)
	}
	defer rows.Close()

	var runs []CompareRun
	for rows.Next() {
		var r CompareRun
		st := &r.Stats
		if err := rows.Scan(
			&r.ID, &r.SessionID, &r.BillingFile, &r.FormulaFile, &r.Rounding,
			&st.Total, &st.ConsistentCount, &st.InconsistentCount, &st.MissingCount, &st.MalformedCount,
			&st.ConsistentPct, &st.InconsistentPct, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan compare run: %w", err)
		}
		st.OtherCount = st.Total - st.ConsistentCount - st.InconsistentCount
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
