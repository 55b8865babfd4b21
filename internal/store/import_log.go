package store

import (
	"fmt"
	"time"

	"github.com/jij0517269/gongtan-duishu-tool/internal/model"
)

// ImportLog 上传记录
type ImportLog struct {
	ID           int64           `json:"id"`
	SessionID    string          `json:"sessionId"`
	Kind         model.TableKind `json:"kind"`
	Filename     string          `json:"filename"`
	FileSize     int64           `json:"fileSize"`
	FileHash     string          `json:"fileHash"`
	TotalSheets  int             `json:"totalSheets"`
	LoadedSheets int             `json:"loadedSheets"`
	LoadedRows   int             `json:"loadedRows"`
	SkippedRows  int             `json:"skippedRows"`
	Status       string          `json:"status"` // success / error
	ErrorMessage string          `json:"errorMessage,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// NewImportLog 由读取报告生成上传记录
func NewImportLog(sessionID string, report *model.ImportReport, fileSize int64, fileHash string) ImportLog {
	return ImportLog{
		SessionID:    sessionID,
		Kind:         report.Kind,
		Filename:     report.Filename,
		FileSize:     fileSize,
		FileHash:     fileHash,
		TotalSheets:  report.TotalSheets,
		LoadedSheets: report.LoadedSheets,
		LoadedRows:   report.LoadedRows,
		SkippedRows:  report.SkippedRows,
		Status:       "success",
	}
}

// CreateImportLog 写入上传记录，返回 id
func (s *Store) CreateImportLog(log ImportLog) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO import_logs (
			session_id, kind, filename, file_size, file_hash,
			total_sheets, loaded_sheets, loaded_rows, skipped_rows,
			status, error_message
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		log.SessionID, string(log.Kind), log.Filename, log.FileSize, log.FileHash,
		log.TotalSheets, log.LoadedSheets, log.LoadedRows, log.SkippedRows,
		log.Status, log.ErrorMessage,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create import log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import log id: %w", err)
	}
	return id, nil
}

// ListImportLogs 最近的上传记录（新的在前）
func (s *Store) ListImportLogs(limit int) ([]ImportLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, session_id, kind, filename, file_size, file_hash,
			total_sheets, loaded_sheets, loaded_rows, skipped_rows,
			status, error_message, created_at
		FROM import_logs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query import logs: %w", err)
	}
	defer rows.Close()

	var logs []ImportLog
	for rows.Next() {
		var l ImportLog
		var kind string
		if err := rows.Scan(
			&l.ID, &l.SessionID, &kind, &l.Filename, &l.FileSize, &l.FileHash,
			&l.TotalSheets, &l.LoadedSheets, &l.LoadedRows, &l.SkippedRows,
			&l.Status, &l.ErrorMessage, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan import log: %w", err)
		}
		l.Kind = model.TableKind(kind)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
