package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Store 对数历史库（SQLite）
//
// 只记录上传与对比的审计信息：文件名、哈希、行数与统计结果。
// 表格内容不入库，重启后会话不会恢复。
type Store struct {
	db *sql.DB
}

// New 打开历史库，不存在时创建目录与表结构
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	// 上传与对比由不同请求写入，等待锁而不是立即返回 SQLITE_BUSY
	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close 关闭历史库
func (s *Store) Close() error {
	return s.db.Close()
}

// Counts 历史中的上传次数与对比次数
func (s *Store) Counts() (imports, compares int, err error) {
	err = s.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM import_logs),
			(SELECT COUNT(*) FROM compare_runs)
	`).Scan(&imports, &compares)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count history: %w", err)
	}
	return imports, compares, nil
}
