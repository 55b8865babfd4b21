package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jij0517269/gongtan-duishu-tool/internal/model"
	"github.com/jij0517269/gongtan-duishu-tool/internal/reconcile"
)

var (
	// ErrBillingNotLoaded 尚未上传表格1
	ErrBillingNotLoaded = errors.New("billing table not loaded")
	// ErrFormulaNotLoaded 尚未上传表格2
	ErrFormulaNotLoaded = errors.New("formula table not loaded")
	// ErrNoRows 表格1没有有效数据行
	ErrNoRows = errors.New("no billing rows")
)

// Session 对数会话状态
//
// 两张表格、楼层索引与结果行都归会话所有。任一表格重新上传时，
// 派生状态（索引、结果行、统计）整体重建，不在旧结果上修补。
type Session struct {
	mu sync.RWMutex

	id    string
	opts  reconcile.Options
	clock func() time.Time

	billing     []model.BillingRecord
	billingFile string
	sheets      []model.FormulaSheet
	formulaFile string

	index    *reconcile.FloorIndex
	rows     []model.ReconciliationRow
	match    reconcile.MatchSummary
	stats    *model.Stats
	updated  time.Time
	compared time.Time
}

// New 创建会话
func New(opts reconcile.Options) *Session {
	return &Session{
		id:    uuid.New().String(),
		opts:  opts,
		clock: time.Now,
	}
}

// Snapshot 会话状态快照（只读副本）
type Snapshot struct {
	SessionID      string                 `json:"sessionId"`
	BillingFile    string                 `json:"billingFile"`
	FormulaFile    string                 `json:"formulaFile"`
	BillingLoaded  bool                   `json:"billingLoaded"`
	FormulaLoaded  bool                   `json:"formulaLoaded"`
	BillingRecords int                    `json:"billingRecords"`
	Buildings      []int                  `json:"buildings"`
	RowCount       int                    `json:"rowCount"`
	Match          reconcile.MatchSummary `json:"match"`
	Compared       bool                   `json:"compared"`
	Stats          *model.Stats           `json:"stats,omitempty"`
	Rounding       reconcile.RoundingMode `json:"rounding"`
	UpdatedAt      time.Time              `json:"updatedAt"`
	ComparedAt     *time.Time             `json:"comparedAt,omitempty"`
}

// ID 会话 ID
func (s *Session) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// Options 对数参数
func (s *Session) Options() reconcile.Options {
	return s.opts
}

// LoadBilling 载入表格1，重建结果行；已载入表格2时自动重新匹配
func (s *Session) LoadBilling(filename string, records []model.BillingRecord) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if records == nil {
		records = []model.BillingRecord{}
	}
	s.billing = records
	s.billingFile = filename
	s.rebuildLocked()
	return s.snapshotLocked()
}

// LoadFormula 载入表格2，重建楼层索引与结果行并自动匹配
func (s *Session) LoadFormula(filename string, sheets []model.FormulaSheet) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.billing == nil {
		return Snapshot{}, ErrBillingNotLoaded
	}

	s.sheets = sheets
	s.formulaFile = filename
	s.index = reconcile.BuildFloorIndex(sheets, s.opts.Rounding)
	s.rebuildLocked()
	return s.snapshotLocked(), nil
}

// rebuildLocked 由已载入的表格重新生成结果行；调用方持有写锁
func (s *Session) rebuildLocked() {
	rows := reconcile.NewRows(s.billing, s.opts.Rounding)
	s.match = reconcile.MatchSummary{Total: len(rows)}
	if s.index != nil {
		rows, s.match = reconcile.NewMatcher(s.index, s.opts.Rounding, s.opts.MatchWorkers).Match(rows)
	}
	s.rows = rows
	s.stats = nil
	s.compared = time.Time{}
	s.updated = s.clock()
}

// Compare 对比全部结果行并统计
func (s *Session) Compare() (model.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.billing == nil {
		return model.Stats{}, ErrBillingNotLoaded
	}
	if s.index == nil {
		return model.Stats{}, ErrFormulaNotLoaded
	}
	if len(s.rows) == 0 {
		return model.Stats{}, ErrNoRows
	}

	s.rows = reconcile.NewComparator(s.opts.Rounding).Compare(s.rows)
	stats := reconcile.Aggregate(s.rows, s.opts.Rounding)
	s.stats = &stats
	s.compared = s.clock()
	return stats, nil
}

// Rebuild 丢弃派生状态并由已载入表格重建
func (s *Session) Rebuild() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sheets != nil {
		s.index = reconcile.BuildFloorIndex(s.sheets, s.opts.Rounding)
	}
	s.rebuildLocked()
	return s.snapshotLocked()
}

// Reset 清空会话，生成新的会话 ID
func (s *Session) Reset() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.id = uuid.New().String()
	s.billing = nil
	s.billingFile = ""
	s.sheets = nil
	s.formulaFile = ""
	s.index = nil
	s.rows = nil
	s.match = reconcile.MatchSummary{}
	s.stats = nil
	s.compared = time.Time{}
	s.updated = s.clock()
	return s.snapshotLocked()
}

// Rows 结果行副本，顺序与表格1一致
func (s *Session) Rows() []model.ReconciliationRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.ReconciliationRow, len(s.rows))
	copy(result, s.rows)
	return result
}

// Stats 最近一次对比的统计；尚未对比时 ok=false
func (s *Session) Stats() (model.Stats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.stats == nil {
		return model.Stats{}, false
	}
	return *s.stats, true
}

// Snapshot 当前状态
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		SessionID:      s.id,
		BillingFile:    s.billingFile,
		FormulaFile:    s.formulaFile,
		BillingLoaded:  s.billing != nil,
		FormulaLoaded:  s.index != nil,
		BillingRecords: len(s.billing),
		Buildings:      s.index.Buildings(),
		RowCount:       len(s.rows),
		Match:          s.match,
		Compared:       s.stats != nil,
		Rounding:       s.opts.Rounding,
		UpdatedAt:      s.updated,
	}
	if s.stats != nil {
		stats := *s.stats
		snap.Stats = &stats
		compared := s.compared
		snap.ComparedAt = &compared
	}
	return snap
}
