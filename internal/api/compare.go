package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jij0517269/gongtan-duishu-tool/internal/metrics"
	"github.com/jij0517269/gongtan-duishu-tool/internal/model"
	"github.com/jij0517269/gongtan-duishu-tool/internal/reconcile"
	"github.com/jij0517269/gongtan-duishu-tool/internal/store"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

// compareResponse 对比响应
type compareResponse struct {
	RunID string                 `json:"runId,omitempty"`
	Stats model.Stats            `json:"stats"`
	Match reconcile.MatchSummary `json:"match"`
}

// Compare 对比全部结果行并返回统计
// POST /api/compare
func (h *Handler) Compare(c *gin.Context) {
	start := time.Now()
	stats, err := h.session.Compare()
	if err != nil {
		writeError(c, err)
		return
	}
	metrics.ObserveComparison(stats, time.Since(start))

	snap := h.session.Snapshot()
	slog.Info("对比完成",
		"session", snap.SessionID,
		"total", stats.Total,
		"consistent", stats.ConsistentCount,
		"inconsistent", stats.InconsistentCount,
		"other", stats.OtherCount,
	)

	runID := ""
	if h.store != nil {
		id, err := h.store.InsertCompareRun(store.CompareRun{
			SessionID:   snap.SessionID,
			BillingFile: snap.BillingFile,
			FormulaFile: snap.FormulaFile,
			Rounding:    string(snap.Rounding),
			Stats:       stats,
		})
		if err != nil {
			slog.Warn("写入对比记录失败", "error", err)
		} else {
			runID = id
		}
	}

	c.JSON(http.StatusOK, compareResponse{RunID: runID, Stats: stats, Match: snap.Match})
}

// listRowsResponse 结果行分页
type listRowsResponse struct {
	Items    []model.ReconciliationRow `json:"items"`
	Total    int                       `json:"total"`
	Page     int                       `json:"page"`
	PageSize int                       `json:"pageSize"`
}

// ListRows 分页查询结果行
// GET /api/rows?outcome=inconsistent&page=1&pageSize=100
//
// outcome 可取 consistent / inconsistent / missing / malformed / other（缺失与格式错误）。
func (h *Handler) ListRows(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	pageSize = min(pageSize, maxPageSize)

	rows := filterRows(h.session.Rows(), c.Query("outcome"))
	total := len(rows)
	from, to := pageBounds(page, pageSize, total)

	c.JSON(http.StatusOK, listRowsResponse{
		Items:    rows[from:to],
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// pageBounds 计算切片区间；页码过大时返回空区间，不做可能溢出的乘法
func pageBounds(page, pageSize, total int) (from, to int) {
	if page-1 >= (total+pageSize-1)/pageSize {
		return total, total
	}
	from = (page - 1) * pageSize
	return from, min(from+pageSize, total)
}

func filterRows(rows []model.ReconciliationRow, outcome string) []model.ReconciliationRow {
	if outcome == "" {
		return rows
	}
	filtered := make([]model.ReconciliationRow, 0, len(rows))
	for _, row := range rows {
		switch {
		case outcome == "other" && (row.Outcome == model.OutcomeMissing || row.Outcome == model.OutcomeMalformed):
			filtered = append(filtered, row)
		case string(row.Outcome) == outcome:
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// GetStats 最近一次对比的统计
// GET /api/stats
func (h *Handler) GetStats(c *gin.Context) {
	stats, ok := h.session.Stats()
	if !ok {
		writeError(c, errNotCompared)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Reset 清空会话
// POST /api/reset
func (h *Handler) Reset(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Reset())
}
