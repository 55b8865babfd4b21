package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jij0517269/gongtan-duishu-tool/internal/session"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	session.Snapshot
	HistoryEnabled  bool `json:"historyEnabled"` // 是否记录上传与对比历史
	HistoryImports  int  `json:"historyImports"`
	HistoryCompares int  `json:"historyCompares"`
}

// GetStatus 获取会话状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		Snapshot:       h.session.Snapshot(),
		HistoryEnabled: h.store != nil,
	}
	if h.store != nil {
		imports, compares, err := h.store.Counts()
		if err != nil {
			slog.Warn("统计历史记录失败", "error", err)
		}
		resp.HistoryImports, resp.HistoryCompares = imports, compares
	}
	c.JSON(http.StatusOK, resp)
}
