package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jij0517269/gongtan-duishu-tool/internal/store"
)

type historyResponse struct {
	Enabled  bool               `json:"enabled"`
	Imports  []store.ImportLog  `json:"imports"`
	Compares []store.CompareRun `json:"compares"`
}

// ListHistory 最近的上传与对比记录
// GET /api/history?limit=20
func (h *Handler) ListHistory(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, historyResponse{Imports: []store.ImportLog{}, Compares: []store.CompareRun{}})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	imports, err := h.store.ListImportLogs(limit)
	if err != nil {
		writeError(c, err)
		return
	}
	compares, err := h.store.ListCompareRuns(limit)
	if err != nil {
		writeError(c, err)
		return
	}
	if imports == nil {
		imports = []store.ImportLog{}
	}
	if compares == nil {
		compares = []store.CompareRun{}
	}

	c.JSON(http.StatusOK, historyResponse{Enabled: true, Imports: imports, Compares: compares})
}
