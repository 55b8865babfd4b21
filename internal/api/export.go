package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jij0517269/gongtan-duishu-tool/internal/exporter"
	"github.com/jij0517269/gongtan-duishu-tool/internal/session"
)

const (
	exportTTL        = 10 * time.Minute
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportTimeLayout = "20060102-150405"
)

type exportResponse struct {
	Token       string `json:"token"`
	DownloadURL string `json:"downloadUrl"`
}

type exportProgressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// writeExport 生成结果工作簿并登记下载令牌
func (h *Handler) writeExport(progress func(exporter.ProgressEvent)) (string, error) {
	if !h.session.Snapshot().BillingLoaded {
		return "", session.ErrBillingNotLoaded
	}
	stats, ok := h.session.Stats()
	if !ok {
		return "", errNotCompared
	}

	file, err := h.exporter.Export(h.session.Rows(), exporter.ExportOptions{
		Stats:    &stats,
		Progress: progress,
	})
	if err != nil {
		return "", err
	}
	defer file.Close()

	path := filepath.Join(h.exportDir, fmt.Sprintf("gongtan_export_%d_%d.xlsx", time.Now().UnixNano(), os.Getpid()))
	if err := file.SaveAs(path); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("写入导出文件失败: %w", err)
	}
	return h.downloads.put(path, exportTTL), nil
}

// downloadURL 由当前路由推出下载地址，路由组前缀保持不变
func downloadURL(c *gin.Context, token string) string {
	prefix := strings.TrimSuffix(strings.TrimSuffix(c.FullPath(), "/stream"), "/export")
	return fmt.Sprintf("%s/export/download/%s", prefix, token)
}

// Export 导出结果工作簿，返回一次性下载地址
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	token, err := h.writeExport(nil)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, exportResponse{Token: token, DownloadURL: downloadURL(c, token)})
}

// ExportStream 导出结果工作簿（SSE 进度 + 完成后提供下载地址）
// POST /api/export/stream
func (h *Handler) ExportStream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	send := func(event exportProgressEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	send(exportProgressEvent{Type: "start", Message: "开始导出", Data: map[string]any{}, Timestamp: time.Now()})

	lastPercent := -1
	token, err := h.writeExport(func(p exporter.ProgressEvent) {
		if p.Percent == lastPercent {
			return
		}
		lastPercent = p.Percent
		send(exportProgressEvent{
			Type:      "progress",
			Message:   p.Stage,
			Data:      map[string]any{"percent": p.Percent},
			Timestamp: time.Now(),
		})
	})
	if err != nil {
		_, msg := errorStatus(err)
		send(exportProgressEvent{Type: "error", Message: "导出失败: " + msg, Data: map[string]any{}, Timestamp: time.Now()})
		return
	}

	send(exportProgressEvent{
		Type:    "done",
		Message: "导出完成",
		Data: map[string]any{
			"percent":     100,
			"downloadUrl": downloadURL(c, token),
		},
		Timestamp: time.Now(),
	})
}

// DownloadExport 下载导出的 Excel 文件（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 token"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "导出文件不存在"})
		return
	}

	c.Header("Content-Disposition", buildExportContentDisposition(item.createdAt))
	c.Header("Content-Type", xlsxContentType)
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}

// buildExportContentDisposition ASCII 文件名兜底，filename* 给出中文文件名
func buildExportContentDisposition(t time.Time) string {
	stamp := t.Format(exportTimeLayout)
	return fmt.Sprintf("attachment; filename=\"duishu-result-%s.xlsx\"; filename*=UTF-8''%s",
		stamp, url.PathEscape("对数结果-"+stamp+".xlsx"))
}
