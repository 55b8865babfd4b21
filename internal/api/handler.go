// Package api 对数工具的 HTTP 接口
package api

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/jij0517269/gongtan-duishu-tool/internal/exporter"
	"github.com/jij0517269/gongtan-duishu-tool/internal/importer"
	"github.com/jij0517269/gongtan-duishu-tool/internal/session"
	"github.com/jij0517269/gongtan-duishu-tool/internal/store"
)

// Handler API 处理器
type Handler struct {
	session   *session.Session
	importer  *importer.Importer
	store     *store.Store // 为空时不记录历史
	exporter  *exporter.Exporter
	downloads *exportDownloadStore
	exportDir string
}

// NewHandler 创建 API 处理器；exportDir 为空时导出文件写入系统临时目录
func NewHandler(sess *session.Session, im *importer.Importer, st *store.Store, exportDir string) *Handler {
	if exportDir == "" {
		exportDir = os.TempDir()
	}
	return &Handler{
		session:   sess,
		importer:  im,
		store:     st,
		exporter:  exporter.NewExporter(),
		downloads: newExportDownloadStore(),
		exportDir: exportDir,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	// 上传表格
	router.POST("/billing", h.UploadBilling)
	router.POST("/formula", h.UploadFormula)

	// 对比
	router.POST("/compare", h.Compare)
	router.GET("/rows", h.ListRows)
	router.GET("/stats", h.GetStats)
	router.POST("/reset", h.Reset)

	// 导出
	router.POST("/export", h.Export)
	router.POST("/export/stream", h.ExportStream)
	router.GET("/export/download/:token", h.DownloadExport)

	// 历史
	router.GET("/history", h.ListHistory)
}
