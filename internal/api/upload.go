package api

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jij0517269/gongtan-duishu-tool/internal/metrics"
	"github.com/jij0517269/gongtan-duishu-tool/internal/model"
	"github.com/jij0517269/gongtan-duishu-tool/internal/session"
	"github.com/jij0517269/gongtan-duishu-tool/internal/store"
)

// uploadResponse 上传响应
type uploadResponse struct {
	Report  *model.ImportReport `json:"report"`
	Session session.Snapshot    `json:"session"`
}

type uploadedFile struct {
	name string
	data []byte
	hash string
}

// readUpload 读取 multipart 中的 file 字段
func readUpload(c *gin.Context) (*uploadedFile, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, errNoUpload
	}
	f, err := fh.Open()
	if err != nil {
		return nil, errNoUpload
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errNoUpload
	}
	sum := sha256.Sum256(data)
	return &uploadedFile{name: fh.Filename, data: data, hash: hex.EncodeToString(sum[:])}, nil
}

// UploadBilling 上传表格1（账单数据）
// POST /api/billing
func (h *Handler) UploadBilling(c *gin.Context) {
	up, err := readUpload(c)
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := h.importer.ReadBilling(bytes.NewReader(up.data), up.name)
	if err != nil {
		err = importError(err)
		metrics.ObserveImport(model.TableBilling, nil, err)
		h.recordImport(model.TableBilling, up, nil, err)
		writeError(c, err)
		return
	}
	metrics.ObserveImport(model.TableBilling, result.Report, nil)

	snap := h.session.LoadBilling(up.name, result.Records)
	h.recordImport(model.TableBilling, up, result.Report, nil)

	c.JSON(http.StatusOK, uploadResponse{Report: result.Report, Session: snap})
}

// UploadFormula 上传表格2（楼栋公式表），须先上传表格1
// POST /api/formula
func (h *Handler) UploadFormula(c *gin.Context) {
	if !h.session.Snapshot().BillingLoaded {
		writeError(c, session.ErrBillingNotLoaded)
		return
	}

	up, err := readUpload(c)
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := h.importer.ReadFormula(bytes.NewReader(up.data), up.name)
	if err != nil {
		err = importError(err)
		metrics.ObserveImport(model.TableFormula, nil, err)
		h.recordImport(model.TableFormula, up, nil, err)
		writeError(c, err)
		return
	}
	metrics.ObserveImport(model.TableFormula, result.Report, nil)

	snap, err := h.session.LoadFormula(up.name, result.Sheets)
	if err != nil {
		writeError(c, err)
		return
	}
	h.recordImport(model.TableFormula, up, result.Report, nil)

	c.JSON(http.StatusOK, uploadResponse{Report: result.Report, Session: snap})
}

// recordImport 写入上传历史；未启用历史时忽略
func (h *Handler) recordImport(kind model.TableKind, up *uploadedFile, report *model.ImportReport, importErr error) {
	if h.store == nil {
		return
	}
	if report == nil {
		report = &model.ImportReport{Kind: kind, Filename: up.name}
	}
	entry := store.NewImportLog(h.session.ID(), report, int64(len(up.data)), up.hash)
	if importErr != nil {
		entry.Status = "error"
		entry.ErrorMessage = importErr.Error()
	}
	if _, err := h.store.CreateImportLog(entry); err != nil {
		slog.Warn("写入上传记录失败", "kind", kind, "file", up.name, "error", err)
	}
}
