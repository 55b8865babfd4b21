package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jij0517269/gongtan-duishu-tool/internal/importer"
	"github.com/jij0517269/gongtan-duishu-tool/internal/parser"
	"github.com/jij0517269/gongtan-duishu-tool/internal/session"
)

var (
	errNoUpload    = errors.New("no uploaded file")
	errNotCompared = errors.New("not compared yet")
	errUnreadable  = errors.New("unreadable workbook")
)

// errorStatus 将领域错误映射为状态码与提示
func errorStatus(err error) (int, string) {
	var schemaErr *parser.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		return http.StatusBadRequest, schemaErr.Error()
	case errors.Is(err, importer.ErrSheetNotFound):
		return http.StatusBadRequest, "未找到账单数据 Sheet"
	case errors.Is(err, errNoUpload):
		return http.StatusBadRequest, "未找到上传文件"
	case errors.Is(err, errUnreadable):
		return http.StatusBadRequest, "无法读取 Excel 文件"
	case errors.Is(err, session.ErrBillingNotLoaded):
		return http.StatusConflict, "请先上传表格1（账单数据）"
	case errors.Is(err, session.ErrFormulaNotLoaded):
		return http.StatusConflict, "请先上传表格2（楼栋公式表）"
	case errors.Is(err, session.ErrNoRows):
		return http.StatusConflict, "表格1没有有效数据行"
	case errors.Is(err, errNotCompared):
		return http.StatusConflict, "尚未执行对比"
	default:
		return http.StatusInternalServerError, "处理失败: " + err.Error()
	}
}

func writeError(c *gin.Context, err error) {
	status, msg := errorStatus(err)
	c.JSON(status, gin.H{"error": msg})
}

// importError 读取失败中除表头与 Sheet 缺失外的错误都视为文件不可读
func importError(err error) error {
	var schemaErr *parser.SchemaError
	if errors.As(err, &schemaErr) || errors.Is(err, importer.ErrSheetNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", errUnreadable, err)
}
