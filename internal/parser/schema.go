package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumns 表头缺少必要列
var ErrMissingColumns = errors.New("missing required columns")

// SchemaError 表头校验失败，列出缺少的列
type SchemaError struct {
	SheetName string
	Missing   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s缺少必要列：%s", e.SheetName, strings.Join(e.Missing, " / "))
}

func (e *SchemaError) Unwrap() error {
	return ErrMissingColumns
}

// BillingSchema 账单表列定位结果
type BillingSchema struct {
	NameIndex   int
	AmountIndex int
}

// ValidateBillingHeader 在表头中定位资源名称列与金额列
//
// 列名规范化后精确比较；任一缺失时返回 *SchemaError。
func ValidateBillingHeader(sheetName string, header []string, nameColumn, amountColumn string) (BillingSchema, error) {
	index := make(map[string]int, len(header))
	for i, col := range header {
		key := NormalizeColumnName(col)
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}

	var missing []string
	nameIdx, ok := index[NormalizeColumnName(nameColumn)]
	if !ok {
		missing = append(missing, nameColumn)
	}
	amountIdx, ok := index[NormalizeColumnName(amountColumn)]
	if !ok {
		missing = append(missing, amountColumn)
	}
	if len(missing) > 0 {
		return BillingSchema{}, &SchemaError{SheetName: sheetName, Missing: missing}
	}

	return BillingSchema{NameIndex: nameIdx, AmountIndex: amountIdx}, nil
}
