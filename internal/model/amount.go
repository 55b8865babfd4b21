package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Amount 金额单元格的值
//
// Raw 保留原始文本，用于区分"缺失"（无值）与"格式错误"（有值但无法转为数值）。
type Amount struct {
	Raw   string
	Value decimal.Decimal
	Valid bool
}

// NewAmount 由数值创建有效金额
func NewAmount(v decimal.Decimal) Amount {
	return Amount{Raw: v.String(), Value: v, Valid: true}
}

// Present 单元格是否有值
func (a Amount) Present() bool {
	return a.Valid || a.Raw != ""
}

// Malformed 有值但无法转为有限数值
func (a Amount) Malformed() bool {
	return !a.Valid && a.Raw != ""
}

// String 两位小数展示，无值时为空串
func (a Amount) String() string {
	if a.Valid {
		return a.Value.StringFixed(2)
	}
	return a.Raw
}

// MarshalJSON 有效金额输出数值，缺失输出 null，格式错误输出原始文本
func (a Amount) MarshalJSON() ([]byte, error) {
	switch {
	case a.Valid:
		return []byte(a.Value.StringFixed(2)), nil
	case a.Raw != "":
		return json.Marshal(a.Raw)
	default:
		return []byte("null"), nil
	}
}
