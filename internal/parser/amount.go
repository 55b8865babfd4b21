package parser

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/width"

	"github.com/jij0517269/gongtan-duishu-tool/internal/model"
)

// ParseAmount 将单元格文本转为金额
//
// 空单元格返回缺失金额；无法解析的文本保留在 Raw 中且 Valid=false。
// 解析基于十进制文本，不经过 float64。
func ParseAmount(raw string) model.Amount {
	text := strings.TrimSpace(width.Fold.String(raw))
	if text == "" {
		return model.Amount{}
	}
	// 移除千分位分隔符
	cleaned := strings.ReplaceAll(text, ",", "")
	v, err := decimal.NewFromString(cleaned)
	if err != nil {
		return model.Amount{Raw: text}
	}
	return model.Amount{Raw: text, Value: v, Valid: true}
}
