package reconcile

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jij0517269/gongtan-duishu-tool/internal/model"
)

// AmountPlaces 金额保留小数位数
const AmountPlaces = 2

// RoundingMode 取整方式
//
// 两种方式只在恰好半分的边界上不同（如 0.125）。
type RoundingMode string

const (
	RoundHalfUp   RoundingMode = "half_up"   // 四舍五入（远离零）
	RoundHalfEven RoundingMode = "half_even" // 银行家舍入
)

// ParseRoundingMode 解析配置中的取整方式，空串为 half_up
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(RoundHalfUp):
		return RoundHalfUp, nil
	case string(RoundHalfEven):
		return RoundHalfEven, nil
	default:
		return "", fmt.Errorf("unknown rounding mode: %q", s)
	}
}

// Round 按取整方式保留 places 位小数
func (m RoundingMode) Round(v decimal.Decimal, places int32) decimal.Decimal {
	if m == RoundHalfEven {
		return v.RoundBank(places)
	}
	return v.Round(places)
}

// RoundAmount 有效金额保留两位小数，缺失/格式错误原样返回
func (m RoundingMode) RoundAmount(a model.Amount) model.Amount {
	if !a.Valid {
		return a
	}
	a.Value = m.Round(a.Value, AmountPlaces)
	return a
}
