package model

// Outcome 对比结果
type Outcome string

const (
	OutcomeUnset        Outcome = ""
	OutcomeConsistent   Outcome = "consistent"
	OutcomeInconsistent Outcome = "inconsistent"
	OutcomeMissing      Outcome = "missing"
	OutcomeMalformed    Outcome = "malformed"
)

// Label 中文展示文本
func (o Outcome) Label() string {
	switch o {
	case OutcomeConsistent:
		return "一致"
	case OutcomeInconsistent:
		return "不一致"
	case OutcomeMissing:
		return "数据缺失"
	case OutcomeMalformed:
		return "格式错误"
	default:
		return ""
	}
}

// ReconciliationRow 对数结果行，与账单记录一一对应
type ReconciliationRow struct {
	ResourceName   string  `json:"resourceName"`
	ClaimedAmount  Amount  `json:"claimedAmount"`
	FormFloorLabel string  `json:"formFloorLabel"` // 如 "表单'12栋'-3层"，未解析时为空
	MatchedAmount  Amount  `json:"matchedAmount"`
	Outcome        Outcome `json:"outcome"`
}

// Matched 是否取到了公式表金额
func (r ReconciliationRow) Matched() bool {
	return r.MatchedAmount.Valid
}
