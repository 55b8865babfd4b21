package model

// Stats 对比统计
type Stats struct {
	Total             int     `json:"total"`
	ConsistentCount   int     `json:"consistentCount"`
	ConsistentPct     float64 `json:"consistentPct"` // 百分比，保留一位小数
	InconsistentCount int     `json:"inconsistentCount"`
	InconsistentPct   float64 `json:"inconsistentPct"`
	OtherCount        int     `json:"otherCount"` // 缺失 + 格式错误
	MissingCount      int     `json:"missingCount"`
	MalformedCount    int     `json:"malformedCount"`
}
