package model

// BillingRecord 账单表（表格1）中的一行
type BillingRecord struct {
	ResourceName  string `json:"resourceName"`
	ClaimedAmount Amount `json:"claimedAmount"`
	SourceRow     int    `json:"sourceRow"` // Excel 行号（从 1 开始）
}

// FloorAmount 楼栋表单中某一楼层的分摊金额
type FloorAmount struct {
	BuildingNumber    int    `json:"buildingNumber"`
	FloorLabel        string `json:"floorLabel"`
	ApportionedAmount Amount `json:"apportionedAmount"`
	SourceRow         int    `json:"sourceRow"`
}

// FormulaSheet 公式表（表格2）中一个楼栋表单的有效数据
type FormulaSheet struct {
	SheetName      string        `json:"sheetName"`
	BuildingNumber int           `json:"buildingNumber"`
	Floors         []FloorAmount `json:"floors"`
}
