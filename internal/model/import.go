package model

import "time"

// TableKind 上传表格类型
type TableKind string

const (
	TableBilling TableKind = "billing" // 表格1：账单数据
	TableFormula TableKind = "formula" // 表格2：楼栋公式表
)

// SheetStatus Sheet 处理状态
type SheetStatus string

const (
	SheetImported SheetStatus = "imported"
	SheetSkipped  SheetStatus = "skipped"
	SheetError    SheetStatus = "error"
)

// SheetReport 单个 Sheet 的读取结果
type SheetReport struct {
	SheetName      string      `json:"sheetName"`
	Status         SheetStatus `json:"status"`
	BuildingNumber int         `json:"buildingNumber,omitempty"`
	LoadedRows     int         `json:"loadedRows"`
	SkippedRows    int         `json:"skippedRows"`
	Reason         string      `json:"reason,omitempty"`
}

// ImportReport 一次上传的读取报告
type ImportReport struct {
	Kind          TableKind     `json:"kind"`
	Filename      string        `json:"filename"`
	TotalSheets   int           `json:"totalSheets"`
	LoadedSheets  int           `json:"loadedSheets"`
	SkippedSheets int           `json:"skippedSheets"`
	LoadedRows    int           `json:"loadedRows"`
	SkippedRows   int           `json:"skippedRows"`
	Duration      time.Duration `json:"duration"`
	Sheets        []SheetReport `json:"sheets"`
}

// Record 记录 Sheet 结果并累计汇总
func (r *ImportReport) Record(sheet SheetReport) {
	r.Sheets = append(r.Sheets, sheet)
	switch sheet.Status {
	case SheetImported:
		r.LoadedSheets++
	case SheetSkipped:
		r.SkippedSheets++
	}
	r.LoadedRows += sheet.LoadedRows
	r.SkippedRows += sheet.SkippedRows
}
