package parser

// SheetKind 公式表中 Sheet 的识别结果
type SheetKind string

const (
	SheetKindBuilding   SheetKind = "building"     // 楼栋表单，如 "12栋"
	SheetKindOutOfRange SheetKind = "out_of_range" // 命名符合但楼栋号超出范围
	SheetKindUnknown    SheetKind = "unknown"
)

// SheetRecognitionResult Sheet 识别结果
type SheetRecognitionResult struct {
	SheetName      string    `json:"sheetName"`
	Kind           SheetKind `json:"kind"`
	BuildingNumber int       `json:"buildingNumber"`
}

// IsBuilding 是否为有效楼栋表单
func (r SheetRecognitionResult) IsBuilding() bool {
	return r.Kind == SheetKindBuilding
}
