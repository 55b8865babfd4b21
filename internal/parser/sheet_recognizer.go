package parser

import (
	"strconv"
	"strings"
	"unicode"
)

// 楼栋表单命名规则默认值
const (
	DefaultSheetSuffix = "栋"
	DefaultMinBuilding = 1
	DefaultMaxBuilding = 34
)

// SheetRecognizer 楼栋表单识别器
type SheetRecognizer struct {
	suffix      string
	minBuilding int
	maxBuilding int
}

// NewSheetRecognizer 创建识别器
func NewSheetRecognizer(suffix string, minBuilding, maxBuilding int) *SheetRecognizer {
	if suffix == "" {
		suffix = DefaultSheetSuffix
	}
	if minBuilding <= 0 {
		minBuilding = DefaultMinBuilding
	}
	if maxBuilding < minBuilding {
		maxBuilding = DefaultMaxBuilding
	}
	return &SheetRecognizer{
		suffix:      suffix,
		minBuilding: minBuilding,
		maxBuilding: maxBuilding,
	}
}

// Recognize 识别 Sheet 名：以后缀结尾且前缀全为数字，楼栋号在范围内
//
// 含空白的名称（如 " 7栋 "）不是楼栋表单。
func (r *SheetRecognizer) Recognize(sheetName string) SheetRecognitionResult {
	unknown := SheetRecognitionResult{SheetName: sheetName, Kind: SheetKindUnknown}

	name := FoldWidth(sheetName)
	if !strings.HasSuffix(name, r.suffix) {
		return unknown
	}
	digits := strings.TrimSuffix(name, r.suffix)
	if digits == "" || strings.IndexFunc(digits, func(c rune) bool { return !unicode.IsDigit(c) }) >= 0 {
		return unknown
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return unknown
	}

	if n < r.minBuilding || n > r.maxBuilding {
		return SheetRecognitionResult{
			SheetName:      sheetName,
			Kind:           SheetKindOutOfRange,
			BuildingNumber: n,
		}
	}

	return SheetRecognitionResult{
		SheetName:      sheetName,
		Kind:           SheetKindBuilding,
		BuildingNumber: n,
	}
}
