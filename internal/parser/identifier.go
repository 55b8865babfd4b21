package parser

import (
	"fmt"
	"regexp"
	"strconv"
)

// 资源名称命名规则，如 "住宅12-0301电费"：
// "住宅" 后两位数字为楼栋号；"-" 后四位房号的前两位为楼层。
var (
	buildingPattern = regexp.MustCompile(`住宅(\d{2})-`)
	roomPattern     = regexp.MustCompile(`-(\d{4})`)
)

// FloorUnit 楼层单位
const FloorUnit = "层"

// UnitKey 由资源名称解析出的楼栋-楼层键
type UnitKey struct {
	BuildingNumber int    `json:"buildingNumber"`
	FloorNumber    int    `json:"floorNumber"`
	FloorLabel     string `json:"floorLabel"`
}

// FormLabel 结果表中的"表单-楼层"文本，如 "表单'12栋'-3层"
func (k UnitKey) FormLabel() string {
	return fmt.Sprintf("表单'%d栋'-%s", k.BuildingNumber, k.FloorLabel)
}

// FloorLabel 楼层号转楼层标签，如 3 -> "3层"
func FloorLabel(floor int) string {
	return strconv.Itoa(floor) + FloorUnit
}

// ParseResourceName 从资源名称中解析楼栋号与楼层
//
// 两个模式独立匹配，必须同时命中才返回键；否则 ok=false。
// 只做全角转半角，空白不会被去除："住宅12-03 01" 不命中。
func ParseResourceName(name string) (key UnitKey, ok bool) {
	name = FoldWidth(name)

	bm := buildingPattern.FindStringSubmatch(name)
	if len(bm) < 2 {
		return UnitKey{}, false
	}
	rm := roomPattern.FindStringSubmatch(name)
	if len(rm) < 2 {
		return UnitKey{}, false
	}

	building, err := strconv.Atoi(bm[1])
	if err != nil {
		return UnitKey{}, false
	}
	// 房号前两位为楼层，Atoi 去掉前导零："0301" -> 3
	floor, err := strconv.Atoi(rm[1][:2])
	if err != nil {
		return UnitKey{}, false
	}

	return UnitKey{
		BuildingNumber: building,
		FloorNumber:    floor,
		FloorLabel:     FloorLabel(floor),
	}, true
}
