package reconcile

import (
	"sort"

	"github.com/jij0517269/gongtan-duishu-tool/internal/model"
	"github.com/jij0517269/gongtan-duishu-tool/internal/parser"
)

// FloorIndex 楼栋 -> 楼层标签 -> 每户分摊金额
//
// 构建后只读，可被多个 goroutine 并发查询。
type FloorIndex struct {
	buildings map[int]map[string]model.Amount
}

// LookupResult 查询结果
type LookupResult int

const (
	LookupFound           LookupResult = iota
	LookupBuildingMissing              // 未加载该楼栋表单
	LookupFloorMissing                 // 楼栋表单中无该楼层
)

// BuildFloorIndex 由楼栋表单构建索引
//
// 同一表单内楼层标签重复时取第一行；楼栋号在多个表单中重复出现时，
// 后出现的表单覆盖先出现表单的同名楼层。无法转为数值的金额记为缺失。
func BuildFloorIndex(sheets []model.FormulaSheet, rounding RoundingMode) *FloorIndex {
	idx := &FloorIndex{buildings: make(map[int]map[string]model.Amount)}

	for _, sheet := range sheets {
		floors := make(map[string]model.Amount, len(sheet.Floors))
		for _, f := range sheet.Floors {
			label := parser.NormalizeText(f.FloorLabel)
			if _, exists := floors[label]; exists {
				continue
			}
			amount := model.Amount{}
			if f.ApportionedAmount.Valid {
				amount = rounding.RoundAmount(f.ApportionedAmount)
			}
			floors[label] = amount
		}

		merged, ok := idx.buildings[sheet.BuildingNumber]
		if !ok {
			merged = make(map[string]model.Amount, len(floors))
			idx.buildings[sheet.BuildingNumber] = merged
		}
		for label, amount := range floors {
			merged[label] = amount
		}
	}

	return idx
}

// Lookup 查询楼栋楼层的分摊金额
func (idx *FloorIndex) Lookup(building int, floorLabel string) (model.Amount, LookupResult) {
	if idx == nil {
		return model.Amount{}, LookupBuildingMissing
	}
	floors, ok := idx.buildings[building]
	if !ok {
		return model.Amount{}, LookupBuildingMissing
	}
	amount, ok := floors[parser.NormalizeText(floorLabel)]
	if !ok {
		return model.Amount{}, LookupFloorMissing
	}
	return amount, LookupFound
}

// HasBuilding 是否加载了该楼栋
func (idx *FloorIndex) HasBuilding(building int) bool {
	if idx == nil {
		return false
	}
	_, ok := idx.buildings[building]
	return ok
}

// Buildings 已加载楼栋号（升序）
func (idx *FloorIndex) Buildings() []int {
	if idx == nil {
		return nil
	}
	result := make([]int, 0, len(idx.buildings))
	for b := range idx.buildings {
		result = append(result, b)
	}
	sort.Ints(result)
	return result
}

// FloorCount 某楼栋已加载的楼层数
func (idx *FloorIndex) FloorCount(building int) int {
	if idx == nil {
		return 0
	}
	return len(idx.buildings[building])
}
