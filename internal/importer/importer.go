package importer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jij0517269/gongtan-duishu-tool/internal/config"
	"github.com/jij0517269/gongtan-duishu-tool/internal/model"
	"github.com/jij0517269/gongtan-duishu-tool/internal/parser"
)

// ErrSheetNotFound 工作簿中没有指定的 Sheet
var ErrSheetNotFound = errors.New("sheet not found")

// Options 读取选项
type Options struct {
	BillingSheet        string
	BillingNameColumn   string
	BillingAmountColumn string

	SheetSuffix         string
	MinBuilding         int
	MaxBuilding         int
	FirstDataRow        int    // 从 1 开始
	FloorColumn         string // 列字母，如 "B"
	FormulaAmountColumn string // 列字母，如 "G"
}

// OptionsFromConfig 由应用配置生成读取选项
func OptionsFromConfig(cfg *config.AppConfig) Options {
	return Options{
		BillingSheet:        cfg.Billing.SheetName,
		BillingNameColumn:   cfg.Billing.NameColumn,
		BillingAmountColumn: cfg.Billing.AmountColumn,
		SheetSuffix:         cfg.Formula.SheetSuffix,
		MinBuilding:         cfg.Formula.MinBuilding,
		MaxBuilding:         cfg.Formula.MaxBuilding,
		FirstDataRow:        cfg.Formula.FirstDataRow,
		FloorColumn:         cfg.Formula.FloorColumn,
		FormulaAmountColumn: cfg.Formula.AmountColumn,
	}
}

// Importer 读取表格1（账单）与表格2（楼栋公式表）
type Importer struct {
	opts       Options
	recognizer *parser.SheetRecognizer
	floorIdx   int
	amountIdx  int
}

// New 创建读取器，校验列字母
func New(opts Options) (*Importer, error) {
	floorCol, err := excelize.ColumnNameToNumber(opts.FloorColumn)
	if err != nil {
		return nil, fmt.Errorf("invalid floor column %q: %w", opts.FloorColumn, err)
	}
	amountCol, err := excelize.ColumnNameToNumber(opts.FormulaAmountColumn)
	if err != nil {
		return nil, fmt.Errorf("invalid amount column %q: %w", opts.FormulaAmountColumn, err)
	}
	if opts.FirstDataRow < 1 {
		opts.FirstDataRow = 1
	}

	return &Importer{
		opts:       opts,
		recognizer: parser.NewSheetRecognizer(opts.SheetSuffix, opts.MinBuilding, opts.MaxBuilding),
		floorIdx:   floorCol - 1,
		amountIdx:  amountCol - 1,
	}, nil
}

// BillingResult 表格1读取结果
type BillingResult struct {
	Records []model.BillingRecord
	Report  *model.ImportReport
}

// FormulaResult 表格2读取结果
type FormulaResult struct {
	Sheets []model.FormulaSheet
	Report *model.ImportReport
}

// ReadBilling 从上传流读取表格1
func (im *Importer) ReadBilling(r io.Reader, filename string) (*BillingResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer f.Close()
	return im.ReadBillingWorkbook(f, filename)
}

// ReadBillingWorkbook 读取表格1的账单 Sheet
//
// 表头缺少必要列时返回 *parser.SchemaError；资源名称为空的行被丢弃。
func (im *Importer) ReadBillingWorkbook(f *excelize.File, filename string) (*BillingResult, error) {
	start := time.Now()
	sheetList := f.GetSheetList()
	report := &model.ImportReport{
		Kind:        model.TableBilling,
		Filename:    filename,
		TotalSheets: len(sheetList),
	}

	sheetName, ok := findSheet(sheetList, im.opts.BillingSheet)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, im.opts.BillingSheet)
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("读取 Sheet %s 失败: %w", sheetName, err)
	}

	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}
	schema, err := parser.ValidateBillingHeader(sheetName, header, im.opts.BillingNameColumn, im.opts.BillingAmountColumn)
	if err != nil {
		return nil, err
	}

	sheetReport := model.SheetReport{SheetName: sheetName, Status: model.SheetImported}
	records := make([]model.BillingRecord, 0, len(rows))
	for i := 1; i < len(rows); i++ {
		name := strings.TrimSpace(cell(rows[i], schema.NameIndex))
		if name == "" {
			sheetReport.SkippedRows++
			continue
		}
		records = append(records, model.BillingRecord{
			ResourceName:  name,
			ClaimedAmount: parser.ParseAmount(cell(rows[i], schema.AmountIndex)),
			SourceRow:     i + 1,
		})
	}
	sheetReport.LoadedRows = len(records)

	report.Record(sheetReport)
	report.SkippedSheets = report.TotalSheets - report.LoadedSheets
	report.Duration = time.Since(start)

	slog.Info("表格1读取完成",
		"file", filename,
		"sheet", sheetName,
		"rows", sheetReport.LoadedRows,
		"skipped_rows", sheetReport.SkippedRows,
	)

	return &BillingResult{Records: records, Report: report}, nil
}

// ReadFormula 从上传流读取表格2
func (im *Importer) ReadFormula(r io.Reader, filename string) (*FormulaResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer f.Close()
	return im.ReadFormulaWorkbook(f, filename)
}

// ReadFormulaWorkbook 读取表格2的全部楼栋表单
//
// 读取的是单元格中缓存的公式计算结果。不符合命名规则或楼栋号超出范围的 Sheet
// 被跳过；楼层或金额为空的行被跳过；没有有效行的表单不计入结果。
func (im *Importer) ReadFormulaWorkbook(f *excelize.File, filename string) (*FormulaResult, error) {
	start := time.Now()
	sheetList := f.GetSheetList()
	report := &model.ImportReport{
		Kind:        model.TableFormula,
		Filename:    filename,
		TotalSheets: len(sheetList),
	}

	sheets := make([]model.FormulaSheet, 0, len(sheetList))
	for _, sheetName := range sheetList {
		sheet, sheetReport := im.processFormulaSheet(f, sheetName)
		report.Record(sheetReport)
		if sheetReport.Status == model.SheetImported {
			sheets = append(sheets, sheet)
		}
	}
	report.Duration = time.Since(start)

	slog.Info("表格2读取完成",
		"file", filename,
		"building_sheets", len(sheets),
		"skipped_sheets", report.SkippedSheets,
		"rows", report.LoadedRows,
	)

	return &FormulaResult{Sheets: sheets, Report: report}, nil
}

// processFormulaSheet 处理单个 Sheet
func (im *Importer) processFormulaSheet(f *excelize.File, sheetName string) (model.FormulaSheet, model.SheetReport) {
	recognition := im.recognizer.Recognize(sheetName)
	switch recognition.Kind {
	case parser.SheetKindUnknown:
		return model.FormulaSheet{}, model.SheetReport{
			SheetName: sheetName,
			Status:    model.SheetSkipped,
			Reason:    "非楼栋表单",
		}
	case parser.SheetKindOutOfRange:
		return model.FormulaSheet{}, model.SheetReport{
			SheetName:      sheetName,
			Status:         model.SheetSkipped,
			BuildingNumber: recognition.BuildingNumber,
			Reason:         fmt.Sprintf("楼栋号超出范围 %d-%d", im.opts.MinBuilding, im.opts.MaxBuilding),
		}
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		slog.Warn("读取楼栋表单失败", "sheet", sheetName, "error", err)
		return model.FormulaSheet{}, model.SheetReport{
			SheetName:      sheetName,
			Status:         model.SheetError,
			BuildingNumber: recognition.BuildingNumber,
			Reason:         fmt.Sprintf("读取 Sheet 失败: %v", err),
		}
	}

	sheet := model.FormulaSheet{SheetName: sheetName, BuildingNumber: recognition.BuildingNumber}
	sheetReport := model.SheetReport{SheetName: sheetName, BuildingNumber: recognition.BuildingNumber}

	for i := im.opts.FirstDataRow - 1; i < len(rows); i++ {
		floor := strings.TrimSpace(cell(rows[i], im.floorIdx))
		amount := strings.TrimSpace(cell(rows[i], im.amountIdx))
		if floor == "" || amount == "" {
			sheetReport.SkippedRows++
			continue
		}
		sheet.Floors = append(sheet.Floors, model.FloorAmount{
			BuildingNumber:    recognition.BuildingNumber,
			FloorLabel:        floor,
			ApportionedAmount: parser.ParseAmount(amount),
			SourceRow:         i + 1,
		})
	}

	if len(sheet.Floors) == 0 {
		sheetReport.Status = model.SheetSkipped
		sheetReport.Reason = "无有效数据行"
		return model.FormulaSheet{}, sheetReport
	}

	sheetReport.Status = model.SheetImported
	sheetReport.LoadedRows = len(sheet.Floors)
	return sheet, sheetReport
}

// findSheet 按名称查找 Sheet，先精确匹配再规范化匹配
func findSheet(sheetList []string, name string) (string, bool) {
	for _, s := range sheetList {
		if s == name {
			return s, true
		}
	}
	want := parser.NormalizeText(name)
	for _, s := range sheetList {
		if parser.NormalizeText(s) == want {
			return s, true
		}
	}
	return "", false
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
