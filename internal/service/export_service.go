package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Victor-Smirnoff/product-release-control/internal/dto"
	"github.com/Victor-Smirnoff/product-release-control/internal/model"
	"github.com/Victor-Smirnoff/product-release-control/internal/repository"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// ExportService 导出业务接口
//
// 导出与过滤查询使用同一组条件；结果以 bytes.Buffer 返回，由 Handler 层写入响应。
type ExportService interface {
	// ExportShiftTasks 导出班次任务为 Excel，返回内容与建议文件名
	ExportShiftTasks(ctx context.Context, req *dto.ShiftTaskFilterRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

const exportSheet = "Задания на смену"

// exportColumns 列顺序与 1С 字段名一致
var exportColumns = []struct {
	title string
	width float64
	value func(t *model.ShiftTask) interface{}
}{
	{"id", 8, func(t *model.ShiftTask) interface{} { return t.ID }},
	{"СтатусЗакрытия", 16, func(t *model.ShiftTask) interface{} { return t.ClosingStatus }},
	{"ДатаВремяЗакрытия", 22, func(t *model.ShiftTask) interface{} {
		if t.ClosedAt == nil {
			return ""
		}
		return t.ClosedAt.UTC().Format(time.RFC3339)
	}},
	{"ПредставлениеЗаданияНаСмену", 30, func(t *model.ShiftTask) interface{} { return t.ViewTaskToShift }},
	{"РабочийЦентр", 18, func(t *model.ShiftTask) interface{} { return t.WorkCenter }},
	{"Линия", 14, func(t *model.ShiftTask) interface{} { return t.Line }},
	{"Смена", 10, func(t *model.ShiftTask) interface{} { return t.Shift }},
	{"Бригада", 14, func(t *model.ShiftTask) interface{} { return t.Team }},
	{"НомерПартии", 14, func(t *model.ShiftTask) interface{} { return t.PartyNumber }},
	{"ДатаПартии", 14, func(t *model.ShiftTask) interface{} { return t.PartyData.Format(dto.DateLayout) }},
	{"Номенклатура", 24, func(t *model.ShiftTask) interface{} { return t.Nomenclature }},
	{"КодЕКН", 14, func(t *model.ShiftTask) interface{} { return t.CodeEKN }},
	{"ИдентификаторРЦ", 18, func(t *model.ShiftTask) interface{} { return t.IDOfTheRC }},
	{"ДатаВремяНачалаСмены", 22, func(t *model.ShiftTask) interface{} { return t.DateTimeShiftStart.UTC().Format(time.RFC3339) }},
	{"ДатаВремяОкончанияСмены", 22, func(t *model.ShiftTask) interface{} { return t.DateTimeShiftEnd.UTC().Format(time.RFC3339) }},
}

// ═══════════════════════════════════════════════════════════
// ExportShiftTasks
// ═══════════════════════════════════════════════════════════
//
// 输出格式：单个 Sheet，首行为表头（冻结），其后每行一个班次任务，按 id 升序。
// 无匹配记录时只输出表头。

func (s *exportService) ExportShiftTasks(ctx context.Context, req *dto.ShiftTaskFilterRequest) (*bytes.Buffer, string, error) {
	tasks, err := findFiltered(ctx, s.repo, req)
	if err != nil {
		logFailure(s.logger, "查询导出数据失败", err)
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		s.logger.Error("创建 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, col := range exportColumns {
		name := colName(i)
		_ = f.SetColWidth(exportSheet, name, name, col.width)
		_ = f.SetCellValue(exportSheet, cell(name, 1), col.title)
	}
	_ = f.SetCellStyle(exportSheet, "A1", cell(colName(len(exportColumns)-1), 1), headerStyle)
	_ = f.SetPanes(exportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	for r := range tasks {
		row := r + 2
		for i, col := range exportColumns {
			if err := f.SetCellValue(exportSheet, cell(colName(i), row), col.value(&tasks[r])); err != nil {
				s.logger.Error("写入单元格失败", zap.Int("row", row), zap.Error(err))
				return nil, "", ErrExportGenerateFail
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	s.logger.Info("班次任务已导出", zap.Int("rows", len(tasks)))
	filename := fmt.Sprintf("shift_tasks_%s.xlsx", s.now().UTC().Format("20060102_150405"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
