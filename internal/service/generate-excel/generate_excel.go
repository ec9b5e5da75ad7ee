package generate_excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"vue-timetrack/internal/service/insights"
)

type DashboardSource interface {
	Dashboard(ctx context.Context, req insights.Request) (*insights.Dashboard, error)
}

// GenerateExcelService renders the weekly aggregate as a downloadable
// workbook for the finance side.
type GenerateExcelService struct {
	source DashboardSource
}

func NewGenerateService(source DashboardSource) *GenerateExcelService {
	return &GenerateExcelService{source: source}
}

func (g *GenerateExcelService) GenerateExcel(ctx context.Context, req insights.Request) ([]byte, error) {
	dash, err := g.source.Dashboard(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetch dashboard: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Suivi temps"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	row := 1

	// Section block
	writeHeader(f, sheet, row, headerStyle, "Pôle", "Heures", "Coût €")
	row++
	sections := []struct {
		name   string
		totals insights.SectionTotals
	}{
		{"Conception", dash.BySection.Conception},
		{"Créa", dash.BySection.Crea},
		{"Dev", dash.BySection.Dev},
	}
	var totalHours, totalCost float64
	for _, s := range sections {
		f.SetCellValue(sheet, cellName(1, row), s.name)
		f.SetCellValue(sheet, cellName(2, row), s.totals.Hours)
		f.SetCellValue(sheet, cellName(3, row), s.totals.Cost)
		totalHours += s.totals.Hours
		totalCost += s.totals.Cost
		row++
	}
	f.SetCellValue(sheet, cellName(1, row), "Total")
	f.SetCellValue(sheet, cellName(2, row), totalHours)
	f.SetCellValue(sheet, cellName(3, row), totalCost)
	row += 2

	// Member block
	writeHeader(f, sheet, row, headerStyle, "Membre", "Équipe", "Heures")
	row++
	for _, m := range dash.ByMember {
		f.SetCellValue(sheet, cellName(1, row), m.Name)
		f.SetCellValue(sheet, cellName(2, row), m.Team)
		f.SetCellValue(sheet, cellName(3, row), m.Hours)
		row++
	}
	row++

	// Week block
	writeHeader(f, sheet, row, headerStyle, "Semaine", "Mois", "Heures")
	row++
	for _, w := range dash.ByWeek {
		f.SetCellValue(sheet, cellName(1, row), fmt.Sprintf("S%02d", w.Week))
		f.SetCellValue(sheet, cellName(2, row), w.Month)
		f.SetCellValue(sheet, cellName(3, row), w.Hours)
		row++
	}

	f.SetColWidth(sheet, "A", "A", 24)
	f.SetColWidth(sheet, "B", "C", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, row, style int, names ...string) {
	for i, name := range names {
		f.SetCellValue(sheet, cellName(i+1, row), name)
	}
	f.SetCellStyle(sheet, cellName(1, row), cellName(len(names), row), style)
}

func cellName(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}
