package service

import (
	"fmt"

	"github.com/campusdesk/studentdir/internal/model"
	"github.com/xuri/excelize/v2"
)

// rosterSheet is the worksheet name used for roster exports.
const rosterSheet = "Students"

// ExportService builds spreadsheet exports of the directory.
type ExportService struct{}

// NewExportService creates a new ExportService.
func NewExportService() *ExportService {
	return &ExportService{}
}

// BuildRoster renders the given students into an .xlsx workbook, one row
// per record, ordered as passed in.
func (s *ExportService) BuildRoster(students []model.Student) (*excelize.File, error) {
	f := excelize.NewFile()

	idx, err := f.NewSheet(rosterSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	headers := []string{"ID", "Name", "Age", "Year"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(rosterSheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for row, st := range students {
		values := []interface{}{st.ID, st.Name, st.Age, st.Year}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(rosterSheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row+2, err)
			}
		}
	}

	return f, nil
}
