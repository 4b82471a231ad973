// Package export renders coverage data as an xlsx workbook.
package export

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/xdd7520/QualityStar/internal/domain/coverage"
)

const (
	SummarySheet    = "Summary"
	InterfacesSheet = "Interfaces"
	ContentType     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	summaryHeadings   = []interface{}{"Service", "Upload Name", "Name", "Total", "Covered", "Coverage %"}
	interfaceHeadings = []interface{}{"Service", "Name", "URL", "Method", "Covered"}
)

// WriteCoverageWorkbook writes a two sheet workbook: per service totals, then every gathered interface.
func WriteCoverageWorkbook(w io.Writer, summary *coverage.CoverageSummary, rows []coverage.CoverageRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(InterfacesSheet); err != nil {
		return err
	}

	if err := setRow(f, SummarySheet, 1, summaryHeadings); err != nil {
		return err
	}
	line := 2
	for _, p := range summary.Projects {
		if err := setRow(f, SummarySheet, line, []interface{}{
			p.EurekaName, p.UploadName, p.Name, p.Total, p.Covered, p.Percentage.InexactFloat64(),
		}); err != nil {
			return err
		}
		line++
	}
	if err := setRow(f, SummarySheet, line, []interface{}{
		"TOTAL", "", "", summary.Total, summary.Covered, summary.Percentage.InexactFloat64(),
	}); err != nil {
		return err
	}

	if err := setRow(f, InterfacesSheet, 1, interfaceHeadings); err != nil {
		return err
	}
	for i, r := range rows {
		covered := "no"
		if r.Covered {
			covered = "yes"
		}
		if err := setRow(f, InterfacesSheet, i+2, []interface{}{r.EurekaName, r.Name, r.URL, r.Method, covered}); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
