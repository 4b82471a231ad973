package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/xdd7520/QualityStar/internal/domain/coverage"
)

func TestWriteCoverageWorkbook(t *testing.T) {
	summary := &coverage.CoverageSummary{
		Projects: []coverage.ProjectCoverage{
			{EurekaName: "order-svc", UploadName: "OrderService", Total: 4, Covered: 1, Percentage: coverage.Percentage(1, 4)},
		},
		Total:      4,
		Covered:    1,
		Percentage: coverage.Percentage(1, 4),
	}
	rows := []coverage.CoverageRow{
		{EurekaName: "order-svc", URL: "/api/orders", Method: "GET", Covered: true},
		{EurekaName: "order-svc", URL: "/api/orders", Method: "POST"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCoverageWorkbook(&buf, summary, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, InterfacesSheet}, f.GetSheetList())

	v, err := f.GetCellValue(SummarySheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "order-svc", v)
	v, err = f.GetCellValue(SummarySheet, "F2")
	require.NoError(t, err)
	assert.Equal(t, "25", v)
	v, err = f.GetCellValue(SummarySheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", v)

	got, err := f.GetRows(InterfacesSheet)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"order-svc", "", "/api/orders", "GET", "yes"}, got[1])
	assert.Equal(t, "no", got[2][4])
}
