package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"restaurant-pos/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportOrders() []domain.Order {
	return []domain.Order{
		{
			ID: 101, Table: "Table 1", Items: []string{"Burger x2", "Coffee x1"},
			Total: 117000, Status: "completed", Time: "10:30 AM", Date: "2026-09-01",
			Cashier: "John Doe", PaymentMethod: domain.PaymentCash,
		},
		{
			ID: 102, Table: "Table 4", Items: []string{"Pizza x1"},
			Total: 94350, Status: "completed", Time: "11:15 AM", Date: "2026-09-01",
			PaymentMethod: domain.PaymentQRIS,
		},
	}
}

func TestWriteDailyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDailyReport(&buf, reportOrders(), "2026-09-01"))

	reader := csv.NewReader(&buf)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	require.NoError(t, err)

	// header + 2 orders + blank + summary title + 2 summary rows
	require.Len(t, rows, 7)
	assert.Equal(t, "Order ID", rows[0][0])

	assert.Equal(t, "#101", rows[1][0])
	assert.Equal(t, "John Doe", rows[1][1])
	assert.Equal(t, "Burger x2, Coffee x1", rows[1][3])
	assert.Equal(t, "117000", rows[1][4])

	// Anonymous cashier falls back to "System".
	assert.Equal(t, "System", rows[2][1])

	assert.Equal(t, "DAILY CLOSING SUMMARY", rows[4][0])
	assert.Equal(t, "Total Orders:", rows[5][0])
	assert.Equal(t, "2", rows[5][1])
	assert.Equal(t, "Total Revenue:", rows[6][0])
	assert.Equal(t, "211350", rows[6][1])
}

func TestWriteDailyReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDailyReport(&buf, nil, "2026-09-01"))

	reader := csv.NewReader(&buf)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "0", rows[3][1])
}

func TestExportDailyReportFile(t *testing.T) {
	dir := t.TempDir()
	reporter := CSVReporter{Dir: dir}

	require.NoError(t, reporter.ExportDailyReport(reportOrders(), "2026-09-01"))

	data, err := os.ReadFile(filepath.Join(dir, "daily-report-2026-09-01.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "DAILY CLOSING SUMMARY")
}
