// Package export writes the daily closing report: one row per order followed
// by a summary block with the order count and total revenue.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"restaurant-pos/internal/domain"
)

var reportHeader = []string{
	"Order ID", "User/Cashier", "Table", "Items", "Total per Order", "Status", "Time", "Date",
}

// CSVReporter writes daily-report-<date>.csv files into Dir.
type CSVReporter struct {
	Dir string
}

func (r CSVReporter) ExportDailyReport(orders []domain.Order, date string) error {
	path := filepath.Join(r.Dir, fmt.Sprintf("daily-report-%s.csv", date))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := WriteDailyReport(f, orders, date); err != nil {
		return err
	}
	return f.Sync()
}

// WriteDailyReport renders the report to w.
func WriteDailyReport(w io.Writer, orders []domain.Order, date string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(reportHeader); err != nil {
		return err
	}
	totalRevenue := 0
	for _, o := range orders {
		totalRevenue += o.Total
		cashier := o.Cashier
		if cashier == "" {
			cashier = "System"
		}
		row := []string{
			"#" + strconv.FormatInt(o.ID, 10),
			cashier,
			o.Table,
			strings.Join(o.Items, ", "),
			strconv.Itoa(o.Total),
			o.Status,
			o.Time,
			o.Date,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	blank := make([]string, len(reportHeader))
	summary := [][]string{
		blank,
		{"DAILY CLOSING SUMMARY", "", "", "", "", "", "", ""},
		{"Total Orders:", strconv.Itoa(len(orders)), "", "", "", "", "", ""},
		{"Total Revenue:", strconv.Itoa(totalRevenue), "", "", "", "", "", ""},
	}
	for _, row := range summary {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
