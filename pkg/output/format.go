// Package output provides utilities for formatting and displaying the property
// comparison table.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/iwvelando/rental-compare/internal/portfolio"
	"github.com/iwvelando/rental-compare/pkg/format"
)

// EmptyMessage is printed instead of a table when there is nothing to compare.
const EmptyMessage = "No properties added yet."

// Columns lists the comparison table headers in display order.
var Columns = []string{
	"Name",
	"Purchase price",
	"Monthly rent",
	"Notary fees",
	"Total cost",
	"Annual rent",
	"Gross yield",
	"Net yield",
	"Loan payment",
	"Cashflow",
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(rows []portfolio.Row, symbol string) {
	_ = WritePretty(os.Stdout, rows, symbol)
}

// WritePretty writes the human-readable table to w.
func WritePretty(w io.Writer, rows []portfolio.Row, symbol string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}

	if _, err := fmt.Fprintf(w, "--- Rental property comparison (%d) ---\n", len(rows)); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight|tabwriter.Debug)
	writeLine(tw, Columns)
	for _, row := range rows {
		m := row.Metrics
		writeLine(tw, []string{
			row.Name,
			format.Currency(row.Input.PurchasePrice, symbol),
			format.Currency(row.Input.MonthlyRent, symbol),
			format.Currency(m.NotaryFees, symbol),
			format.Currency(m.TotalAcquisitionCost, symbol),
			format.Currency(m.AnnualRentalIncome, symbol),
			format.Percent(m.GrossYieldPct),
			format.Percent(m.NetYieldPct),
			format.Currency(m.MonthlyLoanPayment, symbol),
			format.Currency(m.MonthlyCashflow, symbol),
		})
	}
	return tw.Flush()
}

func writeLine(w io.Writer, cells []string) {
	for _, cell := range cells {
		fmt.Fprintf(w, " %s \t", cell)
	}
	fmt.Fprintln(w)
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(rows []portfolio.Row) {
	_ = WriteCSV(os.Stdout, rows)
}

// CsvString returns the CSV representation as a string.
func CsvString(rows []portfolio.Row) string {
	var buf bytes.Buffer
	_ = WriteCSV(&buf, rows)
	return buf.String()
}

// WriteCSV writes one header line and one line per property. Amounts and
// percentages carry two decimals and no separators.
func WriteCSV(w io.Writer, rows []portfolio.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, row := range rows {
		m := row.Metrics
		record := []string{
			row.Name,
			decimal(row.Input.PurchasePrice),
			decimal(row.Input.MonthlyRent),
			decimal(m.NotaryFees),
			decimal(m.TotalAcquisitionCost),
			decimal(m.AnnualRentalIncome),
			decimal(m.GrossYieldPct),
			decimal(m.NetYieldPct),
			decimal(m.MonthlyLoanPayment),
			decimal(m.MonthlyCashflow),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func decimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
