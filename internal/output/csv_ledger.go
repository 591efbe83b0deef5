package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/finsim/finsim/internal/domain"
)

// CSVLedgerFormatter emits the day ledger as CSV, one row per simulated
// day in date order. Amounts are written as plain decimal values so
// spreadsheets can sum them.
type CSVLedgerFormatter struct{}

func (CSVLedgerFormatter) Name() string { return "csv" }

func (CSVLedgerFormatter) Format(proj *domain.Projection) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Date", "Opening", "Income", "Returns", "Reinvested", "WithdrawnGross", "WithdrawnNet", "Closing", "Tier", "CycleClose", "Withdrawal", "Maturing"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, date := range proj.Days {
		entry := proj.Ledger[date]
		row := []string{
			entry.Date,
			amountCell(entry.Opening),
			amountCell(entry.Income),
			amountCell(entry.Returns),
			amountCell(entry.Reinvested),
			amountCell(entry.WithdrawnGross),
			amountCell(entry.WithdrawnNet),
			amountCell(entry.Closing),
			amountCell(entry.Tier),
			strconv.FormatBool(entry.CycleClose),
			string(entry.Withdrawal),
			strconv.Itoa(len(entry.Maturing)),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func amountCell(minor int64) string {
	return domain.FromMinorUnits(minor).StringFixed(2)
}
