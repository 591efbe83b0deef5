package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/finsim/finsim/internal/domain"
)

// ConsoleFormatter renders a human-readable summary: the aggregate KPIs,
// the withdrawal history, and upcoming cycle closes.
type ConsoleFormatter struct {
	Currency string
}

func (ConsoleFormatter) Name() string { return "console" }

func (f ConsoleFormatter) Format(proj *domain.Projection) ([]byte, error) {
	cur := f.Currency
	if cur == "" {
		cur = DefaultCurrency
	}
	money := func(minor int64) string { return domain.FormatMinorUnits(minor, cur) }

	buf := &bytes.Buffer{}
	res := proj.Results

	fmt.Fprintln(buf, "PROJECTION SUMMARY")
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	fmt.Fprintf(buf, "Simulated days:        %d\n", res.SimulatedDays)
	fmt.Fprintf(buf, "Capital invested:      %s\n", money(res.TotalCapitalInvested))
	fmt.Fprintf(buf, "Final balance:         %s\n", money(res.FinalBalance))
	fmt.Fprintf(buf, "Total withdrawn (net): %s\n", money(res.TotalWithdrawn))
	fmt.Fprintf(buf, "Net profit:            %s\n", money(res.NetProfit))
	fmt.Fprintf(buf, "ROI:                   %s%%\n", res.ROIPercent.StringFixed(2))
	fmt.Fprintf(buf, "Avg monthly yield:     %s\n", money(res.AvgMonthlyYield))

	if res.BreakEvenDate != "" {
		fmt.Fprintf(buf, "Break-even:            %s (day %d)\n", res.BreakEvenDate, res.PaybackDays)
	} else {
		fmt.Fprintln(buf, "Break-even:            not reached")
	}
	if res.NextWithdrawal != nil {
		fmt.Fprintf(buf, "Next withdrawal:       %s on %s\n", money(res.NextWithdrawal.Amount), res.NextWithdrawal.Date)
	}

	if len(res.History) > 0 {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "WITHDRAWAL HISTORY")
		fmt.Fprintln(buf, strings.Repeat("-", 50))
		for _, rec := range res.History {
			fmt.Fprintf(buf, "  %s  %-8s  gross %s  net %s\n", rec.Date, rec.Status, money(rec.Gross), money(rec.Net))
		}
	}

	if len(proj.CycleCloses) > 0 {
		fmt.Fprintln(buf)
		fmt.Fprintf(buf, "Cycle closes: %s\n", strings.Join(proj.CycleCloses, ", "))
	}

	return buf.Bytes(), nil
}
