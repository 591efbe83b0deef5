package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsim/finsim/internal/domain"
	"github.com/finsim/finsim/pkg/dateutil"
)

// buildResults post-processes the completed day ledger into the summary
// KPIs: net profit, ROI, average monthly yield, payback period,
// break-even date, and the next-withdrawal forecast.
func buildResults(proj *domain.Projection, st simState, history []domain.WithdrawalRecord,
	chart []domain.ChartPoint, totalCapital int64, asOf time.Time, simulatedDays int) *domain.Results {

	final := st.wallet + st.pool
	netProfit := final + st.withdrawnNet - totalCapital

	res := &domain.Results{
		NetProfit:            netProfit,
		TotalWithdrawn:       st.withdrawnNet,
		FinalBalance:         final,
		ROIPercent:           decimal.Zero,
		Chart:                chart,
		History:              history,
		PaybackDays:          -1,
		TotalCapitalInvested: totalCapital,
		SimulatedDays:        simulatedDays,
	}

	if totalCapital > 0 {
		res.ROIPercent = decimal.NewFromInt(netProfit).
			Div(decimal.NewFromInt(totalCapital)).
			Mul(decimal.NewFromInt(100))
	}

	months := int64(simulatedDays / 30)
	if months < 1 {
		months = 1
	}
	res.AvgMonthlyYield = netProfit / months

	// Break-even: first day where closing balance plus everything
	// withdrawn so far covers the capital invested.
	var cumWithdrawn int64
	for i, date := range proj.Days {
		entry := proj.Ledger[date]
		cumWithdrawn += entry.WithdrawnNet
		if entry.Closing+cumWithdrawn >= totalCapital {
			res.PaybackDays = i
			res.BreakEvenDate = date
			break
		}
	}

	// Next forecasted withdrawal: first one on or after the as-of date.
	asOfISO := dateutil.Format(asOf)
	for _, rec := range history {
		if rec.Date >= asOfISO {
			res.NextWithdrawal = &domain.WithdrawalForecast{Date: rec.Date, Amount: rec.Net}
			break
		}
	}

	return res
}
