package domain

import (
	"github.com/shopspring/decimal"
)

// WithdrawalStatus tags a ledger day's withdrawal outcome.
type WithdrawalStatus string

const (
	WithdrawalNone     WithdrawalStatus = "none"
	WithdrawalPlanned  WithdrawalStatus = "planned"
	WithdrawalRealized WithdrawalStatus = "realized"
)

// MaturedContract is the per-contract payout breakdown recorded on the
// ledger day a contract matures. All values are minor units.
type MaturedContract struct {
	Name      string `json:"name"`
	Principal int64  `json:"principal"`
	Interest  int64  `json:"interest"`
	Total     int64  `json:"total"`
}

// DayLedgerEntry is one simulated day. Invariant: Closing = Opening +
// Income + Returns - (pre-fee amount leaving the combined balance), and
// Closing is never negative.
type DayLedgerEntry struct {
	Date    string `json:"date"`
	Opening int64  `json:"opening"`
	Closing int64  `json:"closing"`

	Income     int64 `json:"income"`
	Returns    int64 `json:"returns"`
	Reinvested int64 `json:"reinvested"`

	WithdrawnGross int64 `json:"withdrawnGross"`
	WithdrawnNet   int64 `json:"withdrawnNet"`

	Maturing   []MaturedContract `json:"maturing,omitempty"`
	Tier       int64             `json:"tier"`
	CycleClose bool              `json:"cycleClose"`
	Withdrawal WithdrawalStatus  `json:"withdrawal"`
}

// WithdrawalRecord is one entry of the run's withdrawal history.
type WithdrawalRecord struct {
	Date   string           `json:"date"`
	Gross  int64            `json:"gross"`
	Net    int64            `json:"net"`
	Status WithdrawalStatus `json:"status"`
}

// WithdrawalForecast is the first non-past withdrawal of the run, shown
// on dashboards. Amount is net of fee.
type WithdrawalForecast struct {
	Date   string `json:"date"`
	Amount int64  `json:"amount"`
}

// ChartPoint is one point of the sparse charting series: closing balance
// by date.
type ChartPoint struct {
	Date    string `json:"date"`
	Balance int64  `json:"balance"`
}

// Results aggregates the whole run. Monetary fields are minor units;
// ROIPercent is a decimal percentage.
type Results struct {
	NetProfit       int64               `json:"netProfit"`
	TotalWithdrawn  int64               `json:"totalWithdrawn"`
	FinalBalance    int64               `json:"finalBalance"`
	NextWithdrawal  *WithdrawalForecast `json:"nextWithdrawal,omitempty"`
	ROIPercent      decimal.Decimal     `json:"roiPercent"`
	Chart           []ChartPoint        `json:"chart"`
	History         []WithdrawalRecord  `json:"history"`
	AvgMonthlyYield int64               `json:"avgMonthlyYield"`

	// PaybackDays is the zero-based ledger index of the break-even day,
	// or -1 when capital is never recovered within the run.
	PaybackDays   int    `json:"paybackDays"`
	BreakEvenDate string `json:"breakEvenDate,omitempty"`

	TotalCapitalInvested int64 `json:"totalCapitalInvested"`
	SimulatedDays        int   `json:"simulatedDays"`
}

// Projection is the full engine output: aggregate results plus the
// per-day ledger. Days holds the ledger keys in date order; CycleCloses
// lists reinvestment cycle-close dates for calendar annotations.
type Projection struct {
	Results     *Results                   `json:"results"`
	Ledger      map[string]*DayLedgerEntry `json:"ledger"`
	Days        []string                   `json:"days"`
	CycleCloses []string                   `json:"cycleCloses,omitempty"`
}
