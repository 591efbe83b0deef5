package domain

// Plan is the full input to a projection run: the configuration, the
// contract portfolio, and any manually realized withdrawals. The engine
// treats all of it as read-only and owns no state between runs.
type Plan struct {
	Config    Config               `yaml:"config" json:"config"`
	Portfolio []Contract           `yaml:"portfolio" json:"portfolio"`
	Realized  []RealizedWithdrawal `yaml:"realizedWithdrawals" json:"realizedWithdrawals"`
}

// Config holds the per-run settings. Monetary fields accept strings or
// numbers on the wire and coerce to zero when malformed; only a missing
// start date aborts a run.
type Config struct {
	// StartDate is the ISO date of simulation day zero. Mandatory.
	StartDate string `yaml:"startDate" json:"startDate"`

	// AsOf is "today" for the next-withdrawal forecast. Optional; the
	// engine falls back to StartDate so a run stays a pure function of
	// its inputs. The CLI injects the wall-clock date here.
	AsOf string `yaml:"asOf,omitempty" json:"asOf,omitempty"`

	// WithdrawalWeekday is the target day of week for strategy-planned
	// withdrawals (0 = Sunday ... 6 = Saturday).
	WithdrawalWeekday FlexInt `yaml:"withdrawalWeekday" json:"withdrawalWeekday"`

	// ViewHorizonDays is the requested viewing window. The loop may run
	// longer to cover the full reinvestment schedule.
	ViewHorizonDays FlexInt `yaml:"viewHorizonDays" json:"viewHorizonDays"`

	// Two starting wallet balances. The loop tracks them as one combined
	// wallet; both fields are kept so callers can round-trip their data.
	StartBalancePersonal Amount `yaml:"startBalancePersonal" json:"startBalancePersonal"`
	StartBalanceRevenue  Amount `yaml:"startBalanceRevenue" json:"startBalanceRevenue"`

	// Recurring income: daily income accrues every day except the
	// non-accrual weekday, monthly income every 30th simulated day.
	DailyIncome   Amount `yaml:"dailyIncome" json:"dailyIncome"`
	MonthlyIncome Amount `yaml:"monthlyIncome" json:"monthlyIncome"`

	Simulator SimulatorConfig `yaml:"simulator" json:"simulator"`
	Strategy  StrategyConfig  `yaml:"strategy" json:"strategy"`
}

// SimulatorConfig controls the optional cyclic reinvestment simulator.
type SimulatorConfig struct {
	Enabled          bool    `yaml:"enabled" json:"enabled"`
	InitialCapital   Amount  `yaml:"initialCapital" json:"initialCapital"`
	CycleLengthDays  FlexInt `yaml:"cycleLengthDays" json:"cycleLengthDays"`
	DailyRatePercent Amount  `yaml:"dailyRatePercent" json:"dailyRatePercent"`
	Repetitions      FlexInt `yaml:"repetitions" json:"repetitions"`

	// MergeReturns routes contract payouts into the reinvestment pool
	// instead of the wallet while the simulator is enabled.
	MergeReturns bool `yaml:"mergeReturns" json:"mergeReturns"`
}

// Withdrawal strategy modes.
const (
	StrategyNone   = "none"
	StrategyMax    = "max"
	StrategyFixed  = "fixed"
	StrategyWeekly = "weekly"
)

// StrategyConfig selects the withdrawal strategy and its parameters.
type StrategyConfig struct {
	Mode string `yaml:"mode" json:"mode"`

	// FixedTarget is the minimum tier value required by the fixed
	// strategy before a withdrawal is planned.
	FixedTarget Amount `yaml:"fixedTarget,omitempty" json:"fixedTarget,omitempty"`

	// SelectedWeeks lists the ordinal weeks of the month (1-5) on which
	// the weekly strategy plans withdrawals.
	SelectedWeeks []int `yaml:"selectedWeeks,omitempty" json:"selectedWeeks,omitempty"`
}

// Contract is a fixed-term, fixed-rate portfolio entry. Immutable once
// created; the engine only reads it. Maturity date and payout are derived,
// never stored.
type Contract struct {
	Name             string  `yaml:"name" json:"name"`
	Principal        Amount  `yaml:"principal" json:"principal"`
	StartDate        string  `yaml:"startDate" json:"startDate"`
	TermDays         FlexInt `yaml:"termDays" json:"termDays"`
	DailyRatePercent Amount  `yaml:"dailyRatePercent" json:"dailyRatePercent"`
}

// RealizedWithdrawal is a withdrawal the user manually confirmed. When one
// exists for a simulated day it overrides any strategy-planned amount.
type RealizedWithdrawal struct {
	Date   string `yaml:"date" json:"date"`
	Amount Amount `yaml:"amount" json:"amount"`
}
