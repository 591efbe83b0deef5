package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsim/finsim/internal/domain"
	"github.com/finsim/finsim/pkg/dateutil"
)

// StrategyEvaluator decides, per day, whether a withdrawal happens and
// for how much. Manual realized records always win over the configured
// strategy; strategy-planned withdrawals only fire on the target weekday
// and never on day zero.
type StrategyEvaluator struct {
	policy   domain.WithdrawalPolicy
	strategy domain.StrategyConfig
	weekday  time.Weekday
	weeks    map[int]bool
	realized map[string]int64
}

// NewStrategyEvaluator precomputes the realized-withdrawal lookup and the
// selected-weeks set for the run.
func NewStrategyEvaluator(policy domain.WithdrawalPolicy, cfg domain.Config, realized []domain.RealizedWithdrawal) *StrategyEvaluator {
	e := &StrategyEvaluator{
		policy:   policy,
		strategy: cfg.Strategy,
		weekday:  time.Weekday(cfg.WithdrawalWeekday.Int() % 7),
		weeks:    make(map[int]bool, len(cfg.Strategy.SelectedWeeks)),
		realized: make(map[string]int64, len(realized)),
	}
	for _, w := range cfg.Strategy.SelectedWeeks {
		e.weeks[w] = true
	}
	for _, r := range realized {
		e.realized[r.Date] = r.Amount.MinorUnits()
	}
	return e
}

// Evaluate returns the gross (pre-fee) withdrawal amount for the day and
// its status tag. A zero amount means no withdrawal.
func (e *StrategyEvaluator) Evaluate(date time.Time, dayIndex int, poolTotal int64) (int64, domain.WithdrawalStatus) {
	if amount, ok := e.realized[dateutil.Format(date)]; ok && amount > 0 {
		return amount, domain.WithdrawalRealized
	}
	if dayIndex == 0 || date.Weekday() != e.weekday {
		return 0, domain.WithdrawalNone
	}

	tier := ResolveTier(e.policy.Tiers, poolTotal)
	switch e.strategy.Mode {
	case domain.StrategyMax:
		if tier > 0 {
			return tier, domain.WithdrawalPlanned
		}
	case domain.StrategyFixed:
		if tier > 0 && tier >= e.strategy.FixedTarget.MinorUnits() {
			return tier, domain.WithdrawalPlanned
		}
	case domain.StrategyWeekly:
		if tier > 0 && e.weeks[dateutil.WeekOfMonth(date)] {
			return tier, domain.WithdrawalPlanned
		}
	}
	return 0, domain.WithdrawalNone
}

// NetOfFee applies the flat withdrawal fee: floor(gross * (100-fee)/100).
// The full pre-fee amount still leaves the balances; only the net figure
// is recorded as withdrawn.
func (e *StrategyEvaluator) NetOfFee(gross int64) int64 {
	keep := decimal.NewFromInt(100).Sub(e.policy.FeePercent)
	return decimal.NewFromInt(gross).
		Mul(keep).
		Div(decimal.NewFromInt(100)).
		Floor().
		IntPart()
}
