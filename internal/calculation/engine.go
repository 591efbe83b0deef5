package calculation

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsim/finsim/internal/domain"
	"github.com/finsim/finsim/pkg/dateutil"
)

// ErrNotConfigured is returned when a plan has no start date. Callers
// treat it as "not yet configured" rather than a failure: there is no
// projection to render, not an error to surface.
var ErrNotConfigured = errors.New("plan has no start date")

// Engine runs deterministic day-stepped projections. It owns no state
// between runs; every call is a pure function of the plan and the policy.
type Engine struct {
	Policy domain.WithdrawalPolicy
	Logger Logger
}

// NewEngine creates an engine with the default withdrawal policy and a
// no-op logger.
func NewEngine() *Engine {
	return &Engine{Policy: domain.DefaultWithdrawalPolicy(), Logger: NopLogger{}}
}

// NewEngineWithPolicy creates an engine with a custom policy, used to
// test ladder and bonus boundary conditions.
func NewEngineWithPolicy(policy domain.WithdrawalPolicy) *Engine {
	return &Engine{Policy: policy, Logger: NopLogger{}}
}

// SetLogger installs a logger; nil restores the no-op default.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.Logger = l
}

// simState is the accumulator threaded through the day step function.
type simState struct {
	wallet         int64
	pool           int64
	withdrawnNet   int64
	withdrawnGross int64
	cycleCountdown int
	cyclesDone     int
}

// runContext holds the precomputed, immutable inputs of one projection
// run so the step function has no hidden dependencies.
type runContext struct {
	policy   domain.WithdrawalPolicy
	schedule *MaturitySchedule
	strategy *StrategyEvaluator

	dailyIncome   int64
	monthlyIncome int64

	simEnabled bool
	merge      bool
	cycleLen   int
	reps       int
	dailyRate  decimal.Decimal
}

// Project runs the full day-stepped projection for the plan.
func (e *Engine) Project(plan *domain.Plan) (*domain.Projection, error) {
	cfg := plan.Config
	start, err := dateutil.Parse(cfg.StartDate)
	if err != nil {
		return nil, ErrNotConfigured
	}

	rc := &runContext{
		policy:        e.Policy,
		schedule:      BuildMaturitySchedule(plan.Portfolio),
		strategy:      NewStrategyEvaluator(e.Policy, cfg, plan.Realized),
		dailyIncome:   cfg.DailyIncome.MinorUnits(),
		monthlyIncome: cfg.MonthlyIncome.MinorUnits(),
		simEnabled:    cfg.Simulator.Enabled,
		merge:         cfg.Simulator.MergeReturns,
		cycleLen:      cfg.Simulator.CycleLengthDays.Int(),
		reps:          cfg.Simulator.Repetitions.Int(),
		dailyRate:     cfg.Simulator.DailyRatePercent.Decimal,
	}
	// A non-positive cycle length cannot compound; treat the schedule as
	// exhausted instead of closing a cycle every day.
	if rc.cycleLen <= 0 {
		rc.reps = 0
	}

	st := simState{
		wallet:         cfg.StartBalancePersonal.MinorUnits() + cfg.StartBalanceRevenue.MinorUnits(),
		cycleCountdown: rc.cycleLen,
	}
	if rc.simEnabled {
		st.pool = cfg.Simulator.InitialCapital.MinorUnits()
	}

	horizon := cfg.ViewHorizonDays.Int()
	totalDays := horizon
	if rc.simEnabled {
		if covered := rc.reps*rc.cycleLen + 30; covered > totalDays {
			totalDays = covered
		}
	}
	if totalDays < 1 {
		totalDays = 1
	}

	e.Logger.Debugf("projecting %d days from %s (horizon %d)", totalDays, cfg.StartDate, horizon)

	proj := &domain.Projection{
		Ledger: make(map[string]*domain.DayLedgerEntry, totalDays),
		Days:   make([]string, 0, totalDays),
	}
	history := make([]domain.WithdrawalRecord, 0)
	chart := make([]domain.ChartPoint, 0, totalDays)

	for day := 0; day < totalDays; day++ {
		date := dateutil.AddDays(start, day)
		var entry *domain.DayLedgerEntry
		st, entry = rc.step(st, day, date)

		proj.Ledger[entry.Date] = entry
		proj.Days = append(proj.Days, entry.Date)
		if entry.CycleClose {
			proj.CycleCloses = append(proj.CycleCloses, entry.Date)
		}
		if entry.WithdrawnGross > 0 {
			history = append(history, domain.WithdrawalRecord{
				Date:   entry.Date,
				Gross:  entry.WithdrawnGross,
				Net:    entry.WithdrawnNet,
				Status: entry.Withdrawal,
			})
		}
		// Sparse chart series: full fidelity inside the view horizon,
		// every 5th day beyond it.
		if day < horizon || day%5 == 0 {
			chart = append(chart, domain.ChartPoint{Date: entry.Date, Balance: entry.Closing})
		}
	}

	asOf := start
	if t, err := dateutil.Parse(cfg.AsOf); err == nil {
		asOf = t
	}

	proj.Results = buildResults(proj, st, history, chart, rc.capitalInvested(cfg), asOf, totalDays)
	return proj, nil
}

// step advances the simulation one calendar day, applying income,
// maturities, cycle compounding, the merge rule, and withdrawals in that
// fixed order. Later steps depend on earlier ones within the same day.
func (rc *runContext) step(st simState, day int, date time.Time) (simState, *domain.DayLedgerEntry) {
	entry := &domain.DayLedgerEntry{
		Date:       dateutil.Format(date),
		Opening:    st.wallet + st.pool,
		Withdrawal: domain.WithdrawalNone,
	}

	// 1. Recurring income. Daily income skips the non-accrual weekday and
	// day zero; monthly income lands every 30th simulated day.
	if day > 0 && date.Weekday() != rc.policy.NonAccrualWeekday {
		st.wallet += rc.dailyIncome
		entry.Income += rc.dailyIncome
	}
	if day > 0 && day%30 == 0 {
		st.wallet += rc.monthlyIncome
		entry.Income += rc.monthlyIncome
	}

	// 2. Contract maturities, provisionally credited to the wallet.
	if g := rc.schedule.On(date); g != nil {
		st.wallet += g.Total
		entry.Returns = g.Total
		entry.Maturing = g.Items
	}

	// 3. Reinvestment-cycle compounding.
	if rc.simEnabled && st.cyclesDone < rc.reps {
		st.cycleCountdown--
		if st.cycleCountdown <= 0 {
			active := applyBonus(st.pool, rc.policy)
			profit := decimal.NewFromInt(active).
				Mul(rc.dailyRate).
				Div(decimal.NewFromInt(100)).
				Mul(decimal.NewFromInt(int64(rc.cycleLen))).
				Floor().
				IntPart()
			st.pool = active + profit
			st.cyclesDone++
			st.cycleCountdown = rc.cycleLen
			entry.CycleClose = true
		}
	}

	// 4. Merge: route today's maturity return into the pool instead of
	// the wallet (moved, not double-counted).
	if rc.merge && rc.simEnabled && entry.Returns > 0 {
		st.wallet -= entry.Returns
		st.pool += entry.Returns
		entry.Reinvested = entry.Returns
	}

	// 5. Withdrawal evaluation. The pre-fee amount leaves the wallet
	// first, then the pool, clamped at zero.
	gross, status := rc.strategy.Evaluate(date, day, st.wallet+st.pool)
	entry.Tier = ResolveTier(rc.policy.Tiers, st.wallet+st.pool)
	if gross > 0 {
		net := rc.strategy.NetOfFee(gross)
		if gross <= st.wallet {
			st.wallet -= gross
		} else {
			remaining := gross - st.wallet
			st.wallet = 0
			st.pool -= remaining
			if st.pool < 0 {
				st.pool = 0
			}
		}
		st.withdrawnGross += gross
		st.withdrawnNet += net
		entry.WithdrawnGross = gross
		entry.WithdrawnNet = net
		entry.Withdrawal = status
	}

	// 6. Ledger close.
	entry.Closing = st.wallet + st.pool
	return st, entry
}

// applyBonus grows the pool by the cycle-close bonus rate for its size
// band: tier 1 inside the band, tier 2 above it, none below.
func applyBonus(pool int64, policy domain.WithdrawalPolicy) int64 {
	var rate decimal.Decimal
	switch {
	case pool > policy.BonusTier1Max:
		rate = policy.BonusTier2Percent
	case pool >= policy.BonusTier1Min:
		rate = policy.BonusTier1Percent
	default:
		return pool
	}
	factor := decimal.NewFromInt(1).Add(rate.Div(decimal.NewFromInt(100)))
	return decimal.NewFromInt(pool).Mul(factor).Floor().IntPart()
}

// capitalInvested totals the capital committed to the run: both starting
// wallets, the simulator's initial capital when enabled, and the sum of
// contract principals.
func (rc *runContext) capitalInvested(cfg domain.Config) int64 {
	total := cfg.StartBalancePersonal.MinorUnits() +
		cfg.StartBalanceRevenue.MinorUnits() +
		rc.schedule.TotalPrincipal
	if rc.simEnabled {
		total += cfg.Simulator.InitialCapital.MinorUnits()
	}
	return total
}
