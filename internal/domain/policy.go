package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalPolicy groups the policy constants of the projection:
// the withdrawal tier ladder, the flat withdrawal fee, the two-tier
// cycle-close bonus schedule, and the non-accrual weekday. These are not
// user-facing plan settings, but they are parameters here so boundary
// conditions can be tested without editing ladder literals.
type WithdrawalPolicy struct {
	// Tiers is the fixed ascending ladder of minor-unit thresholds the
	// strategy logic can target. A withdrawal takes exactly the resolved
	// tier value, never the full pool.
	Tiers []int64

	// FeePercent is the flat fee deducted from any amount leaving the
	// pool before it is recorded as withdrawn.
	FeePercent decimal.Decimal

	// Cycle-close bonus schedule: a pool inside [BonusTier1Min,
	// BonusTier1Max] earns BonusTier1Percent, a pool above the band earns
	// BonusTier2Percent, a pool below the band earns no bonus.
	BonusTier1Min     int64
	BonusTier1Max     int64
	BonusTier1Percent decimal.Decimal
	BonusTier2Percent decimal.Decimal

	// NonAccrualWeekday is the weekday on which daily income does not
	// accrue.
	NonAccrualWeekday time.Weekday
}

// DefaultWithdrawalPolicy returns the observed production policy:
// an 8-tier ladder from 40.00 to 38,000.00 units, a 10% withdrawal fee,
// and a 100.00-5,000.00 bonus band at +3% with +5% above it.
func DefaultWithdrawalPolicy() WithdrawalPolicy {
	return WithdrawalPolicy{
		Tiers: []int64{
			4_000,     // 40.00
			12_500,    // 125.00
			35_000,    // 350.00
			120_000,   // 1,200.00
			360_000,   // 3,600.00
			900_000,   // 9,000.00
			1_800_000, // 18,000.00
			3_800_000, // 38,000.00
		},
		FeePercent:        decimal.NewFromInt(10),
		BonusTier1Min:     10_000,  // 100.00
		BonusTier1Max:     500_000, // 5,000.00
		BonusTier1Percent: decimal.NewFromInt(3),
		BonusTier2Percent: decimal.NewFromInt(5),
		NonAccrualWeekday: time.Sunday,
	}
}
