package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsim/finsim/internal/domain"
	"github.com/finsim/finsim/pkg/dateutil"
)

// maturityGroup collects every contract payout landing on one date.
type maturityGroup struct {
	Total int64
	Items []domain.MaturedContract
}

// MaturitySchedule is the precomputed maturity lookup the day loop
// consumes: payouts grouped by ISO maturity date, plus the portfolio's
// total principal (part of total capital invested).
type MaturitySchedule struct {
	byDate         map[string]*maturityGroup
	TotalPrincipal int64
}

// BuildMaturitySchedule derives maturity date and payout for every
// contract. Payout = principal + floor(principal * rate/100 * term); the
// floor keeps interest biased downward. Contracts with an unparseable
// start date are skipped — the engine degrades rather than failing.
func BuildMaturitySchedule(portfolio []domain.Contract) *MaturitySchedule {
	s := &MaturitySchedule{byDate: make(map[string]*maturityGroup, len(portfolio))}
	for _, c := range portfolio {
		start, err := dateutil.Parse(c.StartDate)
		if err != nil {
			continue
		}
		principal := c.Principal.MinorUnits()
		interest := ContractInterest(principal, c.DailyRatePercent.Decimal, c.TermDays.Int())
		maturity := dateutil.Format(dateutil.AddDays(start, c.TermDays.Int()))

		g := s.byDate[maturity]
		if g == nil {
			g = &maturityGroup{}
			s.byDate[maturity] = g
		}
		g.Total += principal + interest
		g.Items = append(g.Items, domain.MaturedContract{
			Name:      c.Name,
			Principal: principal,
			Interest:  interest,
			Total:     principal + interest,
		})
		s.TotalPrincipal += principal
	}
	return s
}

// ContractInterest computes simple interest in minor units:
// floor(principal * ratePercent/100 * termDays).
func ContractInterest(principalMinor int64, ratePercent decimal.Decimal, termDays int) int64 {
	if termDays <= 0 {
		return 0
	}
	return decimal.NewFromInt(principalMinor).
		Mul(ratePercent).
		Mul(decimal.NewFromInt(int64(termDays))).
		Div(decimal.NewFromInt(100)).
		Floor().
		IntPart()
}

// On returns the payout group maturing on the given date, or nil.
func (s *MaturitySchedule) On(t time.Time) *maturityGroup {
	return s.byDate[dateutil.Format(t)]
}
