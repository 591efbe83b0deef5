package store

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsim/finsim/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "finsim.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testPlan() domain.Plan {
	return domain.Plan{
		Config: domain.Config{
			StartDate:            "2025-01-01",
			ViewHorizonDays:      domain.FlexInt(30),
			StartBalancePersonal: domain.AmountFromFloat(500.00),
			Strategy:             domain.StrategyConfig{Mode: domain.StrategyMax},
		},
		Portfolio: []domain.Contract{
			{
				Name:             "alpha",
				Principal:        domain.AmountFromFloat(100.00),
				StartDate:        "2025-01-01",
				TermDays:         domain.FlexInt(10),
				DailyRatePercent: domain.AmountFromFloat(1),
			},
		},
		Realized: []domain.RealizedWithdrawal{
			{Date: "2025-01-05", Amount: domain.AmountFromFloat(50.00)},
		},
	}
}

func TestSaveAndGetPlan(t *testing.T) {
	s := openTestStore(t)

	id, err := s.SavePlan("default", testPlan())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	sp, err := s.GetPlan(id)
	require.NoError(t, err)
	assert.Equal(t, "default", sp.Name)
	assert.Equal(t, "2025-01-01", sp.Plan.Config.StartDate)
	assert.Equal(t, 30, sp.Plan.Config.ViewHorizonDays.Int())
	assert.Equal(t, int64(50000), sp.Plan.Config.StartBalancePersonal.MinorUnits())

	require.Len(t, sp.Plan.Portfolio, 1)
	c := sp.Plan.Portfolio[0]
	assert.Equal(t, "alpha", c.Name)
	assert.Equal(t, int64(10000), c.Principal.MinorUnits())
	assert.Equal(t, 10, c.TermDays.Int())

	require.Len(t, sp.Plan.Realized, 1)
	assert.Equal(t, "2025-01-05", sp.Plan.Realized[0].Date)
	assert.Equal(t, int64(5000), sp.Plan.Realized[0].Amount.MinorUnits())
}

func TestGetPlanByName(t *testing.T) {
	s := openTestStore(t)

	_, err := s.SavePlan("main", testPlan())
	require.NoError(t, err)

	sp, err := s.GetPlanByName("main")
	require.NoError(t, err)
	assert.Equal(t, "main", sp.Name)

	_, err = s.GetPlanByName("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePlanReplacesChildren(t *testing.T) {
	s := openTestStore(t)

	id, err := s.SavePlan("default", testPlan())
	require.NoError(t, err)

	updated := testPlan()
	updated.Config.StartBalancePersonal = domain.AmountFromFloat(750.00)
	updated.Portfolio = append(updated.Portfolio, domain.Contract{
		Name:             "beta",
		Principal:        domain.AmountFromFloat(200.00),
		StartDate:        "2025-02-01",
		TermDays:         domain.FlexInt(20),
		DailyRatePercent: domain.AmountFromFloat(0.5),
	})
	updated.Realized = nil

	require.NoError(t, s.UpdatePlan(id, updated))

	sp, err := s.GetPlan(id)
	require.NoError(t, err)
	assert.Equal(t, int64(75000), sp.Plan.Config.StartBalancePersonal.MinorUnits())
	assert.Len(t, sp.Plan.Portfolio, 2)
	assert.Empty(t, sp.Plan.Realized)

	assert.ErrorIs(t, s.UpdatePlan("nope", updated), ErrNotFound)
}

func TestListPlans(t *testing.T) {
	s := openTestStore(t)

	_, err := s.SavePlan("one", testPlan())
	require.NoError(t, err)
	_, err = s.SavePlan("two", testPlan())
	require.NoError(t, err)

	plans, err := s.ListPlans()
	require.NoError(t, err)
	require.Len(t, plans, 2)
	// Listing skips portfolios.
	assert.Empty(t, plans[0].Plan.Portfolio)
}

func TestDeletePlan(t *testing.T) {
	s := openTestStore(t)

	id, err := s.SavePlan("default", testPlan())
	require.NoError(t, err)

	require.NoError(t, s.DeletePlan(id))
	_, err = s.GetPlan(id)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeletePlan(id), ErrNotFound)
}

func TestDuplicateNameRejected(t *testing.T) {
	s := openTestStore(t)

	_, err := s.SavePlan("default", testPlan())
	require.NoError(t, err)
	_, err = s.SavePlan("default", testPlan())
	assert.Error(t, err)
}
