package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsim/finsim/internal/calculation"
	"github.com/finsim/finsim/internal/domain"
)

func sampleProjection(t *testing.T) *domain.Projection {
	t.Helper()
	plan := &domain.Plan{
		Config: domain.Config{
			StartDate:            "2025-01-01",
			ViewHorizonDays:      domain.FlexInt(14),
			StartBalancePersonal: domain.AmountFromFloat(1000.00),
			WithdrawalWeekday:    domain.FlexInt(3),
			Strategy:             domain.StrategyConfig{Mode: domain.StrategyMax},
		},
	}
	proj, err := calculation.NewEngine().Project(plan)
	require.NoError(t, err)
	return proj
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range []string{"console", "json", "csv"} {
		f := GetFormatterByName(name)
		require.NotNil(t, f, "formatter %q should exist", name)
		assert.Equal(t, name, f.Name())
	}
	assert.Nil(t, GetFormatterByName("html"))
}

func TestJSONFormatterRoundTrips(t *testing.T) {
	proj := sampleProjection(t)
	data, err := JSONFormatter{}.Format(proj)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "results")
	assert.Contains(t, decoded, "ledger")
}

func TestCSVLedgerFormatter(t *testing.T) {
	proj := sampleProjection(t)
	data, err := CSVLedgerFormatter{}.Format(proj)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 15, "header plus one row per day")
	assert.True(t, strings.HasPrefix(lines[0], "Date,Opening,Income"))
	assert.True(t, strings.HasPrefix(lines[1], "2025-01-01,1000.00"))
	// The withdrawal day carries the planned tier amount.
	assert.Contains(t, string(data), "2025-01-08,1000.00,0.00,0.00,0.00,350.00,315.00,650.00")
}

func TestConsoleFormatterSummary(t *testing.T) {
	proj := sampleProjection(t)
	data, err := ConsoleFormatter{Currency: "USD"}.Format(proj)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "PROJECTION SUMMARY")
	assert.Contains(t, out, "Final balance:         $650.00")
	assert.Contains(t, out, "Total withdrawn (net): $315.00")
	assert.Contains(t, out, "WITHDRAWAL HISTORY")
	assert.Contains(t, out, "2025-01-08")
}
