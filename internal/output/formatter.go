package output

import (
	"github.com/finsim/finsim/internal/domain"
)

// DefaultCurrency is the display currency for console and CSV output.
// The engine itself is currency-agnostic (plain minor units).
const DefaultCurrency = "USD"

// Formatter renders a completed projection in one output format.
type Formatter interface {
	Name() string
	Format(proj *domain.Projection) ([]byte, error)
}

// GetFormatterByName returns the formatter for the given name, or nil
// when the format is unknown.
func GetFormatterByName(name string) Formatter {
	switch name {
	case "console":
		return ConsoleFormatter{Currency: DefaultCurrency}
	case "json":
		return JSONFormatter{}
	case "csv":
		return CSVLedgerFormatter{}
	default:
		return nil
	}
}
