package output

import (
	"encoding/json"

	"github.com/finsim/finsim/internal/domain"
)

// JSONFormatter renders the full projection (results + ledger) as
// indented JSON for export and API consumers.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(proj *domain.Projection) ([]byte, error) {
	return json.MarshalIndent(proj, "", "  ")
}
