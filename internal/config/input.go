package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/finsim/finsim/internal/domain"
	"github.com/finsim/finsim/pkg/dateutil"
)

// InputParser handles loading of plan files. Validation here is
// structural only: the projection engine itself never rejects a plan over
// business rules, so this layer catches the mistakes a user can fix in
// the file (unknown strategy modes, out-of-range weeks, bad dates) before
// a run silently degrades to zeros.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Load(data)
}

// Load parses and validates a plan from YAML bytes.
func (ip *InputParser) Load(data []byte) (*domain.Plan, error) {
	var plan domain.Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}
	return &plan, nil
}

// ValidatePlan validates the structural shape of a loaded plan.
func (ip *InputParser) ValidatePlan(plan *domain.Plan) error {
	if err := ip.validateConfig(&plan.Config); err != nil {
		return err
	}
	for i, c := range plan.Portfolio {
		if err := ip.validateContract(&c); err != nil {
			return fmt.Errorf("contract %d (%s): %w", i, c.Name, err)
		}
	}
	for i, r := range plan.Realized {
		if _, err := dateutil.Parse(r.Date); err != nil {
			return fmt.Errorf("realized withdrawal %d: invalid date %q", i, r.Date)
		}
	}
	return nil
}

func (ip *InputParser) validateConfig(cfg *domain.Config) error {
	// A missing start date is legal: the engine reports the plan as not
	// yet configured. A present but malformed one is a file mistake.
	if cfg.StartDate != "" {
		if _, err := dateutil.Parse(cfg.StartDate); err != nil {
			return fmt.Errorf("invalid start date %q (want YYYY-MM-DD)", cfg.StartDate)
		}
	}
	if cfg.AsOf != "" {
		if _, err := dateutil.Parse(cfg.AsOf); err != nil {
			return fmt.Errorf("invalid as-of date %q (want YYYY-MM-DD)", cfg.AsOf)
		}
	}
	if wd := cfg.WithdrawalWeekday.Int(); wd < 0 || wd > 6 {
		return fmt.Errorf("withdrawal weekday must be between 0 (Sunday) and 6, got %d", wd)
	}
	if cfg.ViewHorizonDays.Int() < 0 {
		return fmt.Errorf("view horizon cannot be negative")
	}

	switch cfg.Strategy.Mode {
	case "", domain.StrategyNone, domain.StrategyMax, domain.StrategyFixed, domain.StrategyWeekly:
	default:
		return fmt.Errorf("withdrawal strategy must be 'none', 'max', 'fixed', or 'weekly', got %q", cfg.Strategy.Mode)
	}
	if cfg.Strategy.Mode == domain.StrategyWeekly && len(cfg.Strategy.SelectedWeeks) == 0 {
		return fmt.Errorf("weekly strategy requires at least one selected week")
	}
	for _, w := range cfg.Strategy.SelectedWeeks {
		if w < 1 || w > 5 {
			return fmt.Errorf("selected weeks must be between 1 and 5, got %d", w)
		}
	}

	if cfg.Simulator.Enabled {
		if cfg.Simulator.CycleLengthDays.Int() < 0 {
			return fmt.Errorf("cycle length cannot be negative")
		}
		if cfg.Simulator.Repetitions.Int() < 0 {
			return fmt.Errorf("cycle repetitions cannot be negative")
		}
	}
	return nil
}

func (ip *InputParser) validateContract(c *domain.Contract) error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if _, err := dateutil.Parse(c.StartDate); err != nil {
		return fmt.Errorf("invalid start date %q (want YYYY-MM-DD)", c.StartDate)
	}
	if c.TermDays.Int() <= 0 {
		return fmt.Errorf("term must be positive, got %d", c.TermDays.Int())
	}
	if c.Principal.Decimal.IsNegative() {
		return fmt.Errorf("principal cannot be negative")
	}
	if c.DailyRatePercent.Decimal.IsNegative() {
		return fmt.Errorf("daily rate cannot be negative")
	}
	return nil
}
