// Package store persists plans in a local SQLite database. It holds no
// projection logic: plans go in, plans come out, and the engine stays a
// pure function of whatever the caller loads.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/finsim/finsim/internal/domain"
)

// ErrNotFound is returned when no stored plan matches the given id.
var ErrNotFound = errors.New("plan not found")

// StoredPlan is a persisted plan with its storage metadata.
type StoredPlan struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Plan      domain.Plan `json:"plan"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Store wraps the SQLite database. Safe for concurrent use.
type Store struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// Open opens (or creates) the database at path and runs migrations.
func Open(path string, log zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so API reads do not block writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &Store{db: db, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", path).Msg("plan store opened")
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS plans (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL UNIQUE,
			config     TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS contracts (
			id         TEXT PRIMARY KEY,
			plan_id    TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
			name       TEXT NOT NULL,
			principal  TEXT NOT NULL,
			start_date TEXT NOT NULL,
			term_days  INTEGER NOT NULL,
			daily_rate TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_contracts_plan ON contracts(plan_id)`,
		`CREATE TABLE IF NOT EXISTS realized_withdrawals (
			id      TEXT PRIMARY KEY,
			plan_id TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
			date    TEXT NOT NULL,
			amount  TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_realized_plan ON realized_withdrawals(plan_id)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// SavePlan inserts a new plan and returns its generated id.
func (s *Store) SavePlan(name string, plan domain.Plan) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfgJSON, err := json.Marshal(plan.Config)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}

	id := uuid.NewString()
	now := time.Now().Unix()

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO plans (id, name, config, created_at, updated_at) VALUES (?,?,?,?,?)`,
		id, name, string(cfgJSON), now, now,
	); err != nil {
		return "", fmt.Errorf("insert plan: %w", err)
	}
	if err := insertChildren(tx, id, plan); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}

	s.log.Debug().Str("id", id).Str("name", name).Msg("plan saved")
	return id, nil
}

// UpdatePlan replaces the stored plan with the given id.
func (s *Store) UpdatePlan(id string, plan domain.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfgJSON, err := json.Marshal(plan.Config)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE plans SET config = ?, updated_at = ? WHERE id = ?`,
		string(cfgJSON), time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	// Contracts and realized withdrawals are replaced wholesale; the plan
	// document is the source of truth, not the individual rows.
	if _, err := tx.Exec(`DELETE FROM contracts WHERE plan_id = ?`, id); err != nil {
		return fmt.Errorf("clear contracts: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM realized_withdrawals WHERE plan_id = ?`, id); err != nil {
		return fmt.Errorf("clear realized withdrawals: %w", err)
	}
	if err := insertChildren(tx, id, plan); err != nil {
		return err
	}
	return tx.Commit()
}

func insertChildren(tx *sql.Tx, planID string, plan domain.Plan) error {
	for _, c := range plan.Portfolio {
		if _, err := tx.Exec(
			`INSERT INTO contracts (id, plan_id, name, principal, start_date, term_days, daily_rate)
			 VALUES (?,?,?,?,?,?,?)`,
			uuid.NewString(), planID, c.Name, c.Principal.String(),
			c.StartDate, c.TermDays.Int(), c.DailyRatePercent.String(),
		); err != nil {
			return fmt.Errorf("insert contract %q: %w", c.Name, err)
		}
	}
	for _, w := range plan.Realized {
		if _, err := tx.Exec(
			`INSERT INTO realized_withdrawals (id, plan_id, date, amount) VALUES (?,?,?,?)`,
			uuid.NewString(), planID, w.Date, w.Amount.String(),
		); err != nil {
			return fmt.Errorf("insert realized withdrawal %s: %w", w.Date, err)
		}
	}
	return nil
}

// GetPlan loads the plan with the given id.
func (s *Store) GetPlan(id string) (*StoredPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`SELECT id, name, config, created_at, updated_at FROM plans WHERE id = ?`, id)
	sp, err := scanPlan(row)
	if err != nil {
		return nil, err
	}
	if err := s.loadChildren(sp); err != nil {
		return nil, err
	}
	return sp, nil
}

// GetPlanByName loads the plan with the given name.
func (s *Store) GetPlanByName(name string) (*StoredPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`SELECT id, name, config, created_at, updated_at FROM plans WHERE name = ?`, name)
	sp, err := scanPlan(row)
	if err != nil {
		return nil, err
	}
	if err := s.loadChildren(sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func scanPlan(row *sql.Row) (*StoredPlan, error) {
	var (
		sp      StoredPlan
		cfgJSON string
		created int64
		updated int64
	)
	if err := row.Scan(&sp.ID, &sp.Name, &cfgJSON, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(cfgJSON), &sp.Plan.Config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	sp.CreatedAt = time.Unix(created, 0).UTC()
	sp.UpdatedAt = time.Unix(updated, 0).UTC()
	return &sp, nil
}

func (s *Store) loadChildren(sp *StoredPlan) error {
	rows, err := s.db.Query(
		`SELECT name, principal, start_date, term_days, daily_rate
		 FROM contracts WHERE plan_id = ? ORDER BY start_date, name`, sp.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			c         domain.Contract
			principal string
			termDays  int
			rate      string
		)
		if err := rows.Scan(&c.Name, &principal, &c.StartDate, &termDays, &rate); err != nil {
			return err
		}
		c.Principal = parseAmount(principal)
		c.TermDays = domain.FlexInt(termDays)
		c.DailyRatePercent = parseAmount(rate)
		sp.Plan.Portfolio = append(sp.Plan.Portfolio, c)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	wrows, err := s.db.Query(
		`SELECT date, amount FROM realized_withdrawals WHERE plan_id = ? ORDER BY date`, sp.ID)
	if err != nil {
		return err
	}
	defer wrows.Close()
	for wrows.Next() {
		var (
			w      domain.RealizedWithdrawal
			amount string
		)
		if err := wrows.Scan(&w.Date, &amount); err != nil {
			return err
		}
		w.Amount = parseAmount(amount)
		sp.Plan.Realized = append(sp.Plan.Realized, w)
	}
	return wrows.Err()
}

func parseAmount(s string) domain.Amount {
	var a domain.Amount
	// Amount tolerates malformed input; reuse its JSON coercion.
	_ = a.UnmarshalJSON([]byte(s))
	return a
}

// ListPlans returns metadata for every stored plan, newest first.
// Portfolios are not loaded; use GetPlan for the full document.
func (s *Store) ListPlans() ([]StoredPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT id, name, created_at, updated_at FROM plans ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []StoredPlan
	for rows.Next() {
		var (
			sp      StoredPlan
			created int64
			updated int64
		)
		if err := rows.Scan(&sp.ID, &sp.Name, &created, &updated); err != nil {
			return nil, err
		}
		sp.CreatedAt = time.Unix(created, 0).UTC()
		sp.UpdatedAt = time.Unix(updated, 0).UTC()
		plans = append(plans, sp)
	}
	return plans, rows.Err()
}

// DeletePlan removes the plan and its child rows.
func (s *Store) DeletePlan(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	s.log.Debug().Str("id", id).Msg("plan deleted")
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.log.Debug().Msg("closing plan store")
	return s.db.Close()
}
