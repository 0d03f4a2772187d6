package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	automaton "github.com/Hakley10/convert-and-minimize"

	// SQLite driver
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const memoryPath = ":memory:"

// ErrNotFound is returned when no automaton has the requested id.
var ErrNotFound = errors.New("automaton not found")

// SQLiteStore persists NFA and DFA records in SQLite.
type SQLiteStore struct {
	db  *sql.DB
	cfg Config
}

// Config holds SQLite store configuration
type Config struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Summary identifies a stored automaton.
type Summary struct {
	ID        int64
	Name      string
	CreatedAt time.Time

	// SourceNFA is the NFA a DFA was converted from, if known. Always nil
	// for NFAs.
	SourceNFA *int64
}

// NewSQLiteStore creates a new SQLite store instance
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	// Set defaults
	if cfg.MaxOpenConns == 0 {
		cfg.MaxOpenConns = 4
	}
	if cfg.MaxIdleConns == 0 {
		cfg.MaxIdleConns = 2
	}
	if cfg.ConnMaxLifetime == 0 {
		cfg.ConnMaxLifetime = 5 * time.Minute
	}

	// Every connection to :memory: opens its own empty database.
	if cfg.Path == memoryPath {
		cfg.MaxOpenConns = 1
		cfg.MaxIdleConns = 1
		cfg.ConnMaxLifetime = 0
	}

	return &SQLiteStore{cfg: cfg}, nil
}

// Init opens the database connection.
func (s *SQLiteStore) Init(ctx context.Context) error {
	dsn := s.cfg.Path
	if dsn != memoryPath {
		dsn = fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", s.cfg.Path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(s.cfg.MaxOpenConns)
	db.SetMaxIdleConns(s.cfg.MaxIdleConns)
	db.SetConnMaxLifetime(s.cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s.db = db
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// HealthCheck verifies the database connection is usable.
func (s *SQLiteStore) HealthCheck(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database not initialized")
	}
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Migrate runs database migrations.
func (s *SQLiteStore) Migrate(_ context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database not initialized")
	}

	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// withTx runs fn in a transaction, committing on success and rolling back
// on any error.
func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SaveNFA stores nfa under name and returns its id.
func (s *SQLiteStore) SaveNFA(ctx context.Context, name string, nfa automaton.NFA) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("nfa name is required")
	}
	if err := automaton.ValidateNFA(nfa); err != nil {
		return 0, fmt.Errorf("failed to save nfa %q: %w", name, err)
	}

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO nfas (name, start_state, created_at) VALUES (?, ?, ?)`,
			name, string(nfa.Start), time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to insert nfa: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("failed to read nfa id: %w", err)
		}

		for _, state := range nfa.States {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO nfa_states (nfa_id, name) VALUES (?, ?)`,
				id, string(state)); err != nil {
				return fmt.Errorf("failed to insert nfa state %q: %w", state, err)
			}
		}
		for _, final := range nfa.Finals {
			if _, err := tx.ExecContext(ctx,
				`UPDATE nfa_states SET is_final = 1 WHERE nfa_id = ? AND name = ?`,
				id, string(final)); err != nil {
				return fmt.Errorf("failed to mark nfa final %q: %w", final, err)
			}
		}
		for i, t := range nfa.Transitions {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO nfa_transitions (nfa_id, position, from_state, symbol, to_state) VALUES (?, ?, ?, ?, ?)`,
				id, i, string(t.From), string(t.Symbol), string(t.To)); err != nil {
				return fmt.Errorf("failed to insert nfa transition: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListNFAs returns every stored NFA ordered by name.
func (s *SQLiteStore) ListNFAs(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at FROM nfas ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list nfas: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan nfa: %w", err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// GetNFA loads the NFA stored under id.
func (s *SQLiteStore) GetNFA(ctx context.Context, id int64) (automaton.NFA, error) {
	var nfa automaton.NFA

	var start string
	err := s.db.QueryRowContext(ctx, `SELECT start_state FROM nfas WHERE id = ?`, id).Scan(&start)
	if errors.Is(err, sql.ErrNoRows) {
		return nfa, fmt.Errorf("nfa %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nfa, fmt.Errorf("failed to get nfa: %w", err)
	}
	nfa.Start = automaton.Name(start)

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, is_final FROM nfa_states WHERE nfa_id = ? ORDER BY name`, id)
	if err != nil {
		return nfa, fmt.Errorf("failed to get nfa states: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			name    string
			isFinal bool
		)
		if err := rows.Scan(&name, &isFinal); err != nil {
			return nfa, fmt.Errorf("failed to scan nfa state: %w", err)
		}
		nfa.States = append(nfa.States, automaton.Name(name))
		if isFinal {
			nfa.Finals = append(nfa.Finals, automaton.Name(name))
		}
	}
	if err := rows.Err(); err != nil {
		return nfa, err
	}

	trows, err := s.db.QueryContext(ctx,
		`SELECT from_state, symbol, to_state FROM nfa_transitions WHERE nfa_id = ? ORDER BY position`, id)
	if err != nil {
		return nfa, fmt.Errorf("failed to get nfa transitions: %w", err)
	}
	defer trows.Close()
	for trows.Next() {
		var from, symbol, to string
		if err := trows.Scan(&from, &symbol, &to); err != nil {
			return nfa, fmt.Errorf("failed to scan nfa transition: %w", err)
		}
		nfa.Transitions = append(nfa.Transitions, automaton.Transition{
			From:   automaton.Name(from),
			Symbol: automaton.Symbol(symbol),
			To:     automaton.Name(to),
		})
	}
	return nfa, trows.Err()
}

// SaveDFA stores dfa under name and returns its id. States are stored by
// their canonical label. sourceNFA links the DFA to the NFA it was
// converted from and may be nil.
func (s *SQLiteStore) SaveDFA(ctx context.Context, name string, dfa automaton.DFA, sourceNFA *int64) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("dfa name is required")
	}
	if err := automaton.ValidateDFA(dfa); err != nil {
		return 0, fmt.Errorf("failed to save dfa %q: %w", name, err)
	}

	finals := make(map[string]bool, len(dfa.Finals))
	for _, f := range dfa.Finals {
		finals[automaton.Label(f)] = true
	}

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO dfas (name, start_state, source_nfa_id, created_at) VALUES (?, ?, ?, ?)`,
			name, automaton.Label(dfa.Start), sourceNFA, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to insert dfa: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("failed to read dfa id: %w", err)
		}

		for _, state := range dfa.States {
			label := automaton.Label(state)
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO dfa_states (dfa_id, label, is_final) VALUES (?, ?, ?)`,
				id, label, finals[label]); err != nil {
				return fmt.Errorf("failed to insert dfa state %s: %w", label, err)
			}
		}
		for _, t := range dfa.Transitions {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO dfa_transitions (dfa_id, from_state, symbol, to_state) VALUES (?, ?, ?, ?)`,
				id, automaton.Label(t.From), string(t.Symbol), automaton.Label(t.To)); err != nil {
				return fmt.Errorf("failed to insert dfa transition: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListDFAs returns every stored DFA ordered by name.
func (s *SQLiteStore) ListDFAs(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, source_nfa_id FROM dfas ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list dfas: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var (
			sum    Summary
			source sql.NullInt64
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.CreatedAt, &source); err != nil {
			return nil, fmt.Errorf("failed to scan dfa: %w", err)
		}
		if source.Valid {
			sum.SourceNFA = &source.Int64
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// GetDFA loads the DFA stored under id. Every state comes back as an
// automaton.Name holding the stored label; labels are never parsed back
// into sets.
func (s *SQLiteStore) GetDFA(ctx context.Context, id int64) (automaton.DFA, error) {
	var dfa automaton.DFA

	var start string
	err := s.db.QueryRowContext(ctx, `SELECT start_state FROM dfas WHERE id = ?`, id).Scan(&start)
	if errors.Is(err, sql.ErrNoRows) {
		return dfa, fmt.Errorf("dfa %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return dfa, fmt.Errorf("failed to get dfa: %w", err)
	}
	dfa.Start = automaton.Name(start)

	rows, err := s.db.QueryContext(ctx,
		`SELECT label, is_final FROM dfa_states WHERE dfa_id = ? ORDER BY label`, id)
	if err != nil {
		return dfa, fmt.Errorf("failed to get dfa states: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			label   string
			isFinal bool
		)
		if err := rows.Scan(&label, &isFinal); err != nil {
			return dfa, fmt.Errorf("failed to scan dfa state: %w", err)
		}
		dfa.States = append(dfa.States, automaton.Name(label))
		if isFinal {
			dfa.Finals = append(dfa.Finals, automaton.Name(label))
		}
	}
	if err := rows.Err(); err != nil {
		return dfa, err
	}

	trows, err := s.db.QueryContext(ctx,
		`SELECT from_state, symbol, to_state FROM dfa_transitions WHERE dfa_id = ? ORDER BY from_state, symbol`, id)
	if err != nil {
		return dfa, fmt.Errorf("failed to get dfa transitions: %w", err)
	}
	defer trows.Close()
	for trows.Next() {
		var from, symbol, to string
		if err := trows.Scan(&from, &symbol, &to); err != nil {
			return dfa, fmt.Errorf("failed to scan dfa transition: %w", err)
		}
		dfa.Transitions = append(dfa.Transitions, automaton.DFATransition{
			From:   automaton.Name(from),
			Symbol: automaton.Symbol(symbol),
			To:     automaton.Name(to),
		})
	}
	return dfa, trows.Err()
}
