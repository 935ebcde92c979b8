// Package store keeps a history of column analysis runs in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/alexiusacademia/gorcc/internal/column"
)

// Run kinds
const (
	KindCurve = "curve"
	KindCheck = "check"
	KindAxial = "axial"
)

// ErrNotFound is returned by Get for an unknown run id.
var ErrNotFound = errors.New("run not found")

// Run is one stored analysis.
type Run struct {
	ID        string    `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	Kind      string    `db:"kind" json:"kind"`
	Name      string    `db:"name" json:"name"`
	Shape     string    `db:"shape" json:"shape"`
	Axis      string    `db:"axis" json:"axis"`
	Units     string    `db:"units" json:"units"`

	AxialCap    float64 `db:"axial_cap" json:"axial_cap"`
	PhiMnMax    float64 `db:"phi_mn_max" json:"phi_mn_max"`
	Utilization float64 `db:"utilization" json:"utilization"` // governing, percent
	Pass        bool    `db:"pass" json:"pass"`

	Input string `db:"input_json" json:"input"` // column definition as JSON
}

// Store wraps a SQLite connection.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	slog.Debug("run store opened", "path", path)
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TIMESTAMP NOT NULL,
		kind TEXT NOT NULL,
		name TEXT NOT NULL,
		shape TEXT NOT NULL,
		axis TEXT NOT NULL,
		units TEXT NOT NULL,
		axial_cap REAL NOT NULL,
		phi_mn_max REAL NOT NULL,
		utilization REAL NOT NULL,
		pass INTEGER NOT NULL,
		input_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// NewRun summarises an analysis for storage. sum may be nil for a curve
// without demands.
func NewRun(kind string, col *column.Column, curve *column.Curve, sum *column.CheckSummary) (*Run, error) {
	input, err := json.Marshal(col)
	if err != nil {
		return nil, fmt.Errorf("encode column: %w", err)
	}

	run := &Run{
		Kind:  kind,
		Name:  col.Name,
		Shape: col.Shape.String(),
		Axis:  column.Major.String(),
		Units: col.Units.String(),
		Pass:  true,
		Input: string(input),
	}
	if curve != nil {
		run.Axis = curve.Axis.String()
		run.AxialCap = curve.AxialCap
		run.PhiMnMax = math.Abs(curve.Balanced().PhiMn)
	}
	if sum != nil && sum.Governing >= 0 {
		run.Utilization = sum.Checks[sum.Governing].Utilization
		run.Pass = sum.Pass
	}
	return run, nil
}

// Save inserts a run, assigning its id and timestamp when unset.
func (s *Store) Save(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.conn.NamedExecContext(ctx, `
		INSERT INTO runs (id, created_at, kind, name, shape, axis, units,
			axial_cap, phi_mn_max, utilization, pass, input_json)
		VALUES (:id, :created_at, :kind, :name, :shape, :axis, :units,
			:axial_cap, :phi_mn_max, :utilization, :pass, :input_json)`, run)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	slog.Debug("run saved", "id", run.ID, "kind", run.Kind, "name", run.Name)
	return nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []Run
	err := s.conn.SelectContext(ctx, &runs,
		"SELECT * FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Get returns the run with the given id.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := s.conn.GetContext(ctx, &run, "SELECT * FROM runs WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return &run, nil
}
