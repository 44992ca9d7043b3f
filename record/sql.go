package record

import (
	"database/sql"
	"fmt"

	// Drivers selectable by name in run files.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/sarchlab/sweptrule/grid"
	"github.com/sarchlab/sweptrule/state"
	"gopkg.in/yaml.v3"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id VARCHAR(20) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		config TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS samples (
		run_id VARCHAR(20) NOT NULL,
		step INTEGER NOT NULL,
		variable INTEGER NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		value DOUBLE PRECISION NOT NULL
	)`,
}

// SQL writes every recorded step into a database. Each step is written in
// one transaction.
type SQL struct {
	db    *sql.DB
	runID string
}

// OpenSQL opens a database with the given driver ("sqlite3" or "mysql"),
// creates the tables if needed and registers a new run.
func OpenSQL(driver, dsn, name string, cfg grid.Config) (*SQL, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}

	r, err := NewSQL(db, name, cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	return r, nil
}

// NewSQL registers a new run on an open database.
func NewSQL(db *sql.DB, name string, cfg grid.Config) (*SQL, error) {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("creating tables: %w", err)
		}
	}

	desc, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	r := &SQL{db: db, runID: xid.New().String()}

	_, err = db.Exec(`INSERT INTO runs (id, name, config) VALUES (?, ?, ?)`,
		r.runID, name, string(desc))
	if err != nil {
		return nil, fmt.Errorf("registering run: %w", err)
	}

	return r, nil
}

// RunID returns the id of the run being recorded.
func (r *SQL) RunID() string {
	return r.runID
}

// Record inserts every cell of the field.
func (r *SQL) Record(step int, f state.Field) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO samples
		(run_id, step, variable, x, y, value) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for v := 0; v < f.NumVars; v++ {
		for x := 0; x < f.W; x++ {
			for y := 0; y < f.H; y++ {
				_, err := stmt.Exec(r.runID, step, v, x, y, float64(f.At(x, y, v)))
				if err != nil {
					tx.Rollback()
					return err
				}
			}
		}
	}

	return tx.Commit()
}

// Load reads a recorded step back.
func (r *SQL) Load(step, numVars, w, h int) (state.Field, error) {
	f := state.NewField(w, h, numVars)

	rows, err := r.db.Query(`SELECT variable, x, y, value FROM samples
		WHERE run_id = ? AND step = ?`, r.runID, step)
	if err != nil {
		return f, err
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var (
			v, x, y int
			value   float64
		)

		if err := rows.Scan(&v, &x, &y, &value); err != nil {
			return f, err
		}

		if v >= numVars || x >= w || y >= h {
			return f, fmt.Errorf("sample (%d, %d) var %d outside %dx%dx%d",
				x, y, v, w, h, numVars)
		}

		f.Set(x, y, v, float32(value))
		n++
	}

	if err := rows.Err(); err != nil {
		return f, err
	}

	if n == 0 {
		return f, fmt.Errorf("run %s has no step %d", r.runID, step)
	}

	return f, nil
}

// Steps lists the recorded steps of the run.
func (r *SQL) Steps() ([]int, error) {
	rows, err := r.db.Query(`SELECT DISTINCT step FROM samples
		WHERE run_id = ? ORDER BY step`, r.runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []int
	for rows.Next() {
		var s int
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}

	return steps, rows.Err()
}

// Close closes the database.
func (r *SQL) Close() error {
	return r.db.Close()
}
