// Package store keeps a local library of scenario suites in SQLite so
// suites can be imported once and analyzed repeatedly by name.
// Analysis results are never persisted; the store holds input fixtures only.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/opdetect/opqa/internal/errors"
	"github.com/opdetect/opqa/internal/scenario"
)

// Store is a SQLite-backed suite library.
type Store struct {
	db     *sqlx.DB
	logger *logrus.Logger
}

// SuiteInfo summarizes one stored suite.
type SuiteInfo struct {
	Name          string    `db:"name"`
	Description   string    `db:"description"`
	ScenarioCount int       `db:"scenario_count"`
	StoredAt      time.Time `db:"stored_at"`
}

// Open opens (or creates) the suite library at path.
func Open(path string, logger *logrus.Logger) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.FileSystem(err, "create store directory")
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, errors.Storage(err, "connect to sqlite")
	}

	db.Exec("PRAGMA foreign_keys = ON")
	db.Exec("PRAGMA journal_mode = WAL")

	s := &Store{
		db:     db,
		logger: logger,
	}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, errors.Storage(err, "init schema")
	}

	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS suites (
		name TEXT PRIMARY KEY,
		description TEXT,
		scenario_count INTEGER NOT NULL,
		scenarios TEXT NOT NULL,
		stored_at DATETIME NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveSuite inserts or replaces a suite by name.
func (s *Store) SaveSuite(ctx context.Context, suite *scenario.Suite) error {
	if err := suite.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(suite.Scenarios)
	if err != nil {
		return errors.Storage(err, "encode scenarios")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO suites (name, description, scenario_count, scenarios, stored_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			description = excluded.description,
			scenario_count = excluded.scenario_count,
			scenarios = excluded.scenarios,
			stored_at = excluded.stored_at
	`, suite.Name, suite.Description, len(suite.Scenarios), payload, time.Now().UTC())
	if err != nil {
		return errors.Storage(err, fmt.Sprintf("save suite %q", suite.Name))
	}

	s.logger.WithFields(logrus.Fields{
		"suite":     suite.Name,
		"scenarios": len(suite.Scenarios),
	}).Debug("suite saved")

	return nil
}

// GetSuite loads a stored suite by name.
func (s *Store) GetSuite(ctx context.Context, name string) (*scenario.Suite, error) {
	var row struct {
		Name        string `db:"name"`
		Description string `db:"description"`
		Scenarios   []byte `db:"scenarios"`
	}

	err := s.db.GetContext(ctx, &row,
		"SELECT name, description, scenarios FROM suites WHERE name = ?", name)
	if err == sql.ErrNoRows {
		return nil, errors.Newf(errors.ErrorTypeStorage, "suite %q not found", name)
	}
	if err != nil {
		return nil, errors.Storage(err, fmt.Sprintf("load suite %q", name))
	}

	suite := &scenario.Suite{
		Name:        row.Name,
		Description: row.Description,
	}
	if err := json.Unmarshal(row.Scenarios, &suite.Scenarios); err != nil {
		return nil, errors.Storage(err, fmt.Sprintf("decode suite %q", name))
	}

	return suite, nil
}

// ListSuites returns summaries of all stored suites, newest first.
func (s *Store) ListSuites(ctx context.Context) ([]SuiteInfo, error) {
	var infos []SuiteInfo
	err := s.db.SelectContext(ctx, &infos, `
		SELECT name, description, scenario_count, stored_at
		FROM suites
		ORDER BY stored_at DESC, name
	`)
	if err != nil {
		return nil, errors.Storage(err, "list suites")
	}
	return infos, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
