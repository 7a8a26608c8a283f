// Package store keeps the site's phrase list and animation timings in
// sqlite so admin edits survive restarts.
package store

import (
	"context"
	"database/sql"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/Zachkp/portfolio/internal/typeanim"
)

const schema = `
CREATE TABLE IF NOT EXISTS phrases (
	position INTEGER PRIMARY KEY,
	text     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// Setting keys for the animation timings, stored as decimal milliseconds
// so fractions such as 12.5 survive a restart.
const (
	keyTypingSpeed     = "typing_speed_ms"
	keyEraseSpeed      = "erase_speed_ms"
	keyWaitBeforeErase = "wait_before_erase_ms"
	keyWaitBeforeNext  = "wait_before_next_ms"
)

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path. ":memory:" gives
// a private in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	// sqlite serializes writers anyway, and an in-memory database exists
	// per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create schema")
	}
	log.Printf("store: using %s", path)
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Phrases returns the saved phrase list in order. An empty result means
// nothing has been saved yet.
func (s *Store) Phrases(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT text FROM phrases ORDER BY position`)
	if err != nil {
		return nil, errors.Wrap(err, "query phrases")
	}
	defer rows.Close()

	var phrases []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, errors.Wrap(err, "scan phrase")
		}
		phrases = append(phrases, p)
	}
	return phrases, rows.Err()
}

// ReplacePhrases swaps the saved list for phrases in one transaction.
func (s *Store) ReplacePhrases(ctx context.Context, phrases []string) error {
	if len(phrases) == 0 {
		return errors.Wrap(typeanim.ErrInvalidPhraseInput, "the phrase list cannot be empty")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM phrases`); err != nil {
		return errors.Wrap(err, "clear phrases")
	}
	for i, p := range phrases {
		if _, err := tx.ExecContext(ctx, `INSERT INTO phrases (position, text) VALUES (?, ?)`, i, p); err != nil {
			return errors.Wrapf(err, "insert phrase %d", i)
		}
	}
	return errors.Wrap(tx.Commit(), "commit phrases")
}

// Timings returns the saved timings, filling unsaved ones from fallback.
func (s *Store) Timings(ctx context.Context, fallback typeanim.Timings) (typeanim.Timings, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return fallback, errors.Wrap(err, "query settings")
	}
	defer rows.Close()

	t := fallback
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return fallback, errors.Wrap(err, "scan setting")
		}
		ms, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(ms) || math.IsInf(ms, 0) {
			log.Printf("store: ignoring bad setting %s=%q", key, value)
			continue
		}
		d := time.Duration(math.Round(ms * float64(time.Millisecond)))
		if d < typeanim.MinTiming {
			log.Printf("store: ignoring bad setting %s=%q", key, value)
			continue
		}
		switch key {
		case keyTypingSpeed:
			t.TypingSpeed = d
		case keyEraseSpeed:
			t.EraseSpeed = d
		case keyWaitBeforeErase:
			t.WaitBeforeErase = d
		case keyWaitBeforeNext:
			t.WaitBeforeNext = d
		}
	}
	return t, rows.Err()
}

// SaveTimings stores all four timings.
func (s *Store) SaveTimings(ctx context.Context, t typeanim.Timings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer tx.Rollback()

	for key, d := range map[string]time.Duration{
		keyTypingSpeed:     t.TypingSpeed,
		keyEraseSpeed:      t.EraseSpeed,
		keyWaitBeforeErase: t.WaitBeforeErase,
		keyWaitBeforeNext:  t.WaitBeforeNext,
	} {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO settings (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, formatMillis(d))
		if err != nil {
			return errors.Wrapf(err, "save %s", key)
		}
	}
	return errors.Wrap(tx.Commit(), "commit settings")
}

func formatMillis(d time.Duration) string {
	return strconv.FormatFloat(float64(d)/float64(time.Millisecond), 'f', -1, 64)
}
