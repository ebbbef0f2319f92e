// Package history persists completed samples so the dashboard can query
// readings from before the current browser session.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/CarlosHenriqueSL/WebDisplay/internal/station"
)

//go:embed sql/insert-reading.sql
var insertReadingSQL string

//go:embed sql/get-recent-readings.sql
var getRecentReadingsSQL string

// Entry is one stored sample: the calibrated reading plus when it was taken.
type Entry struct {
	TS time.Time `json:"ts"`
	station.Reading
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ts time.Time, reading station.Reading) error {
	tsStr := ts.UTC().Format(time.RFC3339Nano)
	_, err := r.db.Exec(insertReadingSQL,
		tsStr, reading.Temperatura, reading.Umidade, reading.Pressao, reading.Altitude)
	if err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}
	return nil
}

// Recent returns the newest limit entries, most recent first. Order follows
// the autoincrement id rather than ts: RFC3339Nano trims trailing zeros, so
// a lexical sort on ts could invert rows within the same second.
func (r *Repository) Recent(limit int) ([]Entry, error) {
	rows, err := r.db.Query(getRecentReadingsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close readings rows", "error", err)
		}
	}()

	var out []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&ts, &e.Temperatura, &e.Umidade, &e.Pressao, &e.Altitude); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", ts, err)
		}
		e.TS = t
		out = append(out, e)
	}
	return out, rows.Err()
}
