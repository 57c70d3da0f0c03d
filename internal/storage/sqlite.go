// Package storage provides the SQLite episode journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The journal is write-mostly history for inspection and training analysis.
// Nothing read from it feeds back into a running simulation.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/pilot"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/sim"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// EpisodeEntry is a journaled episode.
type EpisodeEntry struct {
	ID int64
	sim.Episode
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS episodes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pilot TEXT NOT NULL,
			tile_count INTEGER NOT NULL,
			walls INTEGER NOT NULL DEFAULT 0,
			fixed_tail INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL,
			fruits INTEGER NOT NULL,
			reward REAL NOT NULL,
			cause TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_episodes_pilot ON episodes(pilot);
		CREATE INDEX IF NOT EXISTS idx_episodes_recent ON episodes(pilot, id DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveEpisode journals a finished episode and returns its row ID.
// Episodes without a pilot are stored as "keyboard".
func (s *Store) SaveEpisode(ep sim.Episode) (int64, error) {
	pilot := ep.Pilot
	if pilot == "" {
		pilot = "keyboard"
	}

	result, err := s.db.Exec(
		`INSERT INTO episodes
		 (pilot, tile_count, walls, fixed_tail, ticks, fruits, reward, cause, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		pilot, ep.TileCount, ep.Walls, ep.FixedTail, ep.Ticks, ep.Fruits, ep.Reward, ep.Cause,
		ep.StartedAt.UnixMilli(), ep.EndedAt.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save episode: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordEpisode implements session.Recorder and pilot.Recorder.
func (s *Store) RecordEpisode(ep sim.Episode) error {
	_, err := s.SaveEpisode(ep)
	return err
}

// Ensure Store can journal both live sessions and training runs
var (
	_ session.Recorder = (*Store)(nil)
	_ pilot.Recorder   = (*Store)(nil)
)

const episodeColumns = `id, pilot, tile_count, walls, fixed_tail, ticks, fruits, reward, cause,
		        started_at, ended_at, created_at`

// RecentEpisodes returns the newest episodes across all pilots.
func (s *Store) RecentEpisodes(limit int) ([]EpisodeEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+episodeColumns+`
		 FROM episodes
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	return scanEpisodes(rows)
}

// EpisodesByPilot returns the newest episodes of one pilot.
func (s *Store) EpisodesByPilot(pilot string, limit int) ([]EpisodeEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+episodeColumns+`
		 FROM episodes
		 WHERE pilot = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		pilot, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	return scanEpisodes(rows)
}

func scanEpisodes(rows *sql.Rows) ([]EpisodeEntry, error) {
	defer rows.Close()

	var entries []EpisodeEntry
	for rows.Next() {
		var (
			e              EpisodeEntry
			started, ended int64
			createdAt      any
		)
		if err := rows.Scan(
			&e.ID, &e.Pilot, &e.TileCount, &e.Walls, &e.FixedTail, &e.Ticks, &e.Fruits,
			&e.Reward, &e.Cause, &started, &ended, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.StartedAt = time.UnixMilli(started)
		e.EndedAt = time.UnixMilli(ended)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// EpisodeStats contains aggregated statistics for one pilot.
type EpisodeStats struct {
	Pilot       string
	Episodes    int
	BestFruits  int
	AvgFruits   float64
	AvgTicks    float64
	AvgReward   float64
	TotalFruits int64
	LastPlayed  time.Time
}

// Stats aggregates the journal for pilot.
func (s *Store) Stats(pilot string) (*EpisodeStats, error) {
	stats := &EpisodeStats{Pilot: pilot}

	var lastEnded sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(fruits), 0), COALESCE(AVG(fruits), 0),
		        COALESCE(AVG(ticks), 0), COALESCE(AVG(reward), 0), COALESCE(SUM(fruits), 0),
		        MAX(ended_at)
		 FROM episodes WHERE pilot = ?`,
		pilot,
	).Scan(&stats.Episodes, &stats.BestFruits, &stats.AvgFruits, &stats.AvgTicks,
		&stats.AvgReward, &stats.TotalFruits, &lastEnded)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get episode stats: %w", err)
	}
	if lastEnded.Valid {
		stats.LastPlayed = time.UnixMilli(lastEnded.Int64)
	}

	return stats, nil
}

// Pilots returns the distinct pilots present in the journal.
func (s *Store) Pilots() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT pilot FROM episodes ORDER BY pilot`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query pilots: %w", err)
	}
	defer rows.Close()

	var pilots []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		pilots = append(pilots, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return pilots, nil
}

// ClearEpisodes deletes the episodes of pilot, or every episode when pilot is empty.
func (s *Store) ClearEpisodes(pilot string) error {
	var err error
	if pilot == "" {
		_, err = s.db.Exec("DELETE FROM episodes")
	} else {
		_, err = s.db.Exec("DELETE FROM episodes WHERE pilot = ?", pilot)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear episodes: %w", err)
	}
	return nil
}
