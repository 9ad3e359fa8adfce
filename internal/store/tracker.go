package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Tracker is an external tracker command that has been used before.
type Tracker struct {
	ID         string
	Command    []string
	LastUsedAt time.Time
}

// TrackerRepository records tracker commands.
type TrackerRepository struct {
	db *sql.DB
}

// Trackers returns the tracker repository for this store.
func (s *Store) Trackers() *TrackerRepository {
	return &TrackerRepository{db: s.db}
}

// Record stores command as the most recently used tracker.
// An identical command already on record is refreshed instead of duplicated.
func (r *TrackerRepository) Record(command []string) (*Tracker, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("empty tracker command")
	}

	encoded, err := json.Marshal(command)
	if err != nil {
		return nil, err
	}

	t := &Tracker{
		Command:    command,
		LastUsedAt: time.Now(),
	}

	err = r.db.QueryRow(`SELECT id FROM trackers WHERE command = ?`, string(encoded)).Scan(&t.ID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		t.ID = uuid.New().String()
		_, err = r.db.Exec(
			`INSERT INTO trackers (id, command, last_used_at) VALUES (?, ?, ?)`,
			t.ID, string(encoded), t.LastUsedAt,
		)
	case err == nil:
		_, err = r.db.Exec(`UPDATE trackers SET last_used_at = ? WHERE id = ?`, t.LastUsedAt, t.ID)
	}
	if err != nil {
		return nil, err
	}

	return t, nil
}

// Last returns the most recently used tracker.
// Returns ErrNotFound if none has been recorded.
func (r *TrackerRepository) Last() (*Tracker, error) {
	t := &Tracker{}
	var command string

	err := r.db.QueryRow(
		`SELECT id, command, last_used_at FROM trackers ORDER BY last_used_at DESC LIMIT 1`,
	).Scan(&t.ID, &command, &t.LastUsedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(command), &t.Command); err != nil {
		return nil, fmt.Errorf("decode tracker %s: %w", t.ID, err)
	}

	return t, nil
}
