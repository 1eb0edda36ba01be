// Package eventcfg persists the singleton event configuration: the
// activity name, venue, and date shown on the sign-in form. The value is
// overwritten wholesale on every save; there is no history.
package eventcfg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"signsheet/internal/store"
)

// Config is the event metadata edited on the setup view.
type Config struct {
	ActivityName string `json:"activityName"`
	Venue        string `json:"venue"`
	EventDate    string `json:"eventDate"` // ISO calendar date, e.g. 2026-08-25
}

// Store reads and writes the single event_config row.
type Store struct {
	db *store.DB
}

// NewStore creates a store over an opened DB.
func NewStore(db *store.DB) *Store {
	return &Store{db: db}
}

// Load returns the saved configuration, or defaults (today's date, empty
// text fields) when nothing has been saved yet.
func (s *Store) Load(ctx context.Context) (Config, error) {
	var cfg Config
	err := s.db.Client.QueryRowContext(ctx,
		`SELECT activity_name, venue, event_date FROM event_config WHERE id = 1`,
	).Scan(&cfg.ActivityName, &cfg.Venue, &cfg.EventDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Config{EventDate: time.Now().Format("2006-01-02")}, nil
		}
		return Config{}, fmt.Errorf("%w: load event config: %v", store.ErrReadFailed, err)
	}
	return cfg, nil
}

// Save overwrites the configuration wholesale.
func (s *Store) Save(ctx context.Context, cfg Config) error {
	_, err := s.db.Client.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO event_config (id, activity_name, venue, event_date, updated_at_ms)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			activity_name = excluded.activity_name,
			venue         = excluded.venue,
			event_date    = excluded.event_date,
			updated_at_ms = excluded.updated_at_ms
	`), cfg.ActivityName, cfg.Venue, cfg.EventDate, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("%w: save event config: %v", store.ErrWriteFailed, err)
	}
	return nil
}
