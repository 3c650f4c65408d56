package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Keys written by the server at startup.
const (
	StateServerVersion   = "server.version"
	StateServerStarted   = "server.started_utc"
	StateCatalogProjects = "catalog.projects"
)

func (s *Store) SetAppState(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO app_state (key, value, updated_utc)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_utc=excluded.updated_utc
	`, key, value, formatTime(s.now())); err != nil {
		return fmt.Errorf("set app state %q: %w", key, err)
	}
	return nil
}

func (s *Store) GetAppState(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get app state %q: %w", key, err)
	}
	return value, true, nil
}

// RecordStartup stores the values reported by the server info endpoint.
func (s *Store) RecordStartup(ctx context.Context, version string, projects int) error {
	values := map[string]string{
		StateServerVersion:   version,
		StateServerStarted:   formatTime(s.now()),
		StateCatalogProjects: fmt.Sprint(projects),
	}
	for k, v := range values {
		if err := s.SetAppState(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}
