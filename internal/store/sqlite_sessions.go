package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bamreyes/Project-Green/internal/solver"
)

var ErrSessionNotFound = errors.New("session not found")

type Feasibility string

const (
	FeasibilityUnknown Feasibility = ""
	Feasible           Feasibility = "feasible"
	Infeasible         Feasibility = "infeasible"
)

// Session is what the server remembers per browser between page loads.
type Session struct {
	ID               string
	SidebarCollapsed bool
	SelectedProjects []string
	Feasibility      Feasibility
	// Result is set only for a feasible solve.
	Result *solver.Result
	// Iterations of the last solve, feasible or not.
	Iterations []solver.Iteration
	Error      string
	CreatedUTC time.Time
	UpdatedUTC time.Time
}

// SolveOutcome is the result of one POST /solver, as stored.
type SolveOutcome struct {
	Selected   []string
	Result     *solver.Result
	Iterations []solver.Iteration
	Error      string
}

func (s *Store) CreateSession(ctx context.Context) (Session, error) {
	now := s.now()
	sess := Session{
		ID:         uuid.NewString(),
		CreatedUTC: now,
		UpdatedUTC: now,
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, created_utc, updated_utc)
		VALUES (?, ?, ?)
	`, sess.ID, formatTime(now), formatTime(now)); err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

func (s *Store) GetSession(ctx context.Context, id string) (Session, error) {
	var (
		sess           Session
		collapsed      int
		selectedJSON   string
		feasibility    string
		resultJSON     sql.NullString
		iterationsJSON string
		createdUTC     string
		updatedUTC     string
	)
	row := s.db.QueryRowContext(ctx, `
		SELECT id, sidebar_collapsed, selected_json, feasibility, result_json, iterations_json, error_text, created_utc, updated_utc
		FROM sessions WHERE id = ?
	`, id)
	if err := row.Scan(&sess.ID, &collapsed, &selectedJSON, &feasibility, &resultJSON, &iterationsJSON, &sess.Error, &createdUTC, &updatedUTC); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrSessionNotFound
		}
		return Session{}, fmt.Errorf("get session: %w", err)
	}
	sess.SidebarCollapsed = collapsed != 0
	sess.Feasibility = Feasibility(feasibility)
	sess.CreatedUTC = parseTime(createdUTC)
	sess.UpdatedUTC = parseTime(updatedUTC)

	if err := json.Unmarshal([]byte(selectedJSON), &sess.SelectedProjects); err != nil {
		return Session{}, fmt.Errorf("decode selected projects: %w", err)
	}
	if err := json.Unmarshal([]byte(iterationsJSON), &sess.Iterations); err != nil {
		return Session{}, fmt.Errorf("decode iterations: %w", err)
	}
	if resultJSON.Valid && resultJSON.String != "" {
		var res solver.Result
		if err := json.Unmarshal([]byte(resultJSON.String), &res); err != nil {
			return Session{}, fmt.Errorf("decode result: %w", err)
		}
		sess.Result = &res
	}
	return sess, nil
}

// TouchSession marks the session as used at t so the janitor keeps it.
func (s *Store) TouchSession(ctx context.Context, id string, t time.Time) error {
	res, err := s.db.ExecContext(ctx, `UPDATE sessions SET updated_utc = ? WHERE id = ?`, formatTime(t), id)
	if err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	return requireOneRow(res)
}

// SaveSolve records the outcome of a solve. A nil Result marks the session
// infeasible and clears any earlier result.
func (s *Store) SaveSolve(ctx context.Context, id string, out SolveOutcome) error {
	selected := out.Selected
	if selected == nil {
		selected = []string{}
	}
	selectedJSON, err := json.Marshal(selected)
	if err != nil {
		return fmt.Errorf("encode selected projects: %w", err)
	}
	iterations := out.Iterations
	if iterations == nil {
		iterations = []solver.Iteration{}
	}
	iterationsJSON, err := json.Marshal(iterations)
	if err != nil {
		return fmt.Errorf("encode iterations: %w", err)
	}

	feasibility := Infeasible
	var resultJSON sql.NullString
	if out.Result != nil {
		feasibility = Feasible
		data, err := json.Marshal(out.Result)
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		resultJSON = sql.NullString{String: string(data), Valid: true}
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE sessions
		SET selected_json = ?, feasibility = ?, result_json = ?, iterations_json = ?, error_text = ?, updated_utc = ?
		WHERE id = ?
	`, string(selectedJSON), string(feasibility), resultJSON, string(iterationsJSON), out.Error, formatTime(s.now()), id)
	if err != nil {
		return fmt.Errorf("save solve: %w", err)
	}
	return requireOneRow(res)
}

// ToggleSidebar flips the collapse flag and returns the new value.
func (s *Store) ToggleSidebar(ctx context.Context, id string) (bool, error) {
	var collapsed int
	row := s.db.QueryRowContext(ctx, `
		UPDATE sessions
		SET sidebar_collapsed = 1 - sidebar_collapsed, updated_utc = ?
		WHERE id = ?
		RETURNING sidebar_collapsed
	`, formatTime(s.now()), id)
	if err := row.Scan(&collapsed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrSessionNotFound
		}
		return false, fmt.Errorf("toggle sidebar: %w", err)
	}
	return collapsed != 0, nil
}

// PruneSessions deletes sessions not updated since before.
func (s *Store) PruneSessions(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE updated_utc < ?`, formatTime(before))
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	return n, nil
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
