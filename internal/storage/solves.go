package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/twisty"
)

// Solve represents a recorded solve in the database.
type Solve struct {
	SolveID      string
	Order        int
	RecordedAt   time.Time
	DurationMs   int64
	ScrambleText *string
	MoveCount    int
	Facelets     string
	StateHash    string
	Notes        *string
}

// Duration returns the solve time.
func (s Solve) Duration() time.Duration {
	return time.Duration(s.DurationMs) * time.Millisecond
}

// NewSolve is a finished solve to be recorded.
type NewSolve struct {
	Order    int
	Duration time.Duration
	Scramble []twisty.Move
	History  []twisty.Move
	Facelets string
	Notes    string
}

// SolveRepository provides CRUD operations for solves.
type SolveRepository struct {
	db *DB
}

// NewSolveRepository creates a new solve repository.
func NewSolveRepository(db *DB) *SolveRepository {
	return &SolveRepository{db: db}
}

// Create stores a solve and its moves and returns the solve ID.
func (r *SolveRepository) Create(in NewSolve) (string, error) {
	id := uuid.New().String()
	recordedAt := time.Now().UTC()

	blob, err := EncodeHistory(in.History)
	if err != nil {
		return "", err
	}

	var scramblePtr, notesPtr *string
	if len(in.Scramble) > 0 {
		s := twisty.FormatMoves(in.Scramble)
		scramblePtr = &s
	}
	if in.Notes != "" {
		notesPtr = &in.Notes
	}

	moveCount := 0
	for _, m := range in.History {
		if !m.IsSavepoint() {
			moveCount++
		}
	}

	err = r.db.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO solves (solve_id, puzzle_order, recorded_at, duration_ms, scramble_text, move_count, facelets, state_hash, history_zstd, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, in.Order, recordedAt.Format(time.RFC3339Nano), in.Duration.Milliseconds(),
			scramblePtr, moveCount, in.Facelets, StateHash(in.Facelets), blob, notesPtr)
		if err != nil {
			return fmt.Errorf("failed to create solve: %w", err)
		}
		return insertMoves(tx, id, in.Order, in.History)
	})
	if err != nil {
		return "", err
	}

	return id, nil
}

const solveColumns = `solve_id, puzzle_order, recorded_at, duration_ms, scramble_text, move_count, facelets, state_hash, notes`

func scanSolve(scan func(dest ...any) error) (Solve, error) {
	var s Solve
	var recordedAtStr string
	err := scan(
		&s.SolveID, &s.Order, &recordedAtStr, &s.DurationMs,
		&s.ScrambleText, &s.MoveCount, &s.Facelets, &s.StateHash, &s.Notes,
	)
	if err != nil {
		return s, err
	}
	s.RecordedAt, _ = time.Parse(time.RFC3339Nano, recordedAtStr)
	return s, nil
}

// Get retrieves a solve by ID. It returns nil if there is none.
func (r *SolveRepository) Get(solveID string) (*Solve, error) {
	row := r.db.QueryRow(`SELECT `+solveColumns+` FROM solves WHERE solve_id = ?`, solveID)
	s, err := scanSolve(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solve: %w", err)
	}
	return &s, nil
}

// List retrieves recent solves, newest first. An order of 0 lists every
// puzzle size.
func (r *SolveRepository) List(order, limit int) ([]Solve, error) {
	rows, err := r.db.Query(`
		SELECT `+solveColumns+`
		FROM solves
		WHERE ? = 0 OR puzzle_order = ?
		ORDER BY recorded_at DESC
		LIMIT ?
	`, order, order, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list solves: %w", err)
	}
	defer rows.Close()

	var solves []Solve
	for rows.Next() {
		s, err := scanSolve(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan solve: %w", err)
		}
		solves = append(solves, s)
	}
	return solves, rows.Err()
}

// Best retrieves the fastest solve of an order. It returns nil if there is
// none.
func (r *SolveRepository) Best(order int) (*Solve, error) {
	row := r.db.QueryRow(`
		SELECT `+solveColumns+`
		FROM solves
		WHERE puzzle_order = ?
		ORDER BY duration_ms ASC
		LIMIT 1
	`, order)
	s, err := scanSolve(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get best solve: %w", err)
	}
	return &s, nil
}

// History returns the full recorded history of a solve, savepoints
// included.
func (r *SolveRepository) History(solveID string) ([]twisty.Move, error) {
	var blob []byte
	err := r.db.QueryRow("SELECT history_zstd FROM solves WHERE solve_id = ?", solveID).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("solve not found: %s", solveID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	return DecodeHistory(blob)
}

// CountByState returns how many solves ended in the same state as facelets.
func (r *SolveRepository) CountByState(facelets string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM solves WHERE state_hash = ?", StateHash(facelets)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count solves: %w", err)
	}
	return count, nil
}

// Delete deletes a solve and its moves.
func (r *SolveRepository) Delete(solveID string) error {
	_, err := r.db.Exec("DELETE FROM solves WHERE solve_id = ?", solveID)
	if err != nil {
		return fmt.Errorf("failed to delete solve: %w", err)
	}
	return nil
}
