package storage

import (
	"database/sql"
	"fmt"

	"github.com/SeamusWaldron/twisty"
)

// MoveRecord represents an applied move in the database.
type MoveRecord struct {
	MoveID    int64
	SolveID   string
	MoveIndex int
	Notation  string
	Axis      string
	LayerLow  int
	LayerHigh int
	Amount    int
}

// insertMoves stores the rotations of history, skipping savepoints.
func insertMoves(tx *sql.Tx, solveID string, order int, history []twisty.Move) error {
	v, err := twisty.VocabularyFor(order, nil)
	if err != nil {
		return fmt.Errorf("failed to load moves for order %d: %w", order, err)
	}

	index := 0
	for _, m := range history {
		if m.IsSavepoint() {
			continue
		}
		d, err := v.Resolve(m)
		if err != nil {
			return fmt.Errorf("failed to resolve move %d: %w", index, err)
		}
		_, err = tx.Exec(`
			INSERT INTO moves (solve_id, move_index, notation, axis, layer_low, layer_high, amount)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, solveID, index, m.String(), d.Axis.String(), d.Low, d.High, d.Amount())
		if err != nil {
			return fmt.Errorf("failed to create move %d: %w", index, err)
		}
		index++
	}
	return nil
}

// MoveRepository provides read access to recorded moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

// GetBySolve retrieves all moves for a solve in order.
func (r *MoveRepository) GetBySolve(solveID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, solve_id, move_index, notation, axis, layer_low, layer_high, amount
		FROM moves
		WHERE solve_id = ?
		ORDER BY move_index
	`, solveID)
	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		err := rows.Scan(&m.MoveID, &m.SolveID, &m.MoveIndex, &m.Notation, &m.Axis, &m.LayerLow, &m.LayerHigh, &m.Amount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

// AxisCounts returns how many moves of a solve turned each axis.
func (r *MoveRepository) AxisCounts(solveID string) (map[string]int, error) {
	rows, err := r.db.Query(`
		SELECT axis, COUNT(*) FROM moves WHERE solve_id = ? GROUP BY axis
	`, solveID)
	if err != nil {
		return nil, fmt.Errorf("failed to count moves: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var axis string
		var n int
		if err := rows.Scan(&axis, &n); err != nil {
			return nil, fmt.Errorf("failed to scan move count: %w", err)
		}
		counts[axis] = n
	}
	return counts, rows.Err()
}

// ToMoves converts MoveRecords back to notation.
func ToMoves(records []MoveRecord) []twisty.Move {
	moves := make([]twisty.Move, len(records))
	for i, r := range records {
		moves[i] = twisty.Move(r.Notation)
	}
	return moves
}
