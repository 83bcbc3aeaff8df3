// Package recorder stores finished solves and remembers the puzzle between
// runs.
package recorder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/SeamusWaldron/twisty"
)

// AppState represents the persistent application state.
type AppState struct {
	DBPath      string    `json:"db_path,omitempty"`
	LastSolveID string    `json:"last_solve_id,omitempty"`
	Order       int       `json:"order,omitempty"`
	History     string    `json:"history,omitempty"`
	SavedAt     time.Time `json:"saved_at,omitzero"`
}

// StateFile manages the application state file.
type StateFile struct {
	path  string
	state AppState
}

// DefaultStatePath returns the default state file path.
func DefaultStatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".twisty")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(dir, "state.json"), nil
}

// NewStateFile creates a new state file manager.
func NewStateFile(path string) (*StateFile, error) {
	sf := &StateFile{path: path}

	// Try to load existing state
	if err := sf.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return sf, nil
}

// NewDefaultStateFile creates a state file manager with the default path.
func NewDefaultStateFile() (*StateFile, error) {
	path, err := DefaultStatePath()
	if err != nil {
		return nil, err
	}
	return NewStateFile(path)
}

// Load loads the state from disk.
func (sf *StateFile) Load() error {
	data, err := os.ReadFile(sf.path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, &sf.state); err != nil {
		return fmt.Errorf("failed to parse state file: %w", err)
	}
	return nil
}

// Save saves the state to disk.
func (sf *StateFile) Save() error {
	data, err := json.MarshalIndent(sf.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(sf.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// State returns the current state.
func (sf *StateFile) State() AppState {
	return sf.state
}

// SetDBPath sets the database path.
func (sf *StateFile) SetDBPath(path string) error {
	sf.state.DBPath = path
	return sf.Save()
}

// DBPath returns the database path.
func (sf *StateFile) DBPath() string {
	return sf.state.DBPath
}

// SetLastSolve sets the most recently recorded solve.
func (sf *StateFile) SetLastSolve(solveID string) error {
	sf.state.LastSolveID = solveID
	return sf.Save()
}

// SetProgress remembers an unfinished puzzle.
func (sf *StateFile) SetProgress(order int, history []twisty.Move) error {
	if len(history) == 0 {
		return sf.ClearProgress()
	}
	sf.state.Order = order
	sf.state.History = twisty.FormatMoves(history)
	sf.state.SavedAt = time.Now().UTC()
	return sf.Save()
}

// ClearProgress forgets the saved puzzle.
func (sf *StateFile) ClearProgress() error {
	sf.state.Order = 0
	sf.state.History = ""
	sf.state.SavedAt = time.Time{}
	return sf.Save()
}

// HasProgress returns true if a puzzle was saved.
func (sf *StateFile) HasProgress() bool {
	return sf.state.Order != 0
}

// Progress returns the saved puzzle order and history.
func (sf *StateFile) Progress() (int, []twisty.Move, error) {
	moves, err := twisty.ParseMoves(sf.state.History)
	if err != nil {
		return sf.state.Order, moves, fmt.Errorf("failed to parse saved history: %w", err)
	}
	return sf.state.Order, moves, nil
}
