package recorder

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

// Session records finished solves into the database.
type Session struct {
	db        *storage.DB
	stateFile *StateFile
	logger    *log.Logger

	mu        sync.RWMutex
	lastID    string
	recorded  int
	notes     string
	solveRepo *storage.SolveRepository

	onRecorded func(id string, solve twisty.Solve)
}

// NewSession creates a new session. stateFile may be nil.
func NewSession(db *storage.DB, stateFile *StateFile, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		db:        db,
		stateFile: stateFile,
		logger:    logger,
		solveRepo: storage.NewSolveRepository(db),
	}
}

// SetRecordedCallback sets the callback for stored solves.
func (s *Session) SetRecordedCallback(cb func(id string, solve twisty.Solve)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRecorded = cb
}

// SetNotes sets the notes attached to the next recorded solves.
func (s *Session) SetNotes(notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = notes
}

// LastSolveID returns the ID of the most recently recorded solve.
func (s *Session) LastSolveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastID
}

// Recorded returns how many solves this session stored.
func (s *Session) Recorded() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recorded
}

// Record stores a finished solve and returns its ID.
func (s *Session) Record(solve twisty.Solve) (string, error) {
	s.mu.Lock()
	id, err := s.solveRepo.Create(storage.NewSolve{
		Order:    solve.Order,
		Duration: solve.Elapsed,
		Scramble: solve.Scramble,
		History:  solve.Moves,
		Facelets: solve.Facelets,
		Notes:    s.notes,
	})
	if err != nil {
		s.mu.Unlock()
		return "", fmt.Errorf("failed to record solve: %w", err)
	}
	s.lastID = id
	s.recorded++
	cb := s.onRecorded
	s.mu.Unlock()

	s.logger.Info("solve recorded", "id", id, "order", solve.Order, "elapsed", solve.Elapsed)

	if s.stateFile != nil {
		if err := s.stateFile.SetLastSolve(id); err != nil {
			s.logger.Warn("failed to update state file", "err", err)
		}
	}
	if cb != nil {
		cb(id, solve)
	}
	return id, nil
}

// Attach records every solve the scheduler completes.
func (s *Session) Attach(sched *twisty.Scheduler) {
	sched.OnSolved(func(solve twisty.Solve) {
		if _, err := s.Record(solve); err != nil {
			s.logger.Error("solve not saved", "err", err)
		}
	})
}

// SaveProgress stores the scheduler's done history, savepoints included, so
// play can resume.
func (s *Session) SaveProgress(sched *twisty.Scheduler) error {
	if s.stateFile == nil {
		return nil
	}
	return s.stateFile.SetProgress(sched.Puzzle().Order(), sched.History().Done())
}

// Resume replays saved progress into the scheduler. The moves are queued,
// not applied; the caller's frame loop plays them out.
func (s *Session) Resume(sched *twisty.Scheduler) (bool, error) {
	if s.stateFile == nil || !s.stateFile.HasProgress() {
		return false, nil
	}
	order, moves, err := s.stateFile.Progress()
	if err != nil {
		return false, err
	}
	if !sched.Reset(order, true) {
		return false, fmt.Errorf("%w: cannot resume order %d", twisty.ErrBusy, order)
	}
	if err := sched.PushMoves(moves); err != nil {
		s.logger.Warn("saved progress holds invalid moves", "err", err)
	}
	s.logger.Debug("resumed", "order", order, "moves", len(moves))
	return true, nil
}
