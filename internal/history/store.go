// Package history keeps the per-mission record of submitted runs and the
// statistics derived from it.
package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/tatianab/rover-rescue/internal/errs"
	"github.com/tatianab/rover-rescue/internal/models"
)

// Store is the in-memory, authoritative run history for a session, written
// through to a Medium on every change. There is a single writer.
type Store struct {
	medium  Medium
	history models.RunHistory
	now     func() time.Time
}

type Option func(*Store)

// WithClock sets the clock used to timestamp appended runs.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open loads the history from medium. The returned Store is always usable:
// when the medium is missing, unreadable or corrupt the store starts empty,
// and a non-nil error (CodeStorageUnavailable or CodeStorageCorrupt) says
// why.
func Open(medium Medium, opts ...Option) (*Store, error) {
	s := &Store{medium: medium, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	h, err := Load(medium)
	s.history = h
	return s, err
}

// Load returns the last persisted history, or an empty one if nothing was
// persisted or the snapshot cannot be trusted.
func Load(medium Medium) (models.RunHistory, error) {
	h, err := medium.LoadHistory()
	switch {
	case errors.Is(err, ErrNoHistory):
		return models.EmptyHistory(), nil
	case errs.IsCode(err, errs.CodeStorageCorrupt):
		return models.EmptyHistory(), err
	case err != nil:
		return models.EmptyHistory(), errs.Wrap(errs.CodeStorageUnavailable, "load history", err)
	}
	if err := check(h); err != nil {
		return models.EmptyHistory(), errs.Wrap(errs.CodeStorageCorrupt, "load history", err)
	}
	return normalise(h), nil
}

// check verifies every record sits under its own mission with run numbers
// 1..N.
func check(h models.RunHistory) error {
	for _, m := range models.Missions {
		for i, r := range h.Runs(m) {
			if r.Mission != m || !r.Valid() {
				return fmt.Errorf("%s run %d: record does not match mission", m.Key(), i+1)
			}
			if r.RunNumber != i+1 {
				return fmt.Errorf("%s run %d: run number is %d", m.Key(), i+1, r.RunNumber)
			}
		}
	}
	return nil
}

func normalise(h models.RunHistory) models.RunHistory {
	out := models.EmptyHistory()
	for _, m := range models.Missions {
		for _, r := range h.Runs(m) {
			out.Push(r)
		}
	}
	return out
}

// Append stamps rec with the next run number for its mission, the engineer
// name and the current time, adds it to the history and saves the whole
// history. The stamped record is returned even when saving fails; the
// error then carries CodeStorageUnavailable and the run lives in memory only
// until a later save succeeds.
func (s *Store) Append(rec models.RunRecord, engineer string) (models.RunRecord, error) {
	if !rec.Valid() {
		return models.RunRecord{}, errs.New(errs.CodeUnknownMission, fmt.Sprintf("run record for mission %d has no matching data", int(rec.Mission)))
	}
	rec = rec.Clone()
	rec.RunNumber = s.history.Len(rec.Mission) + 1
	rec.EngineerName = engineer
	rec.Timestamp = s.now()
	s.history.Push(rec)

	if err := s.save(); err != nil {
		return rec.Clone(), err
	}
	return rec.Clone(), nil
}

// Clear empties every mission's history and saves that. There is no undo.
func (s *Store) Clear() error {
	s.history = models.EmptyHistory()
	return s.save()
}

func (s *Store) save() error {
	if err := s.medium.SaveHistory(s.history.Clone()); err != nil {
		return errs.Wrap(errs.CodeStorageUnavailable, "save history", err)
	}
	return nil
}

// Runs returns a copy of m's runs in run-number order.
func (s *Store) Runs(m models.MissionID) []models.RunRecord {
	src := s.history.Runs(m)
	out := make([]models.RunRecord, len(src))
	for i, r := range src {
		out[i] = r.Clone()
	}
	return out
}

func (s *Store) Len(m models.MissionID) int {
	return s.history.Len(m)
}

func (s *Store) Total() int {
	return s.history.Total()
}

// Snapshot returns a deep copy of the whole history.
func (s *Store) Snapshot() models.RunHistory {
	return s.history.Clone()
}
