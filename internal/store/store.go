// Package store holds the WorkLogStore, the single source of truth for work
// log records and the running timer. Callers issue commands and read the
// derived views; every successful mutation rewrites the durable collection
// through a Persister.
package store

import (
	"context"
	"io"
	"slices"
	"strings"
	"time"

	"worktracker/internal/errors"
	"worktracker/internal/export"
	"worktracker/internal/logging"
	"worktracker/internal/timer"
	"worktracker/internal/worklog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Persister receives the full collection after every mutation.
type Persister interface {
	Save(ctx context.Context, records []worklog.Record) error
}

// Repository is a Persister that can also load the stored collection.
type Repository interface {
	Persister
	Load(ctx context.Context) ([]worklog.Record, error)
}

type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func WithLogger(log *logrus.Entry) Option {
	return func(s *Store) { s.log = log }
}

// WithDefaults sets the initial session defaults.
func WithDefaults(d worklog.Defaults) Option {
	return func(s *Store) { s.defaults = d }
}

type Store struct {
	records   []worklog.Record
	timer     *timer.Timer
	defaults  worklog.Defaults
	persister Persister
	loadErr   error

	now   func() time.Time
	newID func() string
	log   *logrus.Entry
}

// New returns an empty store. A nil persister disables persistence.
func New(p Persister, opts ...Option) *Store {
	s := &Store{
		records:   []worklog.Record{},
		timer:     timer.New(),
		persister: p,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.NewLogger("store")
	}
	return s
}

// Open returns a store loaded from repo. Unreadable or malformed data is
// logged and the store starts empty; LoadError reports what happened.
// Records stored without an ID are given one and written back.
func Open(ctx context.Context, repo Repository, opts ...Option) *Store {
	s := New(repo, opts...)

	records, err := repo.Load(ctx)
	if err != nil {
		s.loadErr = errors.PersistenceFailed("load", err)
		s.log.WithError(err).Warn("Could not load work logs, starting empty")
		return s
	}

	repaired := 0
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = s.newID()
			repaired++
		}
	}
	s.records = records
	if repaired > 0 {
		s.log.WithField("count", repaired).Info("Assigned ids to stored records without one")
		// Write the ids back now so the next process sees the same ones.
		if err := s.persister.Save(ctx, slices.Clone(s.records)); err != nil {
			s.log.WithError(err).Warn("Could not store assigned ids")
		}
	}

	s.log.WithField("count", len(records)).Debug("Loaded work logs")
	return s
}

// LoadError is the error Open recovered from, if any.
func (s *Store) LoadError() error {
	return s.loadErr
}

func (s *Store) Defaults() worklog.Defaults {
	return s.defaults
}

// SetDefaults replaces the session defaults. The hourly rate is locked while
// the timer runs, since the running session will be billed at it.
func (s *Store) SetDefaults(d worklog.Defaults) error {
	if s.timer.Running() && d.HourlyRate != s.defaults.HourlyRate {
		return errors.RateLocked()
	}
	if d.HourlyRate < 0 {
		return errors.Validation("hourly rate must not be negative")
	}
	s.defaults = d
	return nil
}

// StartTimer begins a session at the current instant.
func (s *Store) StartTimer() error {
	if !s.timer.Start(s.now()) {
		return errors.TimerAlreadyRunning()
	}
	s.log.Debug("Timer started")
	return nil
}

// StopTimer ends the running session and records it with the current
// session defaults. If the stop instant does not come after the start, the
// timer keeps running and nothing is recorded.
func (s *Store) StopTimer(ctx context.Context) (worklog.Record, error) {
	if !s.timer.Running() {
		return worklog.Record{}, errors.TimerNotRunning()
	}

	rec, err := worklog.NewRecord(s.newID(), s.defaults.TimerFields(s.timer.StartedAt(), s.now()))
	if err != nil {
		return worklog.Record{}, err
	}
	s.timer.Stop()

	s.records = append(s.records, rec)
	s.log.WithFields(logrus.Fields{"id": rec.ID, "seconds": rec.DurationSeconds()}).Debug("Timer stopped")
	return rec, s.persist(ctx)
}

// DiscardTimer abandons the running session without recording it.
func (s *Store) DiscardTimer() error {
	if !s.timer.Running() {
		return errors.TimerNotRunning()
	}
	s.timer.Reset()
	s.log.Debug("Timer discarded")
	return nil
}

// Running reports whether the timer is running.
func (s *Store) Running() bool {
	return s.timer.Running()
}

// Elapsed is the live timer display value, zero when stopped.
func (s *Store) Elapsed() time.Duration {
	return s.timer.Elapsed(s.now())
}

// AddManual records a session entered by hand. Company and employee come
// from the session defaults.
func (s *Store) AddManual(ctx context.Context, start, end time.Time, rate float64) (worklog.Record, error) {
	rec, err := worklog.NewRecord(s.newID(), s.defaults.ManualFields(start, end, rate))
	if err != nil {
		return worklog.Record{}, err
	}

	s.records = append(s.records, rec)
	s.log.WithField("id", rec.ID).Debug("Manual record added")
	return rec, s.persist(ctx)
}

// Update replaces the content of the record with the given ID, keeping the
// ID and re-deriving the duration.
func (s *Store) Update(ctx context.Context, id string, f worklog.Fields) (worklog.Record, error) {
	idx := slices.IndexFunc(s.records, func(r worklog.Record) bool { return r.ID == id })
	if idx < 0 {
		return worklog.Record{}, errors.RecordNotFound(id)
	}

	updated, err := s.records[idx].Replace(f)
	if err != nil {
		return worklog.Record{}, err
	}
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i] = updated
		}
	}

	s.log.WithField("id", id).Debug("Record updated")
	return updated, s.persist(ctx)
}

// Delete removes every record with the given ID. A missing ID is not an
// error, and the collection is persisted either way.
func (s *Store) Delete(ctx context.Context, id string) error {
	before := len(s.records)
	s.records = slices.DeleteFunc(s.records, func(r worklog.Record) bool { return r.ID == id })

	s.log.WithFields(logrus.Fields{"id": id, "removed": before - len(s.records)}).Debug("Record deleted")
	return s.persist(ctx)
}

// Get looks up a record by exact ID.
func (s *Store) Get(id string) (worklog.Record, bool) {
	idx := slices.IndexFunc(s.records, func(r worklog.Record) bool { return r.ID == id })
	if idx < 0 {
		return worklog.Record{}, false
	}
	return s.records[idx], true
}

// Resolve finds a record by exact ID or unique ID prefix.
func (s *Store) Resolve(prefix string) (worklog.Record, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return worklog.Record{}, errors.Validation("record id is required")
	}
	if r, ok := s.Get(prefix); ok {
		return r, nil
	}

	var matches []worklog.Record
	for _, r := range s.records {
		if strings.HasPrefix(r.ID, prefix) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 0:
		return worklog.Record{}, errors.RecordNotFound(prefix)
	case 1:
		return matches[0], nil
	default:
		return worklog.Record{}, errors.Validation("id prefix " + prefix + " matches more than one record").
			WithDetail("matches", len(matches))
	}
}

// Len is the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// List returns every record, most recent start first.
func (s *Store) List() []worklog.Record {
	return worklog.Sorted(s.records)
}

// TotalPay is the sum of unrounded pay over all records, rounded to cents.
func (s *Store) TotalPay() decimal.Decimal {
	return worklog.TotalPay(s.List())
}

// ExportCSV writes the sorted collection as CSV, rendering dates and times in loc.
func (s *Store) ExportCSV(w io.Writer, loc *time.Location) error {
	return export.WriteCSV(w, s.List(), loc)
}

func (s *Store) persist(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	if err := s.persister.Save(ctx, slices.Clone(s.records)); err != nil {
		s.log.WithError(err).WithField("count", len(s.records)).Error("Failed to persist work logs")
		return errors.PersistenceFailed("save", err)
	}
	return nil
}
