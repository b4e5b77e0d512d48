package testutil

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"worktracker/internal/storage"
	"worktracker/internal/worklog"
)

// Clock is a settable clock for driving the timer in tests.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(t time.Time) *Clock {
	return &Clock{now: t}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// RecordingPersister keeps every saved collection and can be made to fail.
// Load returns the last saved collection, or Initial before any save.
type RecordingPersister struct {
	Saves   [][]worklog.Record
	Initial []worklog.Record
	LoadErr error
	SaveErr error
}

func (p *RecordingPersister) Load(context.Context) ([]worklog.Record, error) {
	if p.LoadErr != nil {
		return nil, p.LoadErr
	}
	if len(p.Saves) > 0 {
		return slices.Clone(p.Last()), nil
	}
	return slices.Clone(p.Initial), nil
}

func (p *RecordingPersister) Save(_ context.Context, records []worklog.Record) error {
	if p.SaveErr != nil {
		return p.SaveErr
	}
	p.Saves = append(p.Saves, slices.Clone(records))
	return nil
}

// Last returns the most recently saved collection.
func (p *RecordingPersister) Last() []worklog.Record {
	if len(p.Saves) == 0 {
		return nil
	}
	return p.Saves[len(p.Saves)-1]
}

// NewTestKV opens an in-memory SQLite store closed when the test completes.
func NewTestKV(t *testing.T) *storage.SQLiteKV {
	t.Helper()
	kv, err := storage.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		kv.Close()
	})
	return kv
}
