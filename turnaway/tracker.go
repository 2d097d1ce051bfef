// Package turnaway logs shifts a worker was sent home from, keeps them
// newest first, and summarises or exports them.
//
// Records live in a Storage; every Tracker operation loads the list, applies
// the change and saves it back, so several processes can share a file or
// redis backend.
package turnaway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Tracker manages turnaway records over a Storage.
type Tracker struct {
	storage  Storage
	logger   *slog.Logger
	validate *validator.Validate
	now      func() time.Time
	newID    func() string

	mu sync.Mutex
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used for storage warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithClock replaces time.Now, used for default record dates.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// NewTracker creates a tracker over storage.
func NewTracker(storage Storage, opts ...Option) *Tracker {
	t := &Tracker{
		storage:  storage,
		logger:   slog.New(slog.DiscardHandler),
		validate: validator.New(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Add validates r, gives it a new id and stores it first in the list.
// A zero Date is replaced by the current time.
func (t *Tracker) Add(ctx context.Context, r Record) (Record, error) {
	r.Location = strings.TrimSpace(r.Location)
	r.Notes = strings.TrimSpace(r.Notes)
	if r.Date.IsZero() {
		r.Date = t.now()
	}
	if r.Compensation == "" {
		r.Compensation = CompensationNone
	}
	if err := t.validate.Struct(r); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	r.ID = t.newID()

	t.mu.Lock()
	defer t.mu.Unlock()

	records, err := t.load(ctx)
	if err != nil {
		return Record{}, err
	}
	records = slices.Insert(records, 0, r)
	if err := t.storage.Save(ctx, records); err != nil {
		return Record{}, fmt.Errorf("save turnaways: %w", err)
	}

	t.logger.Debug("turnaway logged", "id", r.ID, "reason", r.Reason)
	return r, nil
}

// Delete removes the record with the given id.
func (t *Tracker) Delete(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	records, err := t.load(ctx)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(records, func(r Record) bool { return r.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}

	records = slices.Delete(records, i, i+1)
	if err := t.storage.Save(ctx, records); err != nil {
		return fmt.Errorf("save turnaways: %w", err)
	}
	return nil
}

// Clear removes every record.
func (t *Tracker) Clear(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.storage.Save(ctx, []Record{}); err != nil {
		return fmt.Errorf("save turnaways: %w", err)
	}
	return nil
}

// List returns all records, newest first. A list that cannot be read is
// logged and reported as empty; nothing is written back.
func (t *Tracker) List(ctx context.Context) []Record {
	t.mu.Lock()
	defer t.mu.Unlock()

	records, err := t.load(ctx)
	if err != nil {
		t.logger.Error("failed to load turnaways", "error", err)
		return []Record{}
	}
	return records
}

// Stats summarises the stored records relative to now.
func (t *Tracker) Stats(ctx context.Context, now time.Time) Stats {
	return Summarize(t.List(ctx), now)
}

// load reads the stored list. A corrupted value is treated as empty and
// logged, so the next save replaces it. Any other failure is returned.
func (t *Tracker) load(ctx context.Context) ([]Record, error) {
	records, err := t.storage.Load(ctx)
	switch {
	case errors.Is(err, ErrCorruptData):
		t.logger.Warn("failed to load turnaways, starting with an empty list", "error", err)
		return []Record{}, nil
	case err != nil:
		return nil, fmt.Errorf("load turnaways: %w", err)
	}
	return records, nil
}
