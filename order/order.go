// Package order is an in-memory order registry with one-way cancellation.
//
// Cancellation moves an order from pending or processing to cancelled.
// Cancelling an order that is already cancelled is a no-op that reports
// false; cancelling a completed or shipped order is an error.
package order

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusShipped    Status = "shipped"
	StatusCancelled  Status = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusShipped, StatusCancelled:
		return true
	}
	return false
}

func (s Status) terminal() bool {
	return s == StatusCompleted || s == StatusShipped
}

var (
	// ErrOrderNotFound is returned for an id the registry never issued.
	ErrOrderNotFound = errors.New("order not found")

	// ErrCannotCancel is returned when cancelling a completed or shipped order.
	ErrCannotCancel = errors.New("cannot cancel an order that has been completed or shipped")

	// ErrInvalidStatus is returned by SetStatus for an unknown status.
	ErrInvalidStatus = errors.New("invalid order status")
)

// Order is a snapshot of one order. Values returned by a Registry are
// copies; mutating them does not affect the registry.
type Order struct {
	ID                 int        `json:"id"`
	Items              []string   `json:"items"`
	Customer           string     `json:"customer"`
	Status             Status     `json:"status"`
	CreatedAt          time.Time  `json:"createdAt"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason string     `json:"cancellationReason,omitempty"`
}

// IsCancelled reports whether the order has been cancelled.
func (o Order) IsCancelled() bool {
	return o.Status == StatusCancelled
}

func (o *Order) clone() Order {
	c := *o
	c.Items = slices.Clone(o.Items)
	if o.CancelledAt != nil {
		at := *o.CancelledAt
		c.CancelledAt = &at
	}
	return c
}

// Registry holds orders keyed by id. Ids start at 1 and increase by one
// per created order. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	orders map[int]*Order
	nextID int
	now    func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		orders: make(map[int]*Order),
		nextID: 1,
		now:    time.Now,
	}
}

// Create registers a new pending order and returns it.
func (r *Registry) Create(items []string, customer string) Order {
	r.mu.Lock()
	defer r.mu.Unlock()

	o := &Order{
		ID:        r.nextID,
		Items:     slices.Clone(items),
		Customer:  customer,
		Status:    StatusPending,
		CreatedAt: r.now(),
	}
	r.orders[o.ID] = o
	r.nextID++

	return o.clone()
}

// Cancel cancels the order with the given id, recording reason.
//
// It returns true when the order was cancelled by this call and false when
// it was already cancelled, in which case the first reason is kept.
func (r *Registry) Cancel(id int, reason string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return false, fmt.Errorf("order with ID %d: %w", id, ErrOrderNotFound)
	}

	switch {
	case o.Status == StatusCancelled:
		return false, nil
	case o.Status.terminal():
		return false, fmt.Errorf("order %d is %s: %w", id, o.Status, ErrCannotCancel)
	}

	at := r.now()
	o.Status = StatusCancelled
	o.CancelledAt = &at
	o.CancellationReason = reason
	return true, nil
}

// SetStatus moves the order to status without any transition checks.
// It is how orders reach processing, completed or shipped.
func (r *Registry) SetStatus(id int, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %d: %w", id, ErrOrderNotFound)
	}
	o.Status = status
	return nil
}

// Get returns the order with the given id.
func (r *Registry) Get(id int) (Order, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return Order{}, false
	}
	return o.clone(), true
}

// All returns every order sorted by id.
func (r *Registry) All() []Order {
	return r.filter(func(*Order) bool { return true })
}

// Cancelled returns the cancelled orders sorted by id.
func (r *Registry) Cancelled() []Order {
	return r.filter(func(o *Order) bool { return o.Status == StatusCancelled })
}

func (r *Registry) filter(keep func(*Order) bool) []Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0, len(r.orders))
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, o.clone())
		}
	}
	slices.SortFunc(out, func(a, b Order) int { return a.ID - b.ID })
	return out
}
