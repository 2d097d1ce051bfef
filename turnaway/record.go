package turnaway

import (
	"errors"
	"time"
)

var (
	// ErrRecordNotFound is returned by Delete for an unknown id.
	ErrRecordNotFound = errors.New("turnaway not found")

	// ErrInvalidRecord wraps validation failures in Add.
	ErrInvalidRecord = errors.New("invalid turnaway")
)

// Reason is why a worker was turned away.
type Reason string

const (
	ReasonOverstaffed    Reason = "overstaffed"
	ReasonShiftCancelled Reason = "shift-cancelled"
	ReasonEarlyRelease   Reason = "early-release"
	ReasonNotNeeded      Reason = "not-needed"
	ReasonScheduleError  Reason = "schedule-error"
	ReasonOther          Reason = "other"
)

var reasonLabels = map[Reason]string{
	ReasonOverstaffed:    "Overstaffed",
	ReasonShiftCancelled: "Shift Cancelled",
	ReasonEarlyRelease:   "Early Release",
	ReasonNotNeeded:      "Not Needed",
	ReasonScheduleError:  "Schedule Error",
	ReasonOther:          "Other",
}

// Label returns the human readable name, or the raw code if unknown.
func (r Reason) Label() string {
	if l, ok := reasonLabels[r]; ok {
		return l
	}
	return string(r)
}

// Reasons lists every known reason code in display order.
func Reasons() []Reason {
	return []Reason{
		ReasonOverstaffed, ReasonShiftCancelled, ReasonEarlyRelease,
		ReasonNotNeeded, ReasonScheduleError, ReasonOther,
	}
}

// Compensation is what the worker was paid for the lost shift.
type Compensation string

const (
	CompensationNone    Compensation = "none"
	CompensationPartial Compensation = "partial"
	CompensationFull    Compensation = "full"
	CompensationPending Compensation = "pending"
)

var compensationLabels = map[Compensation]string{
	CompensationNone:    "No Compensation",
	CompensationPartial: "Partial Pay",
	CompensationFull:    "Full Pay",
	CompensationPending: "Pending",
}

// Label returns the human readable name, or the raw code if unknown.
func (c Compensation) Label() string {
	if l, ok := compensationLabels[c]; ok {
		return l
	}
	return string(c)
}

// Compensated reports whether any pay was received.
func (c Compensation) Compensated() bool {
	return c == CompensationPartial || c == CompensationFull
}

// Compensations lists every known compensation code in display order.
func Compensations() []Compensation {
	return []Compensation{CompensationNone, CompensationPartial, CompensationFull, CompensationPending}
}

// Record is one logged turnaway.
type Record struct {
	ID           string       `json:"id"`
	Date         time.Time    `json:"date" validate:"required"`
	Location     string       `json:"location" validate:"required,max=200"`
	Reason       Reason       `json:"reason" validate:"required,oneof=overstaffed shift-cancelled early-release not-needed schedule-error other"`
	Notes        string       `json:"notes,omitempty" validate:"max=2000"`
	Compensation Compensation `json:"compensation" validate:"required,oneof=none partial full pending"`
}

// Stats summarises a list of records.
type Stats struct {
	Total       int `json:"total"`
	ThisMonth   int `json:"thisMonth"`
	Compensated int `json:"compensated"`
}

// Summarize computes stats for records. ThisMonth counts records whose
// date falls in the same calendar month as now, in now's location.
func Summarize(records []Record, now time.Time) Stats {
	s := Stats{Total: len(records)}
	year, month, _ := now.Date()
	for _, r := range records {
		y, m, _ := r.Date.In(now.Location()).Date()
		if y == year && m == month {
			s.ThisMonth++
		}
		if r.Compensation.Compensated() {
			s.Compensated++
		}
	}
	return s
}
