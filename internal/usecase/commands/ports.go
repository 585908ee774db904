package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ScheduleInvalidator drops cached availability for one resource's day.
type ScheduleInvalidator interface {
	Invalidate(ctx context.Context, resourceID uuid.UUID, day time.Time)
}

// Recorder receives outcome counts for reservations and transitions.
type Recorder interface {
	ReservationAttempt(outcome string)
	Transition(action, outcome string)
}

// Reservation outcomes reported to Recorder.
const (
	OutcomeCreated  = "created"
	OutcomeReplayed = "replayed"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

type nopInvalidator struct{}

func (nopInvalidator) Invalidate(context.Context, uuid.UUID, time.Time) {}

type nopRecorder struct{}

func (nopRecorder) ReservationAttempt(string) {}
func (nopRecorder) Transition(string, string) {}
