package booking

import (
	"fmt"
	"slices"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

var AllStatuses = []Status{
	StatusPending, StatusConfirmed, StatusInProgress,
	StatusCompleted, StatusCancelled, StatusNoShow,
}

// ActiveStatuses are the statuses that hold a resource's time.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed, StatusInProgress}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return slices.Contains(AllStatuses, s)
}

func (s Status) IsActive() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

type Action string

const (
	ActionConfirm    Action = "confirm"
	ActionStart      Action = "start"
	ActionComplete   Action = "complete"
	ActionCancel     Action = "cancel"
	ActionMarkNoShow Action = "mark_no_show"
)

func ParseAction(s string) (Action, error) {
	a := Action(s)
	for _, known := range []Action{ActionConfirm, ActionStart, ActionComplete, ActionCancel, ActionMarkNoShow} {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

func (a Action) String() string {
	return string(a)
}

// transitions lists every legal move. Anything missing is rejected.
var transitions = map[Status]map[Action]Status{
	StatusPending: {
		ActionConfirm: StatusConfirmed,
		ActionStart:   StatusInProgress,
		ActionCancel:  StatusCancelled,
	},
	StatusConfirmed: {
		ActionStart:      StatusInProgress,
		ActionComplete:   StatusCompleted,
		ActionCancel:     StatusCancelled,
		ActionMarkNoShow: StatusNoShow,
	},
	StatusInProgress: {
		ActionComplete:   StatusCompleted,
		ActionMarkNoShow: StatusNoShow,
	},
}

// Next reports the status reached by applying a from s.
func (s Status) Next(a Action) (Status, bool) {
	to, ok := transitions[s][a]
	return to, ok
}
