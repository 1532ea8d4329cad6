package lifecycle

// List of job lifecycle statuses.
const (
	StatusOpen       = "open"
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusConfirmed  = "confirmed"
	StatusPaid       = "paid"
	StatusCancelled  = "cancelled"
	StatusDisputed   = "disputed"
)

var transitions = map[string]map[string]struct{}{
	StatusOpen: {
		StatusPending:   {},
		StatusCancelled: {},
	},
	StatusPending: {
		StatusInProgress: {},
		StatusCancelled:  {},
	},
	StatusInProgress: {
		StatusCompleted: {},
	},
	StatusCompleted: {
		StatusConfirmed: {},
		StatusDisputed:  {},
	},
	StatusConfirmed: {
		StatusPaid:     {},
		StatusDisputed: {},
	},
	StatusDisputed: {
		StatusCancelled: {},
		StatusPaid:      {},
	},
}

// CanTransition returns true when the lifecycle allows moving from current to
// next status. Paid and cancelled are terminal.
func CanTransition(current, next string) bool {
	allowed, ok := transitions[current]
	if !ok {
		return false
	}
	_, ok = allowed[next]
	return ok
}

// IsTerminal reports whether no further transitions are possible.
func IsTerminal(status string) bool {
	return len(transitions[status]) == 0
}

// Disputable reports whether a client may pull the job into a dispute.
func Disputable(status string) bool {
	return CanTransition(status, StatusDisputed)
}

// Cancellable reports whether a client may still cancel the job outright.
func Cancellable(status string) bool {
	return status == StatusOpen || status == StatusPending
}

// Valid reports whether s is a known job status.
func Valid(s string) bool {
	switch s {
	case StatusOpen, StatusPending, StatusInProgress, StatusCompleted,
		StatusConfirmed, StatusPaid, StatusCancelled, StatusDisputed:
		return true
	}
	return false
}

// All lists every job status, in happy-path order with side exits last.
func All() []string {
	return []string{
		StatusOpen, StatusPending, StatusInProgress, StatusCompleted,
		StatusConfirmed, StatusPaid, StatusCancelled, StatusDisputed,
	}
}
