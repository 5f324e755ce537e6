package models

// Status represents where a service request is in its lifecycle
type Status string

// Lifecycle states, in forward order
const (
	StatusSubmitted    Status = "submitted"
	StatusAccepted     Status = "accepted"
	StatusScheduled    Status = "scheduled"
	StatusTechOnTheWay Status = "tech_on_the_way"
	StatusInProgress   Status = "in_progress"
	StatusCompleted    Status = "completed"
	StatusBilled       Status = "billed"
	StatusPaid         Status = "paid"
)

// statusOrder is the sanctioned forward path from intake to payment
var statusOrder = []Status{
	StatusSubmitted,
	StatusAccepted,
	StatusScheduled,
	StatusTechOnTheWay,
	StatusInProgress,
	StatusCompleted,
	StatusBilled,
	StatusPaid,
}

// statusLabels maps each status to its human-readable label
var statusLabels = map[Status]string{
	StatusSubmitted:    "Submitted",
	StatusAccepted:     "Accepted",
	StatusScheduled:    "Scheduled",
	StatusTechOnTheWay: "Tech on the way",
	StatusInProgress:   "In progress",
	StatusCompleted:    "Completed",
	StatusBilled:       "Billed",
	StatusPaid:         "Paid",
}

// AllStatuses returns the lifecycle states in forward order.
// Callers get a copy and cannot reorder the lifecycle through it.
func AllStatuses() []Status {
	out := make([]Status, len(statusOrder))
	copy(out, statusOrder)
	return out
}

// NextStatus returns the status that follows current in the lifecycle.
// The terminal status ("paid") and unrecognized values are returned unchanged.
func NextStatus(current Status) Status {
	for i, s := range statusOrder {
		if s == current {
			if i == len(statusOrder)-1 {
				return current
			}
			return statusOrder[i+1]
		}
	}
	return current
}

// StatusLabel returns the display label for a status.
// Unrecognized values are returned as-is.
func StatusLabel(status Status) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}

// IsValidStatus reports whether s is one of the lifecycle states
func IsValidStatus(s Status) bool {
	_, ok := statusLabels[s]
	return ok
}
