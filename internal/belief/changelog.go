package belief

import "github.com/moatlabs/sage/internal/domain"

// ChangeLog is an append-only ordered record of belief mutations. It is not
// safe for concurrent use on its own; the owning Tracker serializes access.
type ChangeLog struct {
	events []domain.ChangeEvent
}

func NewChangeLog() *ChangeLog {
	return &ChangeLog{}
}

func (l *ChangeLog) Append(ev domain.ChangeEvent) {
	l.events = append(l.events, ev)
}

// Recent returns the last n events in append order (oldest of the n first),
// or fewer if the log is shorter.
func (l *ChangeLog) Recent(n int) []domain.ChangeEvent {
	if n <= 0 || len(l.events) == 0 {
		return []domain.ChangeEvent{}
	}
	start := len(l.events) - n
	if start < 0 {
		start = 0
	}

	out := make([]domain.ChangeEvent, len(l.events)-start)
	copy(out, l.events[start:])
	return out
}

func (l *ChangeLog) Len() int {
	return len(l.events)
}
