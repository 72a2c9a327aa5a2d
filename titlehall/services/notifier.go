package services

import (
	"log/slog"
	"sync"
)

type NotificationKind string

const (
	NotifyInfo  NotificationKind = "info"
	NotifyError NotificationKind = "error"
)

// CompletionInfo identifies one objective completion and its payout.
type CompletionInfo struct {
	ObjectiveID string `json:"objective_id"`
	DisplayName string `json:"display_name"`
	Reward      int64  `json:"reward"`
}

// Notification is a fire-and-forget event for the presentation layer
// (toasts). Objective is set only for completion events.
type Notification struct {
	Kind      NotificationKind `json:"kind"`
	Title     string           `json:"title"`
	Detail    string           `json:"detail"`
	Objective *CompletionInfo  `json:"objective,omitempty"`
}

// Notifier receives notifications. Delivery is best-effort: a notifier
// must never fail the operation that produced the event.
type Notifier interface {
	Notify(n Notification)
}

// LogNotifier writes notifications to the process log.
type LogNotifier struct{}

func (LogNotifier) Notify(n Notification) {
	attrs := []any{
		slog.String("type", "game"),
		slog.String("title", n.Title),
		slog.String("detail", n.Detail),
	}
	if n.Objective != nil {
		attrs = append(attrs,
			slog.String("objective", n.Objective.ObjectiveID),
			slog.Int64("reward", n.Objective.Reward))
	}
	if n.Kind == NotifyError {
		slog.Warn("Notification", attrs...)
	} else {
		slog.Info("Notification", attrs...)
	}
}

// Fanout delivers each notification to every wrapped notifier.
type Fanout []Notifier

func (f Fanout) Notify(n Notification) {
	for _, notifier := range f {
		notifier.Notify(n)
	}
}

// Recorder buffers notifications; the web layer drains it per poll and
// tests assert against it.
type Recorder struct {
	mu     sync.Mutex
	buffer []Notification
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buffer = append(r.buffer, n)
}

// Drain returns all buffered notifications and clears the buffer.
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	drained := r.buffer
	r.buffer = nil
	return drained
}
