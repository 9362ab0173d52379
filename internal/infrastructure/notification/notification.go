// Package notification bridges domain events to the Notification Sink
// collaborator. Delivery is fire-and-forget: notices are handed to the sink
// synchronously and the sink alone decides ordering, retention, and fan-out.
package notification

import "time"

// Severity classifies a notice for display purposes
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notice is one human-readable notification
type Notice struct {
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Sink receives notices. Implementations must not block the caller beyond a
// bounded hand-off; failures are the sink's own concern.
type Sink interface {
	Notify(notice Notice)
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(notice Notice)

// Notify implements Sink
func (f SinkFunc) Notify(notice Notice) {
	f(notice)
}

// NewNotice creates a notice stamped with the current time
func NewNotice(severity Severity, message string) Notice {
	return Notice{
		Severity:  severity,
		Message:   message,
		Timestamp: time.Now(),
	}
}
