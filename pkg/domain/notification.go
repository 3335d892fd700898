package domain

import "time"

// Severity selects the visual style of a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a transient, non-blocking message shown to the author.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationEventKind describes a notification's lifecycle stage.
type NotificationEventKind string

const (
	NotificationShown     NotificationEventKind = "show"
	NotificationDismissed NotificationEventKind = "dismiss" // fade started
	NotificationRemoved   NotificationEventKind = "remove"
)

// NotificationEvent is broadcast to notification subscribers.
type NotificationEvent struct {
	Kind         NotificationEventKind `json:"kind"`
	Notification Notification          `json:"notification"`
}
