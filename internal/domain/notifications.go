package domain

import "time"

type NotificationType string

const (
	NotificationStatusChanged     NotificationType = "status_changed"
	NotificationPaymentProcessing NotificationType = "payment_processing"
	NotificationPaymentSucceeded  NotificationType = "payment_succeeded"
)

// Notification is pushed to websocket clients.
type Notification struct {
	Type      NotificationType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`

	Status    []string `json:"status,omitempty"`
	Available *int     `json:"available,omitempty"`

	Payment *Payment `json:"payment,omitempty"`
}
