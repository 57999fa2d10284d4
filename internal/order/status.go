package order

import (
	"errors"
	"strings"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusPaid       Status = "PAID"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
	StatusRefunded   Status = "REFUNDED"
)

var ErrNotCancellable = errors.New("order can no longer be cancelled")

// Statuses is the lifecycle in display order.
var Statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusPaid,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCompleted,
	StatusCancelled,
	StatusRefunded,
}

var descriptions = map[Status]string{
	StatusPending:    "Pending",
	StatusConfirmed:  "Confirmed",
	StatusPaid:       "Paid",
	StatusProcessing: "Processing",
	StatusShipped:    "Shipped",
	StatusDelivered:  "Delivered",
	StatusCompleted:  "Completed",
	StatusCancelled:  "Cancelled",
	StatusRefunded:   "Refunded",
}

// ParseStatus accepts any casing and reports whether s is a known status.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := descriptions[st]
	return st, ok
}

// Cancellable is true only before fulfilment starts.
func (s Status) Cancellable() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPaid:
		return true
	default:
		return false
	}
}

// CheckCancel returns ErrNotCancellable for statuses past PAID.
func (s Status) CheckCancel() error {
	if !s.Cancellable() {
		return ErrNotCancellable
	}
	return nil
}

func (s Status) Description() string {
	if d, ok := descriptions[s]; ok {
		return d
	}
	return string(s)
}

// Tone maps a status to the badge style used by the templates.
func (s Status) Tone() string {
	switch s {
	case StatusPending:
		return "warning"
	case StatusConfirmed, StatusPaid, StatusProcessing:
		return "info"
	case StatusShipped, StatusDelivered:
		return "primary"
	case StatusCompleted:
		return "success"
	case StatusCancelled, StatusRefunded:
		return "error"
	default:
		return "default"
	}
}
