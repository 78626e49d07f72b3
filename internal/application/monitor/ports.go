package monitor

import (
	"context"

	"github.com/kaynetech/RetailRx/internal/domain/entity"
)

// Notification is the payload handed to the outbound notification collaborator.
type Notification struct {
	Recipient string
	Subject   string
	Message   string
	Severity  entity.Severity
}

// Notifier dispatches an alert notification (email, webhook, ...). Invoked
// fire-and-forget from the alert flow: a failed dispatch never blocks alert
// persistence.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}
