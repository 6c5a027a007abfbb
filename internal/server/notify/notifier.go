// Package notify dispatches activation codes to the account's email address.
// Delivery is a collaborator concern; the default implementation only logs
// the dispatch so the rest of the flow can run without a mail backend.
package notify

import (
	"context"

	"github.com/iKaueMatos/twitter-microservices/internal/logging"
)

// Notifier sends a freshly issued activation code to an account's email.
// Failures are the dispatcher's problem; the credential flow treats the
// send as fire-and-forget.
type Notifier interface {
	SendActivationCode(ctx context.Context, email, key string) error
}

// LogNotifier writes the dispatch to the structured log instead of sending
// mail. Useful for development and tests.
type LogNotifier struct {
	logger logging.Logger
}

// NewLogNotifier constructs a LogNotifier over the given logger.
func NewLogNotifier(l logging.Logger) *LogNotifier {
	return &LogNotifier{logger: l.With("module", "notifier")}
}

// SendActivationCode logs the code dispatch.
func (n *LogNotifier) SendActivationCode(ctx context.Context, email, key string) error {
	n.logger.Info(ctx, "activation code dispatched", "email", email, "key", key)
	return nil
}
