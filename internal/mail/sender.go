// Package mail provides outbound delivery of operator notifications.
package mail

import "context"

// Sender delivers one message to the configured operator address.
// Implementations attempt exactly one delivery, no retries.
type Sender interface {
	Send(ctx context.Context, subject string, body string) error
}
