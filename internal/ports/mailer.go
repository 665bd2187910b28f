package ports

import "context"

// Mailer delivers alert emails. Implementations must not block beyond the
// context deadline.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
