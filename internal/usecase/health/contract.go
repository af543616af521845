package health

import "context"

// ContentPinger checks that the content store can serve screens.
type ContentPinger interface {
	Ping(ctx context.Context) error
}

// IdentityChecker checks identity provider availability.
type IdentityChecker interface {
	HealthCheck(ctx context.Context) error
}
