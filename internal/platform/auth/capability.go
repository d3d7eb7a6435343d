package auth

import (
	"context"
	"time"
)

// Capability proves that the holder authenticated as admin. The zero value
// grants nothing; only Issuer can mint a valid one.
type Capability struct {
	subject   string
	expiresAt time.Time
}

func newCapability(subject string, expiresAt time.Time) Capability {
	return Capability{subject: subject, expiresAt: expiresAt}
}

// Valid reports whether c was issued and has not expired at now.
func (c Capability) Valid(now time.Time) bool {
	if c.subject == "" {
		return false
	}
	return c.expiresAt.IsZero() || now.Before(c.expiresAt)
}

func (c Capability) Subject() string {
	return c.subject
}

func (c Capability) ExpiresAt() time.Time {
	return c.expiresAt
}

type capabilityContextKey struct{}

func WithCapability(ctx context.Context, c Capability) context.Context {
	return context.WithValue(ctx, capabilityContextKey{}, c)
}

// CapabilityFromContext returns the zero Capability when none is attached.
func CapabilityFromContext(ctx context.Context) Capability {
	c, _ := ctx.Value(capabilityContextKey{}).(Capability)
	return c
}
