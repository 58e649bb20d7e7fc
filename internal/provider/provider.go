// Package provider defines the interface for mail delivery backends.
package provider

import (
	"context"

	"github.com/shineum/mcp-agent-lite/internal/email"
)

// Provider is the interface that mail delivery backends must implement.
// Each provider handles the actual dispatch of a composed message to the
// target mechanism (desktop mail client, SES, an SMTP relay, stdout, ...).
// A Send call is a single best-effort attempt with no partial-completion
// semantics visible to callers; providers may block for as long as the
// underlying mechanism needs.
type Provider interface {
	// Send delivers a message through this provider.
	// It returns an error if the delivery fails.
	Send(ctx context.Context, msg *email.Message) error

	// Name returns the human-readable name of this provider.
	Name() string
}
