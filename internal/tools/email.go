package tools

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/shineum/mcp-agent-lite/internal/email"
	"github.com/shineum/mcp-agent-lite/internal/provider"
)

// SendEmailTool sends an email composed directly from the tool payload.
type SendEmailTool struct {
	sender provider.Provider
}

// NewSendEmailTool creates a SendEmailTool sending through the given provider.
func NewSendEmailTool(sender provider.Provider) *SendEmailTool {
	return &SendEmailTool{sender: sender}
}

// Definition returns the send_email tool definition.
func (t *SendEmailTool) Definition() Definition {
	return Definition{
		Name:        "send_email",
		Description: "Send an email through the configured mail provider. Attachments are filesystem paths.",
		InputSchema: GenerateSchema[email.Message](),
		Handler:     t.send,
	}
}

func (t *SendEmailTool) send(ctx context.Context, input json.RawMessage) *Result {
	var msg email.Message
	if err := json.Unmarshal(input, &msg); err != nil {
		return Errorf("invalid input: %v", err)
	}
	return sendMessage(ctx, t.sender, &msg)
}

// sendDetails is the data payload attached to a successful send.
type sendDetails struct {
	MessageID   string   `json:"message_id"`
	To          []string `json:"to"`
	Cc          []string `json:"cc,omitempty"`
	Bcc         []string `json:"bcc,omitempty"`
	Subject     string   `json:"subject"`
	Attachments []string `json:"attachments,omitempty"`
}

// sendMessage performs the single best-effort hand-off to the provider and
// folds the outcome into a Result envelope. Both send tools share this path
// so their envelopes are indistinguishable.
func sendMessage(ctx context.Context, sender provider.Provider, msg *email.Message) *Result {
	slog.Info("sending email",
		"provider", sender.Name(),
		"to", msg.To,
		"subject", msg.Subject,
		"attachments", len(msg.Attachments),
	)

	if err := sender.Send(ctx, msg); err != nil {
		slog.Error("send failed", "provider", sender.Name(), "error", err)
		return Errorf("failed to send email: %v", err)
	}

	return Success("email sent successfully", sendDetails{
		MessageID:   uuid.NewString(),
		To:          msg.To,
		Cc:          msg.Cc,
		Bcc:         msg.Bcc,
		Subject:     msg.Subject,
		Attachments: msg.Attachments,
	})
}
