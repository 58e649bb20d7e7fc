// Package smtp implements a Provider that relays messages through an
// external SMTP server.
package smtp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	gosmtp "github.com/emersion/go-smtp"

	"github.com/shineum/mcp-agent-lite/internal/email"
)

// ProviderConfig holds the configuration for creating a Provider.
type ProviderConfig struct {
	// Addr is the relay address in host:port form (e.g., "smtp.example.com:587").
	Addr string

	// Username and Password configure PLAIN authentication.
	// If both are empty, the relay is used unauthenticated.
	Username string
	Password string

	// Sender is the envelope From address.
	Sender string
}

// Provider relays messages through an SMTP server using STARTTLS.
type Provider struct {
	cfg ProviderConfig

	// sendMail is swappable for testing; defaults to gosmtp.SendMail.
	sendMail func(addr string, a sasl.Client, from string, to []string, r io.Reader) error
}

// New creates a new SMTP relay Provider.
func New(cfg ProviderConfig) *Provider {
	return &Provider{
		cfg:      cfg,
		sendMail: gosmtp.SendMail,
	}
}

// Send composes a MIME message from msg and relays it in a single attempt.
// Bcc recipients are added to the envelope only, never to the headers.
func (p *Provider) Send(_ context.Context, msg *email.Message) error {
	raw, err := buildMessage(p.cfg.Sender, msg)
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	var auth sasl.Client
	if p.cfg.Username != "" || p.cfg.Password != "" {
		auth = sasl.NewPlainClient("", p.cfg.Username, p.cfg.Password)
	}

	recipients := make([]string, 0, len(msg.To)+len(msg.Cc)+len(msg.Bcc))
	recipients = append(recipients, msg.To...)
	recipients = append(recipients, msg.Cc...)
	recipients = append(recipients, msg.Bcc...)

	if err := p.sendMail(p.cfg.Addr, auth, p.cfg.Sender, recipients, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("smtp relay failed: %w", err)
	}
	return nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "smtp"
}

// buildMessage assembles an RFC 5322 message with a text/plain body and the
// attachment files read from disk.
func buildMessage(sender string, msg *email.Message) ([]byte, error) {
	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*mail.Address{{Address: sender}})
	h.SetAddressList("To", toAddressList(msg.To))
	if len(msg.Cc) > 0 {
		h.SetAddressList("Cc", toAddressList(msg.Cc))
	}
	h.SetSubject(msg.Subject)

	var buf bytes.Buffer
	mw, err := mail.CreateWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("failed to create message writer: %w", err)
	}

	tw, err := mw.CreateInline()
	if err != nil {
		return nil, fmt.Errorf("failed to create inline writer: %w", err)
	}
	var th mail.InlineHeader
	th.Set("Content-Type", "text/plain; charset=utf-8")
	pw, err := tw.CreatePart(th)
	if err != nil {
		return nil, fmt.Errorf("failed to create body part: %w", err)
	}
	if _, err := io.WriteString(pw, msg.Body); err != nil {
		return nil, fmt.Errorf("failed to write body: %w", err)
	}
	pw.Close()
	tw.Close()

	for _, path := range msg.Attachments {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read attachment %s: %w", path, err)
		}

		contentType := mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		var ah mail.AttachmentHeader
		ah.Set("Content-Type", contentType)
		ah.SetFilename(filepath.Base(path))
		aw, err := mw.CreateAttachment(ah)
		if err != nil {
			return nil, fmt.Errorf("failed to create attachment part: %w", err)
		}
		if _, err := aw.Write(content); err != nil {
			return nil, fmt.Errorf("failed to write attachment: %w", err)
		}
		aw.Close()
	}

	mw.Close()
	return buf.Bytes(), nil
}

// toAddressList converts plain address strings into mail addresses.
func toAddressList(addrs []string) []*mail.Address {
	list := make([]*mail.Address, 0, len(addrs))
	for _, a := range addrs {
		list = append(list, &mail.Address{Address: a})
	}
	return list
}
