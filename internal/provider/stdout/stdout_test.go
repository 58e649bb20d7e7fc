package stdout

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shineum/mcp-agent-lite/internal/email"
)

func TestSendWritesMessage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewWithWriter(&buf)

	msg := &email.Message{
		To:          []string{"a@example.com", "b@example.com"},
		Cc:          []string{"c@example.com"},
		Subject:     "Test Subject",
		Body:        "line one\nline two",
		Attachments: []string{"/tmp/report.pdf"},
	}

	if err := p.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send() error = %v, want nil", err)
	}

	out := buf.String()
	for _, want := range []string{
		"To: a@example.com, b@example.com",
		"Cc: c@example.com",
		"Subject: Test Subject",
		"line one\nline two",
		"Attachments: /tmp/report.pdf",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSendOmitsEmptySections(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewWithWriter(&buf)

	msg := &email.Message{
		To:      []string{"a@example.com"},
		Subject: "hi",
		Body:    "body",
	}

	if err := p.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send() error = %v, want nil", err)
	}

	out := buf.String()
	if strings.Contains(out, "Cc:") {
		t.Errorf("output should not contain Cc section:\n%s", out)
	}
	if strings.Contains(out, "Bcc:") {
		t.Errorf("output should not contain Bcc section:\n%s", out)
	}
	if strings.Contains(out, "Attachments:") {
		t.Errorf("output should not contain Attachments section:\n%s", out)
	}
}

func TestName(t *testing.T) {
	t.Parallel()

	if got := New().Name(); got != "stdout" {
		t.Errorf("Name() = %q, want %q", got, "stdout")
	}
}
