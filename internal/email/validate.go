package email

import (
	"fmt"
	"os"
	"strings"
)

// Validate checks a message for completeness before sending. Checks run in a
// fixed order and the first failure wins, so error messages are deterministic
// for a given input:
//
//  1. at least one To recipient
//  2. non-empty subject
//  3. non-empty body
//  4. every address in To, Cc, Bcc passes the shallow address check
//  5. every attachment path exists on disk
//
// The address check only requires "@" and "." to be present; it is a sanity
// check, not RFC 5322 validation.
func Validate(msg *Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}
	if msg.Subject == "" {
		return fmt.Errorf("no subject specified")
	}
	if msg.Body == "" {
		return fmt.Errorf("no body specified")
	}

	fields := []struct {
		name  string
		addrs []string
	}{
		{"to", msg.To},
		{"cc", msg.Cc},
		{"bcc", msg.Bcc},
	}
	for _, f := range fields {
		for _, addr := range f.addrs {
			if !PlausibleAddress(addr) {
				return fmt.Errorf("invalid email address in %s: %s", f.name, addr)
			}
		}
	}

	for _, path := range msg.Attachments {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("attachment not found: %s", path)
		}
	}

	return nil
}

// ValidateForSend is the reduced check applied on the send-from-file path: it
// only requires recipients and a subject. This is intentionally weaker than
// Validate and the difference is preserved deliberately; the read-only
// process path stays strict while the send path lets an empty body or an
// implausible address through.
func ValidateForSend(msg *Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipients specified in the email file")
	}
	if msg.Subject == "" {
		return fmt.Errorf("no subject specified in the email file")
	}
	return nil
}

// PlausibleAddress reports whether addr contains both "@" and ".".
func PlausibleAddress(addr string) bool {
	return strings.Contains(addr, "@") && strings.Contains(addr, ".")
}
