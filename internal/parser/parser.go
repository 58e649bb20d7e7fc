// Package parser implements the line-oriented email file format used by the
// email tools.
//
// A file consists of six case-insensitive section headers:
//
//	TO: a@example.com, b@example.com
//	CC: c@example.com
//	BCC: d@example.com
//	SUBJECT: a single line
//	BODY: first body line
//	more body lines...
//	ATTACHMENTS:
//	path/to/one.pdf
//	path/to/two.docx
//
// TO, CC, BCC and SUBJECT are replaced when their header repeats (last one
// wins); BODY and ATTACHMENTS accumulate across repeated headers. Lines that
// belong to no accumulating section are discarded. Parsing never fails:
// malformed input simply yields an incomplete message, which validation
// catches later.
package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/shineum/mcp-agent-lite/internal/email"
)

// section is the parser's current-section state.
type section int

const (
	sectionNone section = iota
	sectionTo
	sectionCc
	sectionBcc
	sectionSubject
	sectionBody
	sectionAttachments
)

// sectionsByPrefix maps an upper-cased header name to its section tag.
var sectionsByPrefix = map[string]section{
	"TO":          sectionTo,
	"CC":          sectionCc,
	"BCC":         sectionBcc,
	"SUBJECT":     sectionSubject,
	"BODY":        sectionBody,
	"ATTACHMENTS": sectionAttachments,
}

// ParseFile reads path and parses its content. The only possible error is an
// I/O failure; the content itself cannot be rejected.
func ParseFile(path string) (*email.Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read email file: %w", err)
	}
	return Parse(string(data)), nil
}

// Parse parses email file content into a Message. It is a pure function of
// its input and always returns a well-formed message, possibly with empty
// fields.
func Parse(content string) *email.Message {
	msg := &email.Message{}

	current := sectionNone
	var bodyLines []string

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if sec, value, ok := splitHeader(line); ok {
			current = sec
			switch sec {
			case sectionTo:
				msg.To = splitAddresses(value)
			case sectionCc:
				msg.Cc = splitAddresses(value)
			case sectionBcc:
				msg.Bcc = splitAddresses(value)
			case sectionSubject:
				msg.Subject = value
			case sectionBody:
				// An empty inline value still contributes an empty
				// first body line.
				bodyLines = append(bodyLines, value)
			case sectionAttachments:
				if value != "" {
					msg.Attachments = append(msg.Attachments, value)
				}
			}
			continue
		}

		// Continuation line of the active section. Only BODY and
		// ATTACHMENTS accept continuations; anything else is discarded.
		switch current {
		case sectionBody:
			bodyLines = append(bodyLines, line)
		case sectionAttachments:
			msg.Attachments = append(msg.Attachments, line)
		}
	}

	msg.Body = strings.Join(bodyLines, "\n")
	return msg
}

// splitHeader checks whether line starts with a recognized section header and
// returns the section tag and the trimmed inline value after the colon.
func splitHeader(line string) (section, string, bool) {
	name, value, found := strings.Cut(line, ":")
	if !found {
		return sectionNone, "", false
	}
	sec, ok := sectionsByPrefix[strings.ToUpper(name)]
	if !ok {
		return sectionNone, "", false
	}
	return sec, strings.TrimSpace(value), true
}

// splitAddresses splits a comma-separated address list and trims each entry.
func splitAddresses(value string) []string {
	parts := strings.Split(value, ",")
	addrs := make([]string, 0, len(parts))
	for _, p := range parts {
		addrs = append(addrs, strings.TrimSpace(p))
	}
	return addrs
}
