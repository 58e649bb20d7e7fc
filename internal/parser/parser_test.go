package parser

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseCompleteFile(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"TO: alice@example.com, bob@example.com",
		"CC: carol@example.com",
		"BCC: dave@example.com",
		"SUBJECT: Quarterly report",
		"BODY: Hello,",
		"please find the report attached.",
		"ATTACHMENTS:",
		"reports/q3.pdf",
		"reports/q3.xlsx",
	}, "\n")

	msg := Parse(content)

	if !reflect.DeepEqual(msg.To, []string{"alice@example.com", "bob@example.com"}) {
		t.Errorf("To: got %v, want [alice@example.com bob@example.com]", msg.To)
	}
	if !reflect.DeepEqual(msg.Cc, []string{"carol@example.com"}) {
		t.Errorf("Cc: got %v, want [carol@example.com]", msg.Cc)
	}
	if !reflect.DeepEqual(msg.Bcc, []string{"dave@example.com"}) {
		t.Errorf("Bcc: got %v, want [dave@example.com]", msg.Bcc)
	}
	if msg.Subject != "Quarterly report" {
		t.Errorf("Subject: got %q, want %q", msg.Subject, "Quarterly report")
	}
	if msg.Body != "Hello,\nplease find the report attached." {
		t.Errorf("Body: got %q", msg.Body)
	}
	if !reflect.DeepEqual(msg.Attachments, []string{"reports/q3.pdf", "reports/q3.xlsx"}) {
		t.Errorf("Attachments: got %v", msg.Attachments)
	}
}

func TestParseIsTotal(t *testing.T) {
	t.Parallel()

	// No input can make the parser fail; it returns an empty record instead.
	inputs := []string{
		"",
		"\n\n\n",
		"no headers at all\njust prose",
		"TO",
		":::",
		"SUBJECT:",
	}

	for _, input := range inputs {
		msg := Parse(input)
		if msg == nil {
			t.Fatalf("Parse(%q) returned nil", input)
		}
	}
}

func TestParseIsPure(t *testing.T) {
	t.Parallel()

	content := "TO: a@b.com\nSUBJECT: Hi\nBODY: one\ntwo"

	first := Parse(content)
	second := Parse(content)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated parse differs: %+v vs %+v", first, second)
	}
}

func TestParseLastHeaderWins(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"SUBJECT: A",
		"TO: first@example.com",
		"SUBJECT: B",
		"TO: second@example.com",
	}, "\n")

	msg := Parse(content)

	if msg.Subject != "B" {
		t.Errorf("Subject: got %q, want %q", msg.Subject, "B")
	}
	if !reflect.DeepEqual(msg.To, []string{"second@example.com"}) {
		t.Errorf("To: got %v, want [second@example.com]", msg.To)
	}
}

func TestParseBodyAndAttachmentsAccumulate(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"BODY: first",
		"ATTACHMENTS: one.txt",
		"BODY: second",
		"ATTACHMENTS:",
		"two.txt",
	}, "\n")

	msg := Parse(content)

	if msg.Body != "first\nsecond" {
		t.Errorf("Body: got %q, want %q", msg.Body, "first\nsecond")
	}
	if !reflect.DeepEqual(msg.Attachments, []string{"one.txt", "two.txt"}) {
		t.Errorf("Attachments: got %v, want [one.txt two.txt]", msg.Attachments)
	}
}

func TestParseEmptyBodyHeaderContributesEmptyLine(t *testing.T) {
	t.Parallel()

	msg := Parse("BODY:\nsecond line")

	if msg.Body != "\nsecond line" {
		t.Errorf("Body: got %q, want %q", msg.Body, "\nsecond line")
	}
}

func TestParseHeadersAreCaseInsensitive(t *testing.T) {
	t.Parallel()

	content := "to: a@b.com\nSubject: mixed\nbOdY: text"

	msg := Parse(content)

	if !reflect.DeepEqual(msg.To, []string{"a@b.com"}) {
		t.Errorf("To: got %v, want [a@b.com]", msg.To)
	}
	if msg.Subject != "mixed" {
		t.Errorf("Subject: got %q, want %q", msg.Subject, "mixed")
	}
	if msg.Body != "text" {
		t.Errorf("Body: got %q, want %q", msg.Body, "text")
	}
}

func TestParseBlankLinesAreSkipped(t *testing.T) {
	t.Parallel()

	content := "BODY: one\n\n\ntwo"

	msg := Parse(content)

	// Blank lines never terminate a section and carry no content.
	if msg.Body != "one\ntwo" {
		t.Errorf("Body: got %q, want %q", msg.Body, "one\ntwo")
	}
}

func TestParseDiscardsOrphanContinuationLines(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"stray line before any section",
		"SUBJECT: Hi",
		"this belongs to no accumulating section",
		"TO: a@b.com",
		"neither does this",
	}, "\n")

	msg := Parse(content)

	if msg.Subject != "Hi" {
		t.Errorf("Subject: got %q, want %q", msg.Subject, "Hi")
	}
	if msg.Body != "" {
		t.Errorf("Body: got %q, want empty", msg.Body)
	}
	if len(msg.Attachments) != 0 {
		t.Errorf("Attachments: got %v, want none", msg.Attachments)
	}
}

func TestParseEmptyToHeaderYieldsSingleEmptyAddress(t *testing.T) {
	t.Parallel()

	// A TO: line with no value still produces one (empty) recipient, so the
	// record is not treated as having no recipients at all.
	msg := Parse("TO:\nSUBJECT: Hi\nBODY: x")

	if !reflect.DeepEqual(msg.To, []string{""}) {
		t.Errorf("To: got %v, want a single empty string", msg.To)
	}
}

func TestParseNearMissPrefixIsNotAHeader(t *testing.T) {
	t.Parallel()

	// "TODAY:" shares a prefix with "TO:" but is not a section header.
	msg := Parse("TODAY: not a recipient list")

	if len(msg.To) != 0 {
		t.Errorf("To: got %v, want none", msg.To)
	}
}

func TestParseInlineAttachmentValue(t *testing.T) {
	t.Parallel()

	msg := Parse("ATTACHMENTS: inline.txt\nfollowing.txt")

	if !reflect.DeepEqual(msg.Attachments, []string{"inline.txt", "following.txt"}) {
		t.Errorf("Attachments: got %v", msg.Attachments)
	}
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "email.txt")
	content := "TO: x@y.com\nSUBJECT: Hi\nBODY: Hello\nworld"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	msg, err := ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(msg.To, []string{"x@y.com"}) {
		t.Errorf("To: got %v, want [x@y.com]", msg.To)
	}
	if msg.Subject != "Hi" {
		t.Errorf("Subject: got %q, want %q", msg.Subject, "Hi")
	}
	if msg.Body != "Hello\nworld" {
		t.Errorf("Body: got %q, want %q", msg.Body, "Hello\nworld")
	}
}

func TestParseFileMissing(t *testing.T) {
	t.Parallel()

	_, err := ParseFile(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
