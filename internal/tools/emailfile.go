package tools

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/shineum/mcp-agent-lite/internal/email"
	"github.com/shineum/mcp-agent-lite/internal/parser"
	"github.com/shineum/mcp-agent-lite/internal/provider"
)

// EmailFileTool exposes the email file pipeline as two tools:
// process_email_file (parse and strictly validate, read-only) and
// send_email_from_file (parse, loosely validate, hand off to the provider).
//
// The two paths validate with different rigor. The process path runs the
// full check including body, address plausibility, and attachment
// existence; the send path only requires recipients and a subject.
type EmailFileTool struct {
	sender provider.Provider
}

// NewEmailFileTool creates an EmailFileTool sending through the given provider.
func NewEmailFileTool(sender provider.Provider) *EmailFileTool {
	return &EmailFileTool{sender: sender}
}

// FileInput is the payload for both email file tools.
type FileInput struct {
	FilePath string `json:"file_path" jsonschema_description:"Path to the email text file."`
}

// Definitions returns the tool definitions for the email file pipeline.
func (t *EmailFileTool) Definitions() []Definition {
	return []Definition{
		{
			Name:        "process_email_file",
			Description: "Parse and validate an email text file without sending it. Returns the extracted email record.",
			InputSchema: GenerateSchema[FileInput](),
			Handler:     t.process,
		},
		{
			Name:        "send_email_from_file",
			Description: "Parse an email text file and send it through the configured mail provider.",
			InputSchema: GenerateSchema[FileInput](),
			Handler:     t.sendFromFile,
		},
	}
}

func (t *EmailFileTool) process(_ context.Context, input json.RawMessage) *Result {
	var in FileInput
	if err := json.Unmarshal(input, &in); err != nil {
		return Errorf("invalid input: %v", err)
	}
	return t.ProcessFile(in.FilePath)
}

// ProcessFile runs the read-only pipeline: path check, parse, full
// validation. It never invokes the provider.
func (t *EmailFileTool) ProcessFile(path string) *Result {
	slog.Info("processing email file", "path", path)

	if _, err := os.Stat(path); err != nil {
		return Errorf("email file not found: %s", path)
	}

	msg, err := parser.ParseFile(path)
	if err != nil {
		return Errorf("failed to process email file: %v", err)
	}

	if err := email.Validate(msg); err != nil {
		return Errorf("%s", err)
	}

	return Success("email file processed successfully", msg)
}

func (t *EmailFileTool) sendFromFile(ctx context.Context, input json.RawMessage) *Result {
	var in FileInput
	if err := json.Unmarshal(input, &in); err != nil {
		return Errorf("invalid input: %v", err)
	}
	return t.SendFromFile(ctx, in.FilePath)
}

// SendFromFile parses the file, applies the reduced validation, and hands the
// record to the provider. The provider's envelope is returned unchanged.
func (t *EmailFileTool) SendFromFile(ctx context.Context, path string) *Result {
	if path == "" {
		return Errorf("no file path provided")
	}

	msg, err := parser.ParseFile(path)
	if err != nil {
		return Errorf("failed to send email: %v", err)
	}

	if err := email.ValidateForSend(msg); err != nil {
		return Errorf("%s", err)
	}

	return sendMessage(ctx, t.sender, msg)
}
