// Package outlook implements a Provider that drives the Outlook desktop
// client through its COM automation interface.
//
// Sending happens in two stages: first the client process is located (and
// started if absent), then a generated PowerShell script composes and sends
// the mail item. The automation call can block for the whole startup wait,
// so callers should expect Send to take up to half a minute on a cold start.
package outlook

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/shineum/mcp-agent-lite/internal/email"
)

// processName is the executable name the client runs under.
const processName = "OUTLOOK.EXE"

// startupPollAttempts and startupPollInterval bound the wait for the client
// to appear after launching it.
const (
	startupPollAttempts = 30
	startupPollInterval = 1 * time.Second

	// settleDelay gives the client time to finish initializing after its
	// process first shows up.
	settleDelay = 5 * time.Second
)

// ProviderConfig holds the configuration for creating a Provider.
type ProviderConfig struct {
	// ExePath is the path to the Outlook executable, used to start the
	// client when it is not already running.
	ExePath string
}

// Provider sends messages through the local Outlook client.
type Provider struct {
	exePath      string
	pollInterval time.Duration
	settleDelay  time.Duration

	// The exec seams below are swappable in tests.
	listProcessNames func(ctx context.Context) ([]string, error)
	startClient      func(exePath string) error
	runScript        func(ctx context.Context, script string) ([]byte, error)
}

// New creates a new Outlook Provider.
func New(cfg ProviderConfig) *Provider {
	return &Provider{
		exePath:          cfg.ExePath,
		pollInterval:     startupPollInterval,
		settleDelay:      settleDelay,
		listProcessNames: listProcessNames,
		startClient:      startClient,
		runScript:        runScript,
	}
}

// Send composes and sends msg through the client. It blocks until the client
// is running (starting it if needed) and the automation script completes.
func (p *Provider) Send(ctx context.Context, msg *email.Message) error {
	if err := p.ensureRunning(ctx); err != nil {
		return err
	}

	script := buildScript(msg)
	out, err := p.runScript(ctx, script)
	if err != nil {
		return fmt.Errorf("mail client automation failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "outlook"
}

// ensureRunning checks for the client process and starts it if absent,
// polling until it appears and then waiting for it to settle.
func (p *Provider) ensureRunning(ctx context.Context) error {
	running, err := p.clientRunning(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect processes: %w", err)
	}
	if running {
		return nil
	}

	if p.exePath == "" {
		return fmt.Errorf("mail client is not running and no executable path is configured")
	}

	if err := p.startClient(p.exePath); err != nil {
		return fmt.Errorf("failed to start mail client: %w", err)
	}

	for attempt := 0; attempt < startupPollAttempts; attempt++ {
		if err := sleepWithContext(ctx, p.pollInterval); err != nil {
			return err
		}
		running, err := p.clientRunning(ctx)
		if err != nil {
			return fmt.Errorf("failed to inspect processes: %w", err)
		}
		if running {
			return sleepWithContext(ctx, p.settleDelay)
		}
	}

	return fmt.Errorf("timed out waiting for mail client to start")
}

// clientRunning reports whether the client process is present.
func (p *Provider) clientRunning(ctx context.Context) (bool, error) {
	names, err := p.listProcessNames(ctx)
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if strings.EqualFold(name, processName) {
			return true, nil
		}
	}
	return false, nil
}

// buildScript renders the PowerShell COM automation script for msg.
// Recipient lists are joined with semicolons, matching the client's
// recipient field format.
func buildScript(msg *email.Message) string {
	var b strings.Builder

	b.WriteString("$outlook = New-Object -ComObject Outlook.Application\n")
	b.WriteString("$mail = $outlook.CreateItem(0)\n")
	fmt.Fprintf(&b, "$mail.To = %s\n", psQuote(strings.Join(msg.To, "; ")))
	if len(msg.Cc) > 0 {
		fmt.Fprintf(&b, "$mail.CC = %s\n", psQuote(strings.Join(msg.Cc, "; ")))
	}
	if len(msg.Bcc) > 0 {
		fmt.Fprintf(&b, "$mail.BCC = %s\n", psQuote(strings.Join(msg.Bcc, "; ")))
	}
	fmt.Fprintf(&b, "$mail.Subject = %s\n", psQuote(msg.Subject))
	fmt.Fprintf(&b, "$mail.Body = %s\n", psQuote(msg.Body))
	for _, path := range msg.Attachments {
		fmt.Fprintf(&b, "$mail.Attachments.Add(%s) | Out-Null\n", psQuote(path))
	}
	b.WriteString("$mail.Send()\n")

	return b.String()
}

// psQuote wraps s in PowerShell single quotes, doubling embedded quotes.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// listProcessNames returns the executable names of all running processes.
func listProcessNames(ctx context.Context) ([]string, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(procs))
	for _, proc := range procs {
		name, err := proc.NameWithContext(ctx)
		if err != nil {
			// Processes can exit between listing and inspection.
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// startClient launches the client executable detached from the agent.
func startClient(exePath string) error {
	cmd := exec.Command("cmd", "/c", "start", "", exePath)
	return cmd.Start()
}

// runScript executes a PowerShell script and returns its combined output.
func runScript(ctx context.Context, script string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", script)
	return cmd.CombinedOutput()
}

// sleepWithContext waits for the specified duration or until the context is cancelled.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
