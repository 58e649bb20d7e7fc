// Package main is the entry point for the agent tool server.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/shineum/mcp-agent-lite/internal/config"
	"github.com/shineum/mcp-agent-lite/internal/provider"
	"github.com/shineum/mcp-agent-lite/internal/provider/outlook"
	"github.com/shineum/mcp-agent-lite/internal/provider/ses"
	"github.com/shineum/mcp-agent-lite/internal/provider/smtp"
	"github.com/shineum/mcp-agent-lite/internal/provider/stdout"
	"github.com/shineum/mcp-agent-lite/internal/server"
	agenttls "github.com/shineum/mcp-agent-lite/internal/tls"
	"github.com/shineum/mcp-agent-lite/internal/tools"
)

// shutdownTimeout bounds the graceful shutdown wait for in-flight requests.
const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file (optional)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Logging.Level)

	if cfg.Server.APIKey == "" {
		slog.Warn("AGENT_API_KEY not set; tool endpoints are unauthenticated")
	}

	prov := selectProvider(cfg)
	registry := buildRegistry(prov)

	handler := server.New(cfg.Server.Name, cfg.Server.APIKey, registry, slog.Default())

	srv := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute, // sends can block on the mail client starting up
		IdleTimeout:  60 * time.Second,
	}

	tlsEnabled := cfg.TLSConfigured()
	if tlsEnabled {
		tlsConfig, err := agenttls.LoadOrGenerateTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		if err != nil {
			slog.Error("failed to setup TLS", "error", err)
			os.Exit(1)
		}
		srv.TLSConfig = tlsConfig
	}

	slog.Info("starting mcp-agent-lite",
		"name", cfg.Server.Name,
		"listen", cfg.Server.Listen,
		"provider", prov.Name(),
		"tools", len(registry.List()),
		"tls", tlsEnabled,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	errCh := make(chan error, 1)
	go func() {
		if tlsEnabled {
			errCh <- srv.ListenAndServeTLS("", "")
		} else {
			errCh <- srv.ListenAndServe()
		}
	}()

	select {
	case sig := <-sigCh:
		slog.Info("received signal, initiating shutdown", "signal", sig)
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}

	slog.Info("mcp-agent-lite stopped")
}

// loadConfig loads configuration from the specified path (YAML + env override)
// or from environment variables only if no path is given.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// setupLogger configures the global slog logger with JSON output and the
// specified log level.
func setupLogger(level string) {
	var logLevel slog.Level

	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// buildRegistry wires every built-in tool against the chosen mail provider.
func buildRegistry(prov provider.Provider) *tools.Registry {
	registry := tools.NewRegistry()

	for _, def := range tools.DemoDefinitions() {
		registry.Register(def)
	}
	for _, def := range tools.DataDefinitions() {
		registry.Register(def)
	}
	registry.Register(tools.NewSendEmailTool(prov).Definition())
	for _, def := range tools.NewEmailFileTool(prov).Definitions() {
		registry.Register(def)
	}

	return registry
}

// selectProvider chooses the mail delivery backend based on configuration.
// If the PROVIDER env var or config field is set, it takes precedence.
// Otherwise, it falls back to auto-detection (Outlook if a path is
// configured, then SES, then SMTP, else stdout).
func selectProvider(cfg *config.Config) provider.Provider {
	switch cfg.Provider {
	case "outlook":
		slog.Info("using Outlook provider", "exe_path", cfg.Outlook.ExePath)
		return outlook.New(outlook.ProviderConfig{ExePath: cfg.Outlook.ExePath})

	case "ses":
		if !cfg.SESConfigured() {
			slog.Error("SES provider selected but SES_REGION and SES_SENDER are required")
			os.Exit(1)
		}
		slog.Info("using AWS SES provider",
			"region", cfg.SES.Region,
			"sender", cfg.SES.Sender,
		)
		p, err := ses.New(context.Background(), ses.ProviderConfig{
			Region:          cfg.SES.Region,
			AccessKeyID:     cfg.SES.AccessKeyID,
			SecretAccessKey: cfg.SES.SecretAccessKey,
			Sender:          cfg.SES.Sender,
		})
		if err != nil {
			slog.Error("failed to create SES provider", "error", err)
			os.Exit(1)
		}
		return p

	case "smtp":
		if !cfg.SMTPConfigured() {
			slog.Error("SMTP provider selected but SMTP_ADDR and SMTP_SENDER are required")
			os.Exit(1)
		}
		slog.Info("using SMTP relay provider",
			"addr", cfg.SMTP.Addr,
			"sender", cfg.SMTP.Sender,
		)
		return smtp.New(smtp.ProviderConfig{
			Addr:     cfg.SMTP.Addr,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			Sender:   cfg.SMTP.Sender,
		})

	case "stdout":
		slog.Info("using stdout provider")
		return stdout.New()

	case "":
		// Auto-detection fallback
		if cfg.Outlook.ExePath != "" {
			slog.Info("using Outlook provider (auto-detected)", "exe_path", cfg.Outlook.ExePath)
			return outlook.New(outlook.ProviderConfig{ExePath: cfg.Outlook.ExePath})
		}
		if cfg.SESConfigured() {
			slog.Info("using AWS SES provider (auto-detected)",
				"region", cfg.SES.Region,
				"sender", cfg.SES.Sender,
			)
			p, err := ses.New(context.Background(), ses.ProviderConfig{
				Region:          cfg.SES.Region,
				AccessKeyID:     cfg.SES.AccessKeyID,
				SecretAccessKey: cfg.SES.SecretAccessKey,
				Sender:          cfg.SES.Sender,
			})
			if err != nil {
				slog.Error("failed to create SES provider", "error", err)
				os.Exit(1)
			}
			return p
		}
		if cfg.SMTPConfigured() {
			slog.Info("using SMTP relay provider (auto-detected)",
				"addr", cfg.SMTP.Addr,
				"sender", cfg.SMTP.Sender,
			)
			return smtp.New(smtp.ProviderConfig{
				Addr:     cfg.SMTP.Addr,
				Username: cfg.SMTP.Username,
				Password: cfg.SMTP.Password,
				Sender:   cfg.SMTP.Sender,
			})
		}
		slog.Info("no provider configured, using stdout provider")
		return stdout.New()

	default:
		slog.Error("unknown provider", "provider", cfg.Provider)
		os.Exit(1)
		return nil
	}
}
