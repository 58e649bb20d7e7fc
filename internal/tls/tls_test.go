package tls

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	stdtls "crypto/tls"
	"crypto/x509"
	"slices"
	"testing"
	"time"
)

func TestGenerateSelfSignedCert(t *testing.T) {
	t.Parallel()

	cert, err := GenerateSelfSignedCert()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cert == nil {
		t.Fatal("certificate is nil")
	}

	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		t.Fatalf("failed to parse leaf certificate: %v", err)
	}

	// The generated certificate must satisfy a browser or curl client
	// hitting the agent's API on localhost.
	if leaf.Subject.CommonName != "localhost" {
		t.Errorf("CN: got %q, want %q", leaf.Subject.CommonName, "localhost")
	}
	if !slices.Contains(leaf.DNSNames, "localhost") {
		t.Errorf("DNS SANs %v missing localhost", leaf.DNSNames)
	}

	hasLoopback := false
	for _, ip := range leaf.IPAddresses {
		if ip.IsLoopback() {
			hasLoopback = true
		}
	}
	if !hasLoopback {
		t.Errorf("IP SANs %v missing a loopback address", leaf.IPAddresses)
	}

	if got := leaf.NotAfter.Sub(leaf.NotBefore); got < 364*24*time.Hour || got > 366*24*time.Hour {
		t.Errorf("validity: got %v, want about one year", got)
	}

	key, ok := leaf.PublicKey.(*ecdsa.PublicKey)
	if !ok {
		t.Fatalf("public key: got %T, want *ecdsa.PublicKey", leaf.PublicKey)
	}
	if key.Curve != elliptic.P256() {
		t.Errorf("curve: got %v, want P-256", key.Curve.Params().Name)
	}

	if leaf.Issuer.CommonName != leaf.Subject.CommonName {
		t.Errorf("issuer CN %q != subject CN %q, certificate is not self-signed",
			leaf.Issuer.CommonName, leaf.Subject.CommonName)
	}
}

func TestLoadOrGenerateTLSFallsBackToSelfSigned(t *testing.T) {
	t.Parallel()

	// With no file paths configured the server still comes up over TLS.
	cfg, err := LoadOrGenerateTLS("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("TLS config is nil")
	}
	if len(cfg.Certificates) != 1 {
		t.Errorf("Certificates: got %d, want 1", len(cfg.Certificates))
	}
	if cfg.MinVersion != stdtls.VersionTLS12 {
		t.Errorf("MinVersion: got %d, want TLS 1.2 (%d)", cfg.MinVersion, stdtls.VersionTLS12)
	}
}

func TestLoadOrGenerateTLSMissingFiles(t *testing.T) {
	t.Parallel()

	// Explicitly configured paths that do not exist are an error, not a
	// silent fallback.
	if _, err := LoadOrGenerateTLS("/nonexistent/cert.pem", "/nonexistent/key.pem"); err == nil {
		t.Error("expected error for nonexistent certificate files")
	}
}
