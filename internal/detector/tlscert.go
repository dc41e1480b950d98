package detector

import (
	"context"
	"crypto/tls"
	"net"
	"time"

	"github.com/example/phishcheck/internal/target"
)

// SSLDetector inspects the certificate a host presents on port 443. Plain-http
// targets are scored without connecting. Verification is deliberately disabled
// so self-signed and expired certificates can be examined instead of rejected.
type SSLDetector struct {
	// Port is the TLS port to dial, "443" unless overridden.
	Port string
}

// NewSSLDetector returns a certificate inspector for the standard HTTPS port.
func NewSSLDetector() *SSLDetector {
	return &SSLDetector{Port: "443"}
}

// Name implements Detector.
func (d *SSLDetector) Name() string { return NameSSL }

// Detect implements Detector. Connection-level failures are absorbed into a
// scored failure result per the detector contract.
func (d *SSLDetector) Detect(ctx context.Context, tgt target.Target) (Result, error) {
	if tgt.Protocol != "https" {
		return Result{
			Success: true,
			Score:   20,
			Flags:   []string{"NO_HTTPS"},
			Details: map[string]interface{}{"protocol": tgt.Protocol},
		}, nil
	}

	dialer := tls.Dialer{
		Config: &tls.Config{
			ServerName:         tgt.Hostname,
			InsecureSkipVerify: true, // #nosec G402 -- inspecting bad certs is the point
		},
	}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(tgt.Hostname, d.Port))
	if err != nil {
		return Result{
			Success: false,
			Score:   15,
			Flags:   []string{"SSL_CONNECTION_ERROR"},
			Details: map[string]interface{}{"error": err.Error()},
		}, nil
	}
	defer conn.Close()

	state := conn.(*tls.Conn).ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return Result{
			Success: false,
			Score:   15,
			Flags:   []string{"INVALID_CERT"},
			Details: map[string]interface{}{"error": "no certificate presented"},
		}, nil
	}

	cert := state.PeerCertificates[0]
	now := time.Now()
	daysUntilExpiry := int(cert.NotAfter.Sub(now).Hours() / 24)

	score := 0
	var flags []string

	switch {
	case now.After(cert.NotAfter):
		flags = append(flags, "CERT_EXPIRED")
		score += 30
	case now.Before(cert.NotBefore):
		flags = append(flags, "CERT_NOT_YET_VALID")
		score += 25
	case daysUntilExpiry < 30:
		flags = append(flags, "CERT_EXPIRING_SOON")
		score += 10
	}

	// A certificate that verifies its own signature is self-signed.
	selfSigned := cert.CheckSignatureFrom(cert) == nil
	if selfSigned {
		flags = append(flags, "SELF_SIGNED_CERT")
		score += 20
	}

	issuer := ""
	if len(cert.Issuer.Organization) > 0 {
		issuer = cert.Issuer.Organization[0]
	}

	return Result{
		Success: true,
		Score:   score,
		Flags:   flags,
		Details: map[string]interface{}{
			"issuer":          issuer,
			"subject":         cert.Subject.CommonName,
			"validFrom":       cert.NotBefore.UTC().Format(time.RFC3339),
			"validTo":         cert.NotAfter.UTC().Format(time.RFC3339),
			"daysUntilExpiry": daysUntilExpiry,
			"selfSigned":      selfSigned,
		},
	}, nil
}
