package detector

import (
	"context"
	"strings"
	"testing"

	"github.com/example/phishcheck/internal/target"
)

func TestHeuristicCleanHostname(t *testing.T) {
	d := NewHeuristicDetector()

	res, err := d.Detect(context.Background(), target.Target{Hostname: "example.com"})
	if err != nil {
		t.Fatalf("detect: %v", err)
	}

	if !res.Success || res.Score != 0 || len(res.Flags) != 0 {
		t.Fatalf("expected a clean result, got %#v", res)
	}
}

func TestHeuristicFlags(t *testing.T) {
	tests := []struct {
		name     string
		tgt      target.Target
		wantFlag string
	}{
		{
			name:     "long hostname",
			tgt:      target.Target{Hostname: strings.Repeat("a", 48) + ".com"},
			wantFlag: "LONG_HOSTNAME",
		},
		{
			name:     "excessive dashes",
			tgt:      target.Target{Hostname: "a-b-c-d-e.com"},
			wantFlag: "EXCESSIVE_DASHES",
		},
		{
			name:     "excessive digits",
			tgt:      target.Target{Hostname: "promo12345.com"},
			wantFlag: "EXCESSIVE_DIGITS",
		},
		{
			name:     "at symbol",
			tgt:      target.Target{Hostname: "example.com", Query: "next=user@mail.com"},
			wantFlag: "AT_SYMBOL",
		},
		{
			name:     "raw ip hostname",
			tgt:      target.Target{Hostname: "198.51.100.23"},
			wantFlag: "IP_ADDRESS",
		},
		{
			name:     "deep subdomain",
			tgt:      target.Target{Hostname: "a.b.c.d.example.com", Subdomain: "a.b.c.d"},
			wantFlag: "DEEP_SUBDOMAIN",
		},
	}

	d := NewHeuristicDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := d.Detect(context.Background(), tt.tgt)
			if err != nil {
				t.Fatalf("detect: %v", err)
			}
			if !res.HasFlag(tt.wantFlag) {
				t.Fatalf("expected %s, got %v", tt.wantFlag, res.Flags)
			}
			if res.Score <= 0 {
				t.Fatalf("flagged result should score above zero, got %d", res.Score)
			}
		})
	}
}

func TestHeuristicKeywordScoreIsCapped(t *testing.T) {
	d := NewHeuristicDetector()

	res, err := d.Detect(context.Background(), target.Target{
		Hostname: "example.com",
		Path:     "/login-verify-secure-account-update-confirm",
	})
	if err != nil {
		t.Fatalf("detect: %v", err)
	}

	if !res.HasFlag("SUSPICIOUS_KEYWORDS") {
		t.Fatalf("expected SUSPICIOUS_KEYWORDS, got %v", res.Flags)
	}
	if res.Score != 20 {
		t.Fatalf("keyword score must cap at 20, got %d", res.Score)
	}
}
