package detector

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/example/phishcheck/internal/target"
)

// DefaultAbuseIPDBURL is the AbuseIPDB check endpoint.
const DefaultAbuseIPDBURL = "https://api.abuseipdb.com/api/v2/check"

// LookupFunc resolves a hostname to addresses. Split out so tests can avoid
// live DNS.
type LookupFunc func(ctx context.Context, host string) ([]net.IP, error)

// ReputationDetector resolves the target and, when an API key is configured,
// consults AbuseIPDB for the address's abuse confidence score.
type ReputationDetector struct {
	client *http.Client
	lookup LookupFunc
	apiURL string
	apiKey string
}

// NewReputationDetector builds an IP-reputation detector. client and lookup
// may be nil to use defaults; an empty apiKey skips the AbuseIPDB call.
func NewReputationDetector(client *http.Client, lookup LookupFunc, apiURL, apiKey string) *ReputationDetector {
	if client == nil {
		client = &http.Client{Timeout: 3 * time.Second}
	}
	if lookup == nil {
		lookup = func(ctx context.Context, host string) ([]net.IP, error) {
			return net.DefaultResolver.LookupIP(ctx, "ip4", host)
		}
	}
	if apiURL == "" {
		apiURL = DefaultAbuseIPDBURL
	}
	return &ReputationDetector{client: client, lookup: lookup, apiURL: apiURL, apiKey: apiKey}
}

// Name implements Detector.
func (d *ReputationDetector) Name() string { return NameReputation }

// Detect implements Detector. An unresolvable hostname is mildly suspicious
// in its own right and scores 5 as a failure.
func (d *ReputationDetector) Detect(ctx context.Context, tgt target.Target) (Result, error) {
	ips, err := d.lookup(ctx, tgt.Hostname)
	if err != nil || len(ips) == 0 {
		return Result{
			Success: false,
			Score:   5,
			Flags:   []string{"DNS_RESOLUTION_FAILED"},
			Details: map[string]interface{}{"error": "could not resolve ip"},
		}, nil
	}

	ip := ips[0].String()
	details := map[string]interface{}{"ip": ip}

	if d.apiKey == "" {
		return Result{Success: true, Score: 0, Details: details}, nil
	}

	abuse, err := d.checkAbuseIPDB(ctx, ip)
	if err != nil {
		// Reputation lookup is best-effort; resolution alone still succeeds.
		details["abuseError"] = err.Error()
		return Result{Success: true, Score: 0, Details: details}, nil
	}

	score := 0
	var flags []string
	switch {
	case abuse.ConfidenceScore > 75:
		score = 40
		flags = append(flags, "HIGH_ABUSE_SCORE")
	case abuse.ConfidenceScore > 50:
		score = 25
		flags = append(flags, "MEDIUM_ABUSE_SCORE")
	case abuse.ConfidenceScore > 25:
		score = 10
		flags = append(flags, "LOW_ABUSE_SCORE")
	}

	details["abuseScore"] = abuse.ConfidenceScore
	details["totalReports"] = abuse.TotalReports

	return Result{Success: true, Score: score, Flags: flags, Details: details}, nil
}

type abuseData struct {
	ConfidenceScore int  `json:"abuseConfidenceScore"`
	TotalReports    int  `json:"totalReports"`
	IsWhitelisted   bool `json:"isWhitelisted"`
}

func (d *ReputationDetector) checkAbuseIPDB(ctx context.Context, ip string) (abuseData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.apiURL, nil)
	if err != nil {
		return abuseData{}, err
	}
	q := req.URL.Query()
	q.Set("ipAddress", ip)
	q.Set("maxAgeInDays", "90")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Key", d.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return abuseData{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Data abuseData `json:"data"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err != nil {
		return abuseData{}, err
	}
	return payload.Data, nil
}
