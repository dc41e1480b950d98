package detector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/example/phishcheck/internal/target"
)

// DefaultRDAPBootstrapURL serves registration metadata for any TLD.
const DefaultRDAPBootstrapURL = "https://rdap-bootstrap.arin.net/bootstrap/domain"

// DomainAgeDetector looks up the registration date of the root domain via
// RDAP. Young domains are a strong phishing signal; failures score zero.
type DomainAgeDetector struct {
	client  *http.Client
	baseURL string
	enabled bool
}

// NewDomainAgeDetector builds an RDAP-backed age detector with an optional
// custom HTTP client. A disabled detector reports a neutral failure without
// touching the network.
func NewDomainAgeDetector(client *http.Client, baseURL string, enabled bool) *DomainAgeDetector {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultRDAPBootstrapURL
	}
	return &DomainAgeDetector{client: client, baseURL: baseURL, enabled: enabled}
}

// Name implements Detector.
func (d *DomainAgeDetector) Name() string { return NameDomainAge }

type rdapResponse struct {
	Events []struct {
		EventAction string `json:"eventAction"`
		EventDate   string `json:"eventDate"`
	} `json:"events"`
}

// Detect implements Detector.
func (d *DomainAgeDetector) Detect(ctx context.Context, tgt target.Target) (Result, error) {
	if !d.enabled {
		return Result{
			Success: false,
			Score:   0,
			Flags:   []string{"DOMAIN_AGE_DISABLED"},
			Details: map[string]interface{}{"message": "domain age check is disabled"},
		}, nil
	}

	url := fmt.Sprintf("%s/%s", d.baseURL, tgt.RootDomain)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return failedAgeCheck(err.Error()), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failedAgeCheck(fmt.Sprintf("rdap status %d", resp.StatusCode)), nil
	}

	var rdap rdapResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&rdap); err != nil {
		return failedAgeCheck("could not decode rdap response"), nil
	}

	created, ok := creationDate(rdap)
	if !ok {
		return Result{
			Success: false,
			Score:   0,
			Flags:   []string{"RDAP_PARSE_FAILED"},
			Details: map[string]interface{}{"error": "no registration event in rdap data"},
		}, nil
	}

	ageDays := int(time.Since(created).Hours() / 24)
	ageYears := math.Round(float64(ageDays)/365*100) / 100

	score := 0
	var flags []string
	switch {
	case ageDays < 0:
		flags = append(flags, "INVALID_CREATION_DATE")
	case ageDays < 30:
		score = 30
		flags = append(flags, "VERY_NEW_DOMAIN")
	case ageDays < 90:
		score = 20
		flags = append(flags, "NEW_DOMAIN")
	case ageDays < 180:
		score = 10
		flags = append(flags, "RECENT_DOMAIN")
	}

	return Result{
		Success: true,
		Score:   score,
		Flags:   flags,
		Details: map[string]interface{}{
			"createdAt": created.UTC().Format(time.RFC3339),
			"ageDays":   ageDays,
			"ageYears":  ageYears,
		},
	}, nil
}

func creationDate(rdap rdapResponse) (time.Time, bool) {
	for _, ev := range rdap.Events {
		if ev.EventAction != "registration" && ev.EventAction != "creation" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, ev.EventDate); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func failedAgeCheck(reason string) Result {
	return Result{
		Success: false,
		Score:   0,
		Flags:   []string{"DOMAIN_AGE_CHECK_FAILED"},
		Details: map[string]interface{}{"error": reason},
	}
}
