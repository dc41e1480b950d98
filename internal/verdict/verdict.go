package verdict

// Band is one of four ordered risk classifications.
type Band string

const (
	BandSafe       Band = "SAFE"
	BandLowRisk    Band = "LOW_RISK"
	BandSuspicious Band = "SUSPICIOUS"
	BandHighRisk   Band = "HIGH_RISK"
)

// Verdict is the terminal, read-only artifact of one evaluation.
type Verdict struct {
	URL            string                 `json:"url"`
	Band           Band                   `json:"verdict"`
	RiskScore      int                    `json:"riskScore"`
	Level          string                 `json:"level"`
	Summary        string                 `json:"summary"`
	Recommendation string                 `json:"recommendation"`
	Flags          []string               `json:"flags"`
	Analysis       map[string]interface{} `json:"analysis,omitempty"`
	Scores         map[string]int         `json:"scores"`
}

func bandFor(total int) (Band, string, string) {
	switch {
	case total >= 70:
		return BandHighRisk, "danger",
			"DO NOT ENTER CREDENTIALS - Likely phishing attempt. Avoid this website."
	case total >= 40:
		return BandSuspicious, "warning",
			"Exercise caution. Verify the website authenticity before entering any sensitive information."
	case total >= 20:
		return BandLowRisk, "info",
			"Minor concerns detected. Proceed with normal caution."
	default:
		return BandSafe, "success",
			"No significant phishing indicators detected."
	}
}

// Flag categories for summary selection, highest priority first.
var criticalFlags = []string{
	"EXACT_SUBDOMAIN", "CHAR_SUBSTITUTION", "BRAND_WITH_KEYWORDS", "SIMILARITY",
	"EXTERNAL_FORM_ACTION", "HIGH_ABUSE_SCORE", "CERT_EXPIRED",
	"HIDDEN_FORM", "CROSS_DOMAIN_REDIRECT", "BRAND_MISMATCH",
}

var warningFlags = []string{
	"NO_HTTPS", "VERY_NEW_DOMAIN", "PHISHING_LANGUAGE",
	"SELF_SIGNED_CERT", "EXCESSIVE_IFRAMES",
}

func summaryFor(flags []string) string {
	has := func(list []string) bool {
		for _, f := range flags {
			for _, c := range list {
				if f == c {
					return true
				}
			}
		}
		return false
	}

	switch {
	case has(criticalFlags):
		return "Critical phishing indicators detected. This website is highly suspicious."
	case has(warningFlags):
		return "Some phishing indicators detected. Exercise caution."
	case len(flags) > 0:
		return "Minor concerns detected. Website appears mostly legitimate."
	default:
		return "No significant concerns detected."
	}
}
