package detector

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/example/phishcheck/internal/target"
)

var phishingPhrases = []string{
	"verify account", "confirm identity", "suspended account",
	"unusual activity", "click here immediately", "urgent action required",
	"account will be closed", "update payment", "verify payment method",
}

var credentialWords = []string{"password", "credit card", "login", "sign in"}

var titleBrands = []string{
	"paypal", "amazon", "facebook", "google", "microsoft", "apple", "netflix", "bank",
}

// ContentDetector fetches the landing page and inspects the DOM for phishing
// tells: credential forms posting off-domain, urgency language, brand names in
// the title that the domain does not back up, hidden forms, iframe walls.
type ContentDetector struct {
	client       *http.Client
	maxBodyBytes int64
}

// NewContentDetector builds a page analyzer with an optional custom HTTP client.
func NewContentDetector(client *http.Client) *ContentDetector {
	if client == nil {
		client = &http.Client{Timeout: 8 * time.Second}
	}
	return &ContentDetector{client: client, maxBodyBytes: 2 << 20}
}

// Name implements Detector.
func (d *ContentDetector) Name() string { return NameContent }

// Detect implements Detector. Fetch and parse failures are absorbed into
// failure results; they never abort the evaluation.
func (d *ContentDetector) Detect(ctx context.Context, tgt target.Target) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tgt.URL, nil)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := d.client.Do(req)
	if err != nil {
		return Result{
			Success: false,
			Score:   0,
			Flags:   []string{"CONTENT_CHECK_FAILED"},
			Details: map[string]interface{}{"error": err.Error()},
		}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return Result{
			Success: false,
			Score:   5,
			Flags:   []string{"HTTP_ERROR"},
			Details: map[string]interface{}{"statusCode": resp.StatusCode},
		}, nil
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, d.maxBodyBytes))
	if err != nil {
		return Result{
			Success: false,
			Score:   0,
			Flags:   []string{"CONTENT_CHECK_FAILED"},
			Details: map[string]interface{}{"error": err.Error()},
		}, nil
	}

	score := 0
	var flags []string
	details := map[string]interface{}{}

	finalURL := resp.Request.URL

	forms := doc.Find("form")
	details["formCount"] = forms.Length()

	hasPasswordInput := doc.Find(`input[type="password"]`).Length() > 0
	details["hasPasswordInput"] = hasPasswordInput
	if hasPasswordInput {
		// A bare login form is weak signal on its own; the fusion step weighs
		// it against domain age and form destination.
		score += 5
		flags = append(flags, "PASSWORD_FORM")

		hasExternalForm := false
		forms.Each(func(_ int, form *goquery.Selection) {
			action, ok := form.Attr("action")
			if !ok || action == "" {
				return
			}
			actionURL, err := url.Parse(action)
			if err != nil {
				return
			}
			resolved := finalURL.ResolveReference(actionURL)
			if resolved.Hostname() != "" && !strings.EqualFold(resolved.Hostname(), tgt.Hostname) {
				if !hasExternalForm {
					score += 30
					flags = append(flags, "EXTERNAL_FORM_ACTION")
					details["externalFormAction"] = resolved.Hostname()
				}
				hasExternalForm = true
			}
		})
		if hasExternalForm {
			score += 15
		}
	}

	bodyText := strings.ToLower(doc.Find("body").Text())
	var foundPhrases []string
	for _, phrase := range phishingPhrases {
		if strings.Contains(bodyText, phrase) {
			foundPhrases = append(foundPhrases, phrase)
		}
	}
	foundCredentialWords := 0
	for _, word := range credentialWords {
		if strings.Contains(bodyText, word) {
			foundCredentialWords++
		}
	}
	if len(foundPhrases) >= 2 {
		score += 20
		flags = append(flags, "PHISHING_LANGUAGE")
		details["phishingKeywords"] = foundPhrases
	} else if foundCredentialWords > 3 && len(foundPhrases) > 0 {
		score += 10
		flags = append(flags, "SUSPICIOUS_LANGUAGE")
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	details["title"] = title
	titleLower := strings.ToLower(title)
	for _, b := range titleBrands {
		if !strings.Contains(titleLower, b) {
			continue
		}
		if !strings.Contains(tgt.RootDomain, b) {
			score += 15
			flags = append(flags, "BRAND_MISMATCH")
		}
		break
	}

	if n := doc.Find("iframe").Length(); n > 5 {
		score += 10
		flags = append(flags, "EXCESSIVE_IFRAMES")
		details["iframeCount"] = n
	}

	links := doc.Find("a[href]")
	externalLinks := 0
	links.Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if !strings.HasPrefix(href, "http") {
			return
		}
		if u, err := url.Parse(href); err == nil && !strings.EqualFold(u.Hostname(), tgt.Hostname) {
			externalLinks++
		}
	})
	details["totalLinks"] = links.Length()
	details["externalLinks"] = externalLinks
	if links.Length() > 10 && float64(externalLinks)/float64(links.Length()) > 0.9 {
		score += 8
		flags = append(flags, "EXCESSIVE_EXTERNAL_LINKS")
	}

	if !strings.EqualFold(finalURL.Hostname(), tgt.Hostname) {
		score += 15
		flags = append(flags, "CROSS_DOMAIN_REDIRECT")
		details["redirectedTo"] = finalURL.Hostname()
	}

	hiddenForms := doc.Find(`form[style*="display:none"], form[style*="display: none"]`)
	if hiddenForms.Length() > 0 {
		score += 20
		flags = append(flags, "HIDDEN_FORM")
		details["hiddenFormCount"] = hiddenForms.Length()
	}

	return Result{Success: true, Score: score, Flags: flags, Details: details}, nil
}
