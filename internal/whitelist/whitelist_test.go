package whitelist

import "testing"

func TestIsWhitelistedExactDomain(t *testing.T) {
	c := NewChecker([]string{"google.com", "Tokopedia.com "}, nil)

	if !c.IsWhitelisted("google.com") {
		t.Fatal("expected exact hit")
	}
	if !c.IsWhitelisted("TOKOPEDIA.COM") {
		t.Fatal("expected case-insensitive hit")
	}
	if c.IsWhitelisted("mail.google.com") {
		t.Fatal("exact entries must not cover subdomains")
	}
}

func TestIsWhitelistedSuffix(t *testing.T) {
	c := NewChecker(nil, []string{"google.com", "*.go.id"})

	if !c.IsWhitelisted("accounts.google.com") {
		t.Fatal("expected suffix hit for subdomain")
	}
	if !c.IsWhitelisted("google.com") {
		t.Fatal("suffix entry should cover the apex too")
	}
	if !c.IsWhitelisted("pajak.go.id") {
		t.Fatal("wildcard prefix should be stripped")
	}
	if c.IsWhitelisted("notgoogle.com") {
		t.Fatal("suffix matching must respect label boundaries")
	}
}

func TestIsWhitelistedMiss(t *testing.T) {
	c := NewChecker([]string{"google.com"}, []string{"apple.com"})

	if c.IsWhitelisted("phishing-site.xyz") {
		t.Fatal("unexpected whitelist hit")
	}
}
