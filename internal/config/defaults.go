package config

import "time"

// defaultBrands is the protected-brand list scanned by the typosquatting
// matcher: major Indonesian e-commerce, banking, and payment names plus the
// global targets phishers impersonate most.
var defaultBrands = []string{
	// E-commerce
	"tokopedia", "shopee", "bukalapak", "lazada", "blibli",

	// Banking & payments (Indonesia)
	"bca", "mandiri", "bni", "bri", "cimb", "danamon", "permata", "ocbc", "maybank",
	"jenius", "flip", "ovo", "gopay", "dana", "linkaja", "shopeepay",

	// Social media & tech
	"google", "facebook", "instagram", "twitter", "tiktok", "whatsapp", "telegram",
	"youtube", "linkedin", "microsoft", "apple", "amazon",

	// Payments & finance
	"paypal", "stripe", "visa", "mastercard",

	// Crypto
	"binance", "coinbase", "indodax", "tokocrypto",

	// Gaming & entertainment
	"steam", "roblox", "minecraft", "netflix", "spotify", "disney",

	// Logistics
	"jne", "jnt", "sicepat", "anteraja", "gosend", "grabexpress",

	// Government
	"pajak", "bpjs", "kemenkes", "polri", "kemenkeu",

	// Airlines
	"garuda", "lionair", "citilink", "airasia",
}

// defaultWhitelistDomains are exact hostnames that are definitely safe.
var defaultWhitelistDomains = []string{
	"tokopedia.com", "tokopedia.net",
	"shopee.co.id", "shopee.com",
	"bukalapak.com", "bukalapak.io",
	"lazada.co.id", "blibli.com",
	"klikbca.com", "bca.co.id",
	"bankmandiri.co.id", "bni.co.id", "bri.co.id",
	"google.com", "google.co.id", "youtube.com",
	"facebook.com", "fb.com", "instagram.com",
	"microsoft.com", "live.com", "outlook.com",
	"apple.com", "icloud.com",
	"amazon.com",
	"gopay.co.id", "gojek.com", "ovo.id", "dana.id", "shopeepay.co.id",
	"paypal.com",
}

// defaultWhitelistSuffixes trust every subdomain of the listed domains.
var defaultWhitelistSuffixes = []string{
	"google.com", "googleapis.com", "youtube.com",
	"facebook.com", "instagram.com",
	"microsoft.com", "apple.com", "amazon.com",
	"tokopedia.com", "shopee.co.id", "bukalapak.com",
	"go.id",
}

// defaultHostedPlatforms are shared-hosting root domains where unrelated
// tenants live on subdomains.
var defaultHostedPlatforms = []string{
	"vercel.app", "netlify.app", "github.io", "pages.dev",
	"firebaseapp.com", "herokuapp.com", "azurewebsites.net", "web.app",
	"railway.app", "render.com", "fly.dev", "onrender.com",
	"replit.app", "glitch.me", "000webhostapp.com",
	"wixsite.com", "wordpress.com", "blogspot.com",
	"weebly.com", "webflow.io", "carrd.co",
}

func defaultTimeouts() map[string]time.Duration {
	return map[string]time.Duration{
		"ssl":        5 * time.Second,
		"domainAge":  10 * time.Second,
		"content":    8 * time.Second,
		"reputation": 3 * time.Second,
	}
}
