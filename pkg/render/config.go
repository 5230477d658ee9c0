package render

// Routes holds the static lookup tables that drive rendering for a site.
// The tables are read-only after construction; handing them to an Engine
// instead of keeping package-level maps lets tests substitute their own
// routing data.
type Routes struct {
	// Templates maps a request path to the logical template name that
	// backs it. Paths absent from this table are rejected by the caller
	// before the engine runs.
	Templates map[string]string `json:"templates"`

	// Titles maps a request path to its human-readable page title.
	Titles map[string]string `json:"titles"`

	// ActivePages maps a request path to the short identifier used for
	// navigation highlighting.
	ActivePages map[string]string `json:"active_pages"`

	// DefaultTitle is used for routes with no entry in Titles.
	DefaultTitle string `json:"default_title"`

	// CSRFToken is the fixed token value substituted for {{ csrf_token }}.
	// This is a mock: a real deployment must generate a per-session,
	// cryptographically random token instead of a constant.
	CSRFToken string `json:"csrf_token"`
}

// DefaultRoutes returns the routing tables for the mock site: the ten
// pages of the developer portal, their titles, and their navigation
// identifiers.
func DefaultRoutes() *Routes {
	return &Routes{
		Templates: map[string]string{
			"/":         "index.html",
			"/api-keys": "api_keys.html",
			"/docs":     "docs.html",
			"/examples": "examples.html",
			"/pricing":  "pricing.html",
			"/faq":      "faq.html",
			"/support":  "support.html",
			"/security": "security.html",
			"/terms":    "terms.html",
			"/privacy":  "privacy.html",
		},
		Titles: map[string]string{
			"/":         "Execute WebAssembly - Modulus",
			"/api-keys": "API Key Management - Modulus",
			"/docs":     "API Documentation - Modulus",
			"/examples": "WebAssembly Examples - Modulus",
			"/pricing":  "Pricing Plans - Modulus",
			"/faq":      "Frequently Asked Questions - Modulus",
			"/support":  "Get Support - Modulus",
			"/security": "Security & Compliance - Modulus",
			"/terms":    "Terms of Service - Modulus",
			"/privacy":  "Privacy Policy - Modulus",
		},
		ActivePages: map[string]string{
			"/":         "index",
			"/api-keys": "api-keys",
			"/docs":     "docs",
			"/examples": "examples",
			"/pricing":  "pricing",
			"/faq":      "faq",
			"/support":  "support",
			"/security": "security",
			"/terms":    "terms",
			"/privacy":  "privacy",
		},
		DefaultTitle: "Modulus - WebAssembly Execution API",
		CSRFToken:    "mock-csrf-token-123",
	}
}

// Template returns the logical template name for a request path, and
// whether the path is routed at all.
func (r *Routes) Template(route string) (string, bool) {
	name, ok := r.Templates[route]
	return name, ok
}
