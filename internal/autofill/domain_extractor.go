package autofill

import (
	"net/url"
	"strings"
	"unicode"

	"mpass/internal/domain"
)

// urlFieldTokens mark address-bar style fields in a browser's own UI.
var urlFieldTokens = []string{"url", "search", "address"}

// DomainExtractor derives the web domain and form action URL of a browser
// surface from its field tree.
type DomainExtractor struct{}

// NewDomainExtractor creates a DomainExtractor.
func NewDomainExtractor() *DomainExtractor {
	return &DomainExtractor{}
}

// Extract inspects each root in order. A root exposing a web domain directly
// wins immediately; otherwise its subtree is scanned. The first root that
// yields a domain ends the search.
func (e *DomainExtractor) Extract(roots []*domain.FieldNode) domain.SiteInfo {
	var site domain.SiteInfo

	for _, root := range roots {
		if root == nil {
			continue
		}
		if root.HasWebDomain() {
			return domain.SiteInfo{
				Domain:  strPtr(*root.WebDomain),
				FormURL: formAction(root),
			}
		}

		Walk([]*domain.FieldNode{root}, func(n *domain.FieldNode) bool {
			if site.Domain == nil && n.HasWebDomain() {
				site.Domain = strPtr(*n.WebDomain)
			}

			if site.Domain == nil {
				site.Domain = domainFromURLField(n)
			}

			if site.FormURL == nil {
				site.FormURL = formAction(n)
			}

			return site.Domain != nil && site.FormURL != nil
		})

		if site.Domain != nil {
			break
		}
	}
	return site
}

// domainFromURLField returns the host typed into an address-bar style field.
func domainFromURLField(n *domain.FieldNode) *string {
	text, ok := n.TextValue()
	if !ok {
		return nil
	}
	idEntry := strings.ToLower(n.IDEntry)
	hint := strings.ToLower(n.HintText())
	if !containsAny(idEntry, urlFieldTokens) && !containsAny(hint, urlFieldTokens) {
		return nil
	}
	candidate := strings.TrimSpace(text)
	if !IsLikelyURL(candidate) {
		return nil
	}
	d := HostOf(candidate)
	return &d
}

// IsLikelyURL reports whether text resembles a URL: it contains a dot and
// either carries an http(s) scheme or has no whitespace.
func IsLikelyURL(text string) bool {
	if !strings.Contains(text, ".") {
		return false
	}
	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
		return true
	}
	return strings.IndexFunc(text, unicode.IsSpace) < 0
}

// HostOf parses raw as a URI, assuming https when it has no http scheme, and
// returns its host. The raw text is returned when parsing fails or yields no
// host.
func HostOf(raw string) string {
	target := raw
	if !strings.HasPrefix(raw, "http") {
		target = "https://" + raw
	}
	u, err := url.Parse(target)
	if err != nil {
		return raw
	}
	if host := u.Hostname(); host != "" {
		return host
	}
	return raw
}

// formAction returns the action attribute of a form-tagged node.
func formAction(n *domain.FieldNode) *string {
	if !n.IsFormTag() {
		return nil
	}
	if v, ok := n.HTML.Attr("action"); ok {
		return &v
	}
	return nil
}

func containsAny(s string, tokens []string) bool {
	if s == "" {
		return false
	}
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func strPtr(s string) *string {
	return &s
}
