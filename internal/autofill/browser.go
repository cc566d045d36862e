package autofill

import (
	"fmt"
	"os"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// DefaultBrowserPackages is the stock browser-recognition set.
var DefaultBrowserPackages = []string{
	"com.android.chrome",
	"org.mozilla.firefox",
	"com.opera.browser",
	"com.brave.browser",
	"com.microsoft.emmx",
	"com.google.android.apps.chrome",
	"com.sec.android.app.sbrowser",
	"com.duckduckgo.mobile.android",
	"com.UCMobile.intl",
	"com.vivaldi.browser",
	"org.torproject.torbrowser",
}

// BrowserRecognizer tells whether a requesting surface is a known browser.
// Entries containing glob metacharacters match as patterns with '.' as the
// separator; all others match exactly.
type BrowserRecognizer struct {
	exact    map[string]bool
	patterns []glob.Glob
}

// NewBrowserRecognizer creates a recognizer over the default set plus extra.
func NewBrowserRecognizer(extra ...string) (*BrowserRecognizer, error) {
	r := &BrowserRecognizer{exact: make(map[string]bool)}
	for _, entry := range append(append([]string(nil), DefaultBrowserPackages...), extra...) {
		if err := r.add(entry); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *BrowserRecognizer) add(entry string) error {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return nil
	}
	if !strings.ContainsAny(entry, "*?[{") {
		r.exact[entry] = true
		return nil
	}
	g, err := glob.Compile(entry, '.')
	if err != nil {
		return fmt.Errorf("compiling browser pattern %q: %w", entry, err)
	}
	r.patterns = append(r.patterns, g)
	return nil
}

// IsBrowser reports whether pkg belongs to the browser-recognition set.
func (r *BrowserRecognizer) IsBrowser(pkg string) bool {
	if r == nil || pkg == "" {
		return false
	}
	if r.exact[pkg] {
		return true
	}
	for _, g := range r.patterns {
		if g.Match(pkg) {
			return true
		}
	}
	return false
}

// browserFile is the YAML layout of a browser list file.
type browserFile struct {
	Browsers []string `yaml:"browsers"`
}

// LoadBrowserFile reads additional browser entries from a YAML file of the
// form "browsers: [com.example.browser, org.example.*]".
func LoadBrowserFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading browser file: %w", err)
	}
	var f browserFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing browser file: %w", err)
	}
	return f.Browsers, nil
}
