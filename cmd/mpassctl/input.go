package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"mpass/internal/autofill/htmltree"
	"mpass/internal/domain"
)

// loadWindows decodes a field tree from r. JSON input may be a bare array of
// windows or an object with a "windows" array.
func loadWindows(r io.Reader, asHTML bool, pageURL string) ([]*domain.FieldNode, error) {
	if asHTML {
		return htmltree.Parse(r, pageURL)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	data = bytes.TrimSpace(data)

	if bytes.HasPrefix(data, []byte("[")) {
		var windows []*domain.FieldNode
		if err := json.Unmarshal(data, &windows); err != nil {
			return nil, fmt.Errorf("decoding windows: %w", err)
		}
		return windows, nil
	}

	var wrapped struct {
		Windows []*domain.FieldNode `json:"windows"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decoding windows: %w", err)
	}
	return wrapped.Windows, nil
}

// parseCredentials turns "id=title" flag values into summaries. A value
// without "=" is an id with no title.
func parseCredentials(values []string) ([]domain.CredentialSummary, error) {
	out := make([]domain.CredentialSummary, 0, len(values))
	for _, v := range values {
		id, title, _ := strings.Cut(v, "=")
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("credential %q: missing id", v)
		}
		out = append(out, domain.CredentialSummary{ID: strings.TrimSpace(id), Title: title})
	}
	return out, nil
}
