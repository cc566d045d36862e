// Package htmltree converts an HTML page into a field tree, shaped the way a
// browser exposes a rendered page to the autofill surface. It lets operators
// replay saved login pages through the classifier.
package htmltree

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"mpass/internal/autofill"
	"mpass/internal/domain"
)

// fieldTags are the elements that become field nodes. Other elements only
// contribute their children.
var fieldTags = map[string]bool{
	"form":     true,
	"input":    true,
	"textarea": true,
	"select":   true,
}

// autocompleteHints maps autocomplete tokens to platform autofill hints.
var autocompleteHints = map[string]string{
	"username":         domain.HintUsername,
	"email":            domain.HintEmailAddress,
	"current-password": domain.HintPassword,
	"new-password":     domain.HintPassword,
}

// Parse reads an HTML document and returns a single-root field tree. When
// pageURL is non-empty its host is exposed as the root's web domain.
func Parse(r io.Reader, pageURL string) ([]*domain.FieldNode, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmltree.Parse: %w", err)
	}

	root := &domain.FieldNode{ID: "html:0", HTML: &domain.HTMLInfo{Tag: "html"}}
	if pageURL = strings.TrimSpace(pageURL); pageURL != "" {
		host := autofill.HostOf(pageURL)
		root.WebDomain = &host
	}

	b := &builder{next: 1}
	b.collect(doc, root)
	return []*domain.FieldNode{root}, nil
}

type builder struct {
	next int
}

func (b *builder) collect(n *html.Node, parent *domain.FieldNode) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		tag := strings.ToLower(c.Data)
		if !fieldTags[tag] {
			b.collect(c, parent)
			continue
		}
		node := b.fieldNode(c, tag)
		parent.Children = append(parent.Children, node)
		b.collect(c, node)
	}
}

func (b *builder) fieldNode(n *html.Node, tag string) *domain.FieldNode {
	node := &domain.FieldNode{
		ID:   fmt.Sprintf("html:%d", b.next),
		HTML: &domain.HTMLInfo{Tag: tag},
	}
	b.next++

	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		key := strings.ToLower(a.Key)
		val := a.Val
		node.HTML.Attributes = append(node.HTML.Attributes, domain.HTMLAttribute{Name: key, Value: &val})
		if _, seen := attrs[key]; !seen {
			attrs[key] = val
		}
	}

	node.IDEntry = firstNonEmpty(attrs["id"], attrs["name"])
	if hint := firstNonEmpty(attrs["placeholder"], attrs["aria-label"]); hint != "" {
		node.Hint = &hint
	}

	switch tag {
	case "input":
		if v, ok := attrs["value"]; ok {
			node.Text = &v
		}
		node.InputType = inputTypeOf(attrs["type"])
	case "textarea":
		text := textContent(n)
		node.Text = &text
		node.InputType = domain.InputType{Class: domain.InputClassText}
	}

	for _, token := range strings.Fields(strings.ToLower(attrs["autocomplete"])) {
		if hint, ok := autocompleteHints[token]; ok {
			node.AutofillHints = append(node.AutofillHints, hint)
		}
	}
	return node
}

func inputTypeOf(typ string) domain.InputType {
	switch strings.ToLower(typ) {
	case "password":
		return domain.InputType{Class: domain.InputClassText, Variation: domain.InputVariationWebPassword}
	case "email":
		return domain.InputType{Class: domain.InputClassText, Variation: domain.InputVariationWebEmail}
	case "number":
		return domain.InputType{Class: domain.InputClassNumber}
	case "tel":
		return domain.InputType{Class: domain.InputClassPhone}
	case "", "text", "search", "url":
		return domain.InputType{Class: domain.InputClassText}
	default:
		return domain.InputType{}
	}
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
