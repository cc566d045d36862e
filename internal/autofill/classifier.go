package autofill

import (
	"fmt"
	"strings"

	"mpass/internal/domain"
)

// DefaultUsernameTerms are matched as case-insensitive substrings of a field's
// id entry and hint. "id" matching inside "identifier" or "valid" is expected.
var DefaultUsernameTerms = []string{"user", "username", "email", "login", "account", "id", "identifier"}

// DefaultPasswordVariations are the text-class variations treated as password
// inputs.
var DefaultPasswordVariations = []domain.InputVariation{
	domain.InputVariationPassword,
	domain.InputVariationWebPassword,
	domain.InputVariationVisiblePassword,
}

// ClassifierConfig holds the term and flag sets the classifier matches on.
type ClassifierConfig struct {
	UsernameTerms      []string
	UsernameHints      []string
	PasswordHints      []string
	PasswordVariations []domain.InputVariation
}

// DefaultClassifierConfig returns the stock heuristics.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		UsernameTerms:      append([]string(nil), DefaultUsernameTerms...),
		UsernameHints:      []string{domain.HintUsername, domain.HintEmailAddress},
		PasswordHints:      []string{domain.HintPassword},
		PasswordVariations: append([]domain.InputVariation(nil), DefaultPasswordVariations...),
	}
}

// Classifier maps a single field node to its login role. It holds no mutable
// state and is safe for concurrent use.
type Classifier struct {
	usernameTerms      []string
	usernameHints      map[string]bool
	passwordHints      map[string]bool
	passwordVariations map[domain.InputVariation]bool
}

// NewClassifier creates a Classifier. Empty sets in cfg fall back to the
// defaults.
func NewClassifier(cfg ClassifierConfig) *Classifier {
	def := DefaultClassifierConfig()
	if len(cfg.UsernameTerms) == 0 {
		cfg.UsernameTerms = def.UsernameTerms
	}
	if len(cfg.UsernameHints) == 0 {
		cfg.UsernameHints = def.UsernameHints
	}
	if len(cfg.PasswordHints) == 0 {
		cfg.PasswordHints = def.PasswordHints
	}
	if len(cfg.PasswordVariations) == 0 {
		cfg.PasswordVariations = def.PasswordVariations
	}

	c := &Classifier{
		usernameHints:      toSet(cfg.UsernameHints),
		passwordHints:      toSet(cfg.PasswordHints),
		passwordVariations: make(map[domain.InputVariation]bool, len(cfg.PasswordVariations)),
	}
	for _, t := range cfg.UsernameTerms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			c.usernameTerms = append(c.usernameTerms, t)
		}
	}
	for _, v := range cfg.PasswordVariations {
		c.passwordVariations[v] = true
	}
	return c
}

// Classify returns the field type of node. It never fails: nil nodes and
// missing attributes are simply non-matching.
func (c *Classifier) Classify(node *domain.FieldNode) domain.FieldType {
	if node == nil {
		return domain.FieldTypeOther
	}

	for _, hint := range node.AutofillHints {
		switch {
		case c.usernameHints[hint]:
			return domain.FieldTypeUsername
		case c.passwordHints[hint]:
			return domain.FieldTypePassword
		}
	}

	if c.isPasswordInput(node.InputType) {
		return domain.FieldTypePassword
	}

	idEntry := strings.ToLower(node.IDEntry)
	hint := strings.ToLower(node.HintText())
	looksLikeUsername := c.containsUsernameTerm(idEntry) || c.containsUsernameTerm(hint)

	if node.HTML != nil {
		for _, attr := range node.HTML.Attributes {
			if !strings.EqualFold(attr.Name, "type") || attr.Value == nil {
				continue
			}
			switch strings.ToLower(*attr.Value) {
			case "password":
				return domain.FieldTypePassword
			case "email", "text":
				if looksLikeUsername {
					return domain.FieldTypeUsername
				}
			}
		}
	}

	if looksLikeUsername {
		return domain.FieldTypeUsername
	}
	return domain.FieldTypeOther
}

// FindAutofillableFields classifies every node of roots and returns the
// username and password fields keyed by id, in traversal order.
func (c *Classifier) FindAutofillableFields(roots []*domain.FieldNode) *domain.ClassifiedFields {
	fields := domain.NewClassifiedFields()
	Walk(roots, func(n *domain.FieldNode) bool {
		if t := c.Classify(n); t != domain.FieldTypeOther {
			fields.Add(n.ID, t)
		}
		return false
	})
	return fields
}

func (c *Classifier) isPasswordInput(it domain.InputType) bool {
	return it.Class == domain.InputClassText && c.passwordVariations[it.Variation]
}

func (c *Classifier) containsUsernameTerm(text string) bool {
	if text == "" {
		return false
	}
	for _, term := range c.usernameTerms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func toSet(values []string) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, v := range values {
		out[v] = true
	}
	return out
}

// ParsePasswordVariations resolves configuration names such as
// "web_password" into input variations.
func ParsePasswordVariations(names []string) ([]domain.InputVariation, error) {
	out := make([]domain.InputVariation, 0, len(names))
	for _, name := range names {
		v, ok := domain.InputVariationNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown password variation %q", name)
		}
		out = append(out, v)
	}
	return out, nil
}
