package autofill_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mpass/internal/autofill"
	"mpass/internal/domain"
)

func newClassifier() *autofill.Classifier {
	return autofill.NewClassifier(autofill.DefaultClassifierConfig())
}

func TestClassify_Precedence(t *testing.T) {
	c := newClassifier()

	tests := []struct {
		name string
		node *domain.FieldNode
		want domain.FieldType
	}{
		{
			name: "username_hint",
			node: &domain.FieldNode{AutofillHints: []string{domain.HintUsername}},
			want: domain.FieldTypeUsername,
		},
		{
			name: "email_hint",
			node: &domain.FieldNode{AutofillHints: []string{domain.HintEmailAddress}},
			want: domain.FieldTypeUsername,
		},
		{
			name: "password_hint_beats_username_id",
			node: &domain.FieldNode{IDEntry: "username", AutofillHints: []string{domain.HintPassword}},
			want: domain.FieldTypePassword,
		},
		{
			name: "first_declared_hint_wins",
			node: &domain.FieldNode{AutofillHints: []string{"phone", domain.HintEmailAddress, domain.HintPassword}},
			want: domain.FieldTypeUsername,
		},
		{
			name: "password_variation",
			node: &domain.FieldNode{IDEntry: "user", InputType: domain.InputType{Class: domain.InputClassText, Variation: domain.InputVariationPassword}},
			want: domain.FieldTypePassword,
		},
		{
			name: "web_password_variation",
			node: &domain.FieldNode{InputType: domain.InputType{Class: domain.InputClassText, Variation: domain.InputVariationWebPassword}},
			want: domain.FieldTypePassword,
		},
		{
			name: "visible_password_variation",
			node: &domain.FieldNode{InputType: domain.InputTypeFromFlags(0x91)},
			want: domain.FieldTypePassword,
		},
		{
			name: "password_variation_on_number_class_ignored",
			node: &domain.FieldNode{InputType: domain.InputType{Class: domain.InputClassNumber, Variation: domain.InputVariationPassword}},
			want: domain.FieldTypeOther,
		},
		{
			name: "markup_password_type",
			node: &domain.FieldNode{HTML: &domain.HTMLInfo{Tag: "input", Attributes: []domain.HTMLAttribute{{Name: "TYPE", Value: str("Password")}}}},
			want: domain.FieldTypePassword,
		},
		{
			name: "markup_email_with_username_hint_text",
			node: &domain.FieldNode{Hint: str("Your Email"), HTML: &domain.HTMLInfo{Tag: "input", Attributes: []domain.HTMLAttribute{{Name: "type", Value: str("email")}}}},
			want: domain.FieldTypeUsername,
		},
		{
			name: "markup_text_without_terms",
			node: &domain.FieldNode{IDEntry: "q", HTML: &domain.HTMLInfo{Tag: "input", Attributes: []domain.HTMLAttribute{{Name: "type", Value: str("text")}}}},
			want: domain.FieldTypeOther,
		},
		{
			name: "markup_attribute_without_value",
			node: &domain.FieldNode{HTML: &domain.HTMLInfo{Tag: "input", Attributes: []domain.HTMLAttribute{{Name: "type"}}}},
			want: domain.FieldTypeOther,
		},
		{
			name: "substring_id_match",
			node: &domain.FieldNode{IDEntry: "myUserID123"},
			want: domain.FieldTypeUsername,
		},
		{
			name: "identifier_matches_id_term",
			node: &domain.FieldNode{IDEntry: "identifier"},
			want: domain.FieldTypeUsername,
		},
		{
			name: "hint_text_fallback",
			node: &domain.FieldNode{Hint: str("Account name")},
			want: domain.FieldTypeUsername,
		},
		{
			name: "no_signal",
			node: &domain.FieldNode{IDEntry: "comment", Hint: str("Say something")},
			want: domain.FieldTypeOther,
		},
		{
			name: "empty_node",
			node: &domain.FieldNode{},
			want: domain.FieldTypeOther,
		},
		{
			name: "nil_node",
			node: nil,
			want: domain.FieldTypeOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.node))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	c := newClassifier()
	n := &domain.FieldNode{IDEntry: "login", Hint: str("password please")}
	first := c.Classify(n)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Classify(n))
	}
}

func TestClassify_ConfigOverrides(t *testing.T) {
	c := autofill.NewClassifier(autofill.ClassifierConfig{
		UsernameTerms:      []string{"Benutzer"},
		PasswordVariations: []domain.InputVariation{domain.InputVariationWebPassword},
	})

	assert.Equal(t, domain.FieldTypeUsername, c.Classify(&domain.FieldNode{IDEntry: "benutzername"}))
	assert.Equal(t, domain.FieldTypeOther, c.Classify(&domain.FieldNode{IDEntry: "username"}))
	assert.Equal(t, domain.FieldTypeOther, c.Classify(&domain.FieldNode{
		InputType: domain.InputType{Class: domain.InputClassText, Variation: domain.InputVariationPassword},
	}))
}

func TestFindAutofillableFields(t *testing.T) {
	c := newClassifier()
	roots := loginTree("", "")
	// Duplicate id and an id-less username field are both ignored.
	roots[0].Children = append(roots[0].Children, usernameField("A", ""), usernameField("", ""))

	fields := c.FindAutofillableFields(roots)

	assert.Equal(t, 2, fields.Len())
	assert.Equal(t, []string{"A"}, fields.UsernameIDs())
	assert.Equal(t, []string{"B"}, fields.PasswordIDs())
	assert.Equal(t, []string{"A", "B"}, fields.IDs())
}

func TestFindAutofillableFields_NoFields(t *testing.T) {
	c := newClassifier()
	fields := c.FindAutofillableFields([]*domain.FieldNode{node("r", node("x"))})
	assert.Equal(t, 0, fields.Len())
}
