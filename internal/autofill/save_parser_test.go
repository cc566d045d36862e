package autofill_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpass/internal/autofill"
	"mpass/internal/domain"
)

func newParser() *autofill.SaveRequestParser {
	return autofill.NewSaveRequestParser(newClassifier(), autofill.NewDomainExtractor())
}

func TestParse_WithRecordedIDs(t *testing.T) {
	state := &domain.ClientState{RequiredFieldIDs: []string{"A", "B"}}

	result := newParser().Parse(loginTree("alice", "secret"), state)

	require.NotNil(t, result)
	assert.Equal(t, "alice", result.Username)
	assert.Equal(t, "secret", result.Password)
}

func TestParse_MissingPasswordYieldsNothing(t *testing.T) {
	state := &domain.ClientState{RequiredFieldIDs: []string{"A", "B"}}

	assert.Nil(t, newParser().Parse(loginTree("alice", ""), state))

	roots := loginTree("alice", "")
	roots[0].Children[0].Children[1].Text = str("")
	assert.Nil(t, newParser().Parse(roots, state))
}

func TestParse_RecordedIDsAreAuthoritative(t *testing.T) {
	roots := loginTree("alice", "secret")
	// A second login form appears after the fill; it is not part of the token.
	roots = append(roots, node("late", usernameField("C", "mallory"), passwordField("D", "other")))
	state := &domain.ClientState{RequiredFieldIDs: []string{"A", "B"}}

	result := newParser().Parse(roots, state)

	require.NotNil(t, result)
	assert.Equal(t, "alice", result.Username)
	assert.Equal(t, "secret", result.Password)
}

func TestParse_IDsSurviveRestructuring(t *testing.T) {
	// The fields moved to a different window between fill and save.
	roots := []*domain.FieldNode{
		node("w1", node("header")),
		node("w2", node("wrap", node("deeper", passwordField("B", "secret"))), usernameField("A", "alice")),
	}
	state := &domain.ClientState{RequiredFieldIDs: []string{"A", "B"}}

	result := newParser().Parse(roots, state)

	require.NotNil(t, result)
	assert.Equal(t, "alice", result.Username)
}

func TestParse_FallbackRecomputation(t *testing.T) {
	result := newParser().Parse(loginTree("bob", "hunter2"), nil)

	require.NotNil(t, result)
	assert.Equal(t, "bob", result.Username)
	assert.Equal(t, "hunter2", result.Password)

	result = newParser().Parse(loginTree("bob", "hunter2"), &domain.ClientState{})
	require.NotNil(t, result)
}

func TestParse_LastOccurrencePerTypeWins(t *testing.T) {
	roots := []*domain.FieldNode{node("r",
		usernameField("A1", "first"),
		usernameField("A2", "second"),
		passwordField("B", "pw"),
	)}
	state := &domain.ClientState{RequiredFieldIDs: []string{"A1", "A2", "B"}}

	result := newParser().Parse(roots, state)

	require.NotNil(t, result)
	assert.Equal(t, "second", result.Username)
}

func TestParse_DegenerateInput(t *testing.T) {
	p := newParser()
	assert.Nil(t, p.Parse(nil, nil))
	assert.Nil(t, p.Parse([]*domain.FieldNode{node("r")}, &domain.ClientState{RequiredFieldIDs: []string{"gone"}}))
}

func TestResolveSite(t *testing.T) {
	p := newParser()
	roots := []*domain.FieldNode{node("root", urlBar("fresh.example"), htmlNode("f", "form", "action", "/fresh"))}

	t.Run("token_values_preferred", func(t *testing.T) {
		state := &domain.ClientState{Domain: str("recorded.example"), FormURL: str("/recorded")}
		site := p.ResolveSite(roots, state, true)
		assert.Equal(t, "recorded.example", *site.Domain)
		assert.Equal(t, "/recorded", *site.FormURL)
	})

	t.Run("browser_rescan_fills_gaps", func(t *testing.T) {
		state := &domain.ClientState{FormURL: str("/recorded")}
		site := p.ResolveSite(roots, state, true)
		require.NotNil(t, site.Domain)
		assert.Equal(t, "fresh.example", *site.Domain)
		assert.Equal(t, "/recorded", *site.FormURL)
	})

	t.Run("no_token_browser", func(t *testing.T) {
		site := p.ResolveSite(roots, nil, true)
		require.NotNil(t, site.Domain)
		assert.Equal(t, "fresh.example", *site.Domain)
		assert.Equal(t, "/fresh", *site.FormURL)
	})

	t.Run("non_browser_never_scans", func(t *testing.T) {
		site := p.ResolveSite(roots, nil, false)
		assert.Nil(t, site.Domain)
		assert.Nil(t, site.FormURL)
	})
}
