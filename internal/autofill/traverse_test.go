package autofill_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpass/internal/autofill"
	"mpass/internal/domain"
)

func TestWalk_PreOrderAcrossRoots(t *testing.T) {
	roots := []*domain.FieldNode{
		node("r1", node("a", node("a1"), node("a2")), node("b")),
		node("r2", node("c")),
	}

	var seen []string
	stopped := autofill.Walk(roots, func(n *domain.FieldNode) bool {
		seen = append(seen, n.ID)
		return false
	})

	assert.False(t, stopped)
	assert.Equal(t, []string{"r1", "a", "a1", "a2", "b", "r2", "c"}, seen)
}

func TestWalk_StopHaltsEntireStructure(t *testing.T) {
	roots := []*domain.FieldNode{
		node("r1", node("a", node("a1"), node("a2")), node("b")),
		node("r2", node("c")),
	}

	var seen []string
	stopped := autofill.Walk(roots, func(n *domain.FieldNode) bool {
		seen = append(seen, n.ID)
		return n.ID == "a1"
	})

	assert.True(t, stopped)
	assert.Equal(t, []string{"r1", "a", "a1"}, seen)
}

func TestWalk_SkipsNilNodes(t *testing.T) {
	roots := []*domain.FieldNode{nil, node("r", nil, node("x"))}

	var seen []string
	autofill.Walk(roots, func(n *domain.FieldNode) bool {
		seen = append(seen, n.ID)
		return false
	})

	assert.Equal(t, []string{"r", "x"}, seen)
}

func TestWalk_EmptyInput(t *testing.T) {
	called := false
	stopped := autofill.Walk(nil, func(*domain.FieldNode) bool {
		called = true
		return false
	})
	assert.False(t, stopped)
	assert.False(t, called)
}

func TestWalk_ReInvocable(t *testing.T) {
	roots := loginTree("alice", "secret")
	count := func() int {
		n := 0
		autofill.Walk(roots, func(*domain.FieldNode) bool { n++; return false })
		return n
	}
	assert.Equal(t, count(), count())
}

func TestFindByID(t *testing.T) {
	roots := []*domain.FieldNode{
		node("r1", node("a", node("target"))),
		node("r2", node("target")),
	}

	t.Run("first_match_wins", func(t *testing.T) {
		found := autofill.FindByID(roots, "target")
		require.NotNil(t, found)
		assert.Same(t, roots[0].Children[0].Children[0], found)
	})

	t.Run("missing_id", func(t *testing.T) {
		assert.Nil(t, autofill.FindByID(roots, "nope"))
	})

	t.Run("empty_id_never_matches", func(t *testing.T) {
		assert.Nil(t, autofill.FindByID([]*domain.FieldNode{node("")}, ""))
	})
}
