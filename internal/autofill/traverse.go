package autofill

import "mpass/internal/domain"

// Visitor is called for every node of a walk. Returning true stops the walk.
type Visitor func(node *domain.FieldNode) bool

// Walk visits every node of roots depth-first in pre-order, roots in order.
// A visitor returning true halts the whole walk, not just the current
// subtree. Walk reports whether it was stopped.
func Walk(roots []*domain.FieldNode, visit Visitor) bool {
	stack := make([]*domain.FieldNode, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}
	return drain(stack, visit)
}

// FindByID returns the first node whose ID equals id, or nil. Siblings after
// the match are never examined.
func FindByID(roots []*domain.FieldNode, id string) *domain.FieldNode {
	if id == "" {
		return nil
	}
	var found *domain.FieldNode
	Walk(roots, func(n *domain.FieldNode) bool {
		if n.ID == id {
			found = n
			return true
		}
		return false
	})
	return found
}

func drain(stack []*domain.FieldNode, visit Visitor) bool {
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		if visit(n) {
			return true
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return false
}
