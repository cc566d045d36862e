package autofill_test

import "mpass/internal/domain"

func str(s string) *string { return &s }

func node(id string, children ...*domain.FieldNode) *domain.FieldNode {
	return &domain.FieldNode{ID: id, Children: children}
}

func usernameField(id, text string) *domain.FieldNode {
	n := &domain.FieldNode{ID: id, IDEntry: "login_user"}
	if text != "" {
		n.Text = str(text)
	}
	return n
}

func passwordField(id, text string) *domain.FieldNode {
	n := &domain.FieldNode{
		ID:        id,
		IDEntry:   "pwd",
		InputType: domain.InputType{Class: domain.InputClassText, Variation: domain.InputVariationPassword},
	}
	if text != "" {
		n.Text = str(text)
	}
	return n
}

func htmlNode(id, tag string, attrs ...string) *domain.FieldNode {
	info := &domain.HTMLInfo{Tag: tag}
	for i := 0; i+1 < len(attrs); i += 2 {
		info.Attributes = append(info.Attributes, domain.HTMLAttribute{Name: attrs[i], Value: str(attrs[i+1])})
	}
	return &domain.FieldNode{ID: id, HTML: info}
}

// loginTree is a window holding a username and a password field.
func loginTree(user, pass string) []*domain.FieldNode {
	return []*domain.FieldNode{
		node("root",
			node("container",
				usernameField("A", user),
				passwordField("B", pass),
			),
			&domain.FieldNode{ID: "submit", IDEntry: "button"},
		),
	}
}
