package autofill

import "mpass/internal/domain"

// SaveRequestParser extracts the submitted credential pair from the final
// field tree of a save event.
type SaveRequestParser struct {
	classifier *Classifier
	extractor  *DomainExtractor
}

// NewSaveRequestParser creates a SaveRequestParser.
func NewSaveRequestParser(classifier *Classifier, extractor *DomainExtractor) *SaveRequestParser {
	return &SaveRequestParser{classifier: classifier, extractor: extractor}
}

// RequiredIDs returns the ids to read back: the recorded ids when state
// carries any, otherwise those of a fresh classification of roots.
func (p *SaveRequestParser) RequiredIDs(roots []*domain.FieldNode, state *domain.ClientState) []string {
	if state != nil && len(state.RequiredFieldIDs) > 0 {
		return state.RequiredFieldIDs
	}
	return p.classifier.FindAutofillableFields(roots).IDs()
}

// Parse locates every required field, classifies it again and captures its
// non-empty text, the last field of each type winning. It returns nil unless
// both a username and a password were found.
func (p *SaveRequestParser) Parse(roots []*domain.FieldNode, state *domain.ClientState) *domain.SaveResult {
	if len(roots) == 0 {
		return nil
	}

	values := make(map[domain.FieldType]string, 2)
	for _, id := range p.RequiredIDs(roots, state) {
		node := FindByID(roots, id)
		if node == nil {
			continue
		}
		t := p.classifier.Classify(node)
		text, ok := node.TextValue()
		if t == domain.FieldTypeOther || !ok || text == "" {
			continue
		}
		values[t] = text
	}

	username, hasUser := values[domain.FieldTypeUsername]
	password, hasPass := values[domain.FieldTypePassword]
	if !hasUser || !hasPass {
		return nil
	}
	return &domain.SaveResult{Username: username, Password: password}
}

// ResolveSite prefers the recorded domain and form URL. When the token has no
// domain and the surface is a browser, the tree is scanned again and fills
// whatever the token lacks.
func (p *SaveRequestParser) ResolveSite(roots []*domain.FieldNode, state *domain.ClientState, isBrowser bool) domain.SiteInfo {
	var site domain.SiteInfo
	if state != nil {
		site.Domain = state.Domain
		site.FormURL = state.FormURL
	}
	if site.Domain != nil || !isBrowser {
		return site
	}
	extracted := p.extractor.Extract(roots)
	site.Domain = extracted.Domain
	if site.FormURL == nil {
		site.FormURL = extracted.FormURL
	}
	return site
}
