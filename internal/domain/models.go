package domain

import "strings"

// InputType carries the class and variation flags of a platform input field.
type InputType struct {
	Class     InputClass     `json:"class"`
	Variation InputVariation `json:"variation"`
}

// InputTypeFromFlags splits a raw platform input-type bitmask.
func InputTypeFromFlags(flags int) InputType {
	return InputType{
		Class:     InputClass(flags & inputMaskClass),
		Variation: InputVariation(flags & inputMaskVariation),
	}
}

// HTMLAttribute is a single markup attribute. Value is nil when the attribute
// is present without a value.
type HTMLAttribute struct {
	Name  string  `json:"name"`
	Value *string `json:"value,omitempty"`
}

// HTMLInfo describes the markup element behind a web-backed field.
type HTMLInfo struct {
	Tag        string          `json:"tag"`
	Attributes []HTMLAttribute `json:"attributes,omitempty"`
}

// Attr returns the first attribute matching name case-insensitively.
func (h *HTMLInfo) Attr(name string) (string, bool) {
	if h == nil {
		return "", false
	}
	for _, a := range h.Attributes {
		if strings.EqualFold(a.Name, name) && a.Value != nil {
			return *a.Value, true
		}
	}
	return "", false
}

// FieldNode is one node of an on-screen field hierarchy. The tree is owned by
// the caller and treated as read-only.
type FieldNode struct {
	// ID is the opaque autofill handle of the field. It survives between the
	// fill and the save event; structural positions do not.
	ID string `json:"id,omitempty"`
	// IDEntry is the resource or markup id name used by heuristics.
	IDEntry       string       `json:"id_entry,omitempty"`
	Text          *string      `json:"text,omitempty"`
	Hint          *string      `json:"hint,omitempty"`
	InputType     InputType    `json:"input_type"`
	AutofillHints []string     `json:"autofill_hints,omitempty"`
	HTML          *HTMLInfo    `json:"html,omitempty"`
	WebDomain     *string      `json:"web_domain,omitempty"`
	Children      []*FieldNode `json:"children,omitempty"`
}

// HasWebDomain reports whether the node exposes a web domain directly.
func (n *FieldNode) HasWebDomain() bool {
	return n != nil && n.WebDomain != nil && *n.WebDomain != ""
}

// HasMarkup reports whether the node is backed by a markup element.
func (n *FieldNode) HasMarkup() bool {
	return n != nil && n.HTML != nil
}

// IsFormTag reports whether the node's markup element is a form.
func (n *FieldNode) IsFormTag() bool {
	return n.HasMarkup() && strings.EqualFold(n.HTML.Tag, "form")
}

// TextValue returns the node's current text, if any.
func (n *FieldNode) TextValue() (string, bool) {
	if n == nil || n.Text == nil {
		return "", false
	}
	return *n.Text, true
}

// HintText returns the node's hint, or "" when absent.
func (n *FieldNode) HintText() string {
	if n == nil || n.Hint == nil {
		return ""
	}
	return *n.Hint
}

// ClassifiedField pairs a field id with its detected type.
type ClassifiedField struct {
	ID   string    `json:"id"`
	Type FieldType `json:"type"`
}

// ClassifiedFields is an insertion-ordered field id -> type map. It never
// holds FieldTypeOther entries and keys are unique.
type ClassifiedFields struct {
	entries []ClassifiedField
	index   map[string]int
}

// NewClassifiedFields creates an empty ClassifiedFields.
func NewClassifiedFields() *ClassifiedFields {
	return &ClassifiedFields{index: make(map[string]int)}
}

// Add records id with the given type. Other types, empty ids and ids already
// present are ignored; Add reports whether the entry was stored.
func (f *ClassifiedFields) Add(id string, t FieldType) bool {
	if id == "" || t == FieldTypeOther || t == "" {
		return false
	}
	if f.index == nil {
		f.index = make(map[string]int)
	}
	if _, ok := f.index[id]; ok {
		return false
	}
	f.index[id] = len(f.entries)
	f.entries = append(f.entries, ClassifiedField{ID: id, Type: t})
	return true
}

// Get returns the type recorded for id.
func (f *ClassifiedFields) Get(id string) (FieldType, bool) {
	if f == nil {
		return "", false
	}
	i, ok := f.index[id]
	if !ok {
		return "", false
	}
	return f.entries[i].Type, true
}

// Len returns the number of classified fields.
func (f *ClassifiedFields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.entries)
}

// Entries returns a copy of the entries in insertion order.
func (f *ClassifiedFields) Entries() []ClassifiedField {
	if f == nil {
		return nil
	}
	out := make([]ClassifiedField, len(f.entries))
	copy(out, f.entries)
	return out
}

// IDs returns every field id in insertion order.
func (f *ClassifiedFields) IDs() []string {
	return f.idsOf("")
}

// UsernameIDs returns the ids classified as username.
func (f *ClassifiedFields) UsernameIDs() []string {
	return f.idsOf(FieldTypeUsername)
}

// PasswordIDs returns the ids classified as password.
func (f *ClassifiedFields) PasswordIDs() []string {
	return f.idsOf(FieldTypePassword)
}

func (f *ClassifiedFields) idsOf(t FieldType) []string {
	if f == nil {
		return nil
	}
	out := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		if t == "" || e.Type == t {
			out = append(out, e.ID)
		}
	}
	return out
}

// SiteInfo is the web origin of a browser surface.
type SiteInfo struct {
	Domain  *string `json:"domain,omitempty"`
	FormURL *string `json:"form_url,omitempty"`
}

// CredentialSummary identifies a stored credential without its secret.
type CredentialSummary struct {
	ID    string `db:"id" json:"id"`
	Title string `db:"title" json:"title"`
}

// Credential is a revealed username/password pair.
type Credential struct {
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"password"`
}

// DatasetContext is the non-secret context handed to the authorizer when a
// dataset is selected.
type DatasetContext struct {
	CredentialID     *string  `json:"credential_id,omitempty"`
	UsernameFieldIDs []string `json:"username_field_ids"`
	PasswordFieldIDs []string `json:"password_field_ids"`
	Domain           *string  `json:"domain,omitempty"`
	FormURL          *string  `json:"form_url,omitempty"`
}

// PresentationSize is a width/height pair in pixels.
type PresentationSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// InlinePresentation is the metadata needed to render an inline suggestion.
type InlinePresentation struct {
	Title   string           `json:"title"`
	MinSize PresentationSize `json:"min_size"`
	MaxSize PresentationSize `json:"max_size"`
}

// Dataset is one selectable suggestion.
type Dataset struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	CredentialID *string             `json:"credential_id"`
	Values       map[string]string   `json:"values"`
	Presentation *InlinePresentation `json:"inline_presentation,omitempty"`
	Auth         DatasetContext      `json:"authentication"`
}

// IsSentinel reports whether the dataset is not bound to a stored credential.
func (d *Dataset) IsSentinel() bool {
	return d.CredentialID == nil
}

// ClientState is the round-trip token recorded at fill time and returned at
// save time.
type ClientState struct {
	Domain           *string  `json:"domain,omitempty"`
	FormURL          *string  `json:"form_url,omitempty"`
	RequiredFieldIDs []string `json:"required_ids"`
}

// SaveDeclaration asks the platform to offer saving once the required fields
// are filled.
type SaveDeclaration struct {
	DataTypes        []SaveDataType `json:"data_types"`
	RequiredFieldIDs []string       `json:"required_field_ids"`
	State            ClientState    `json:"-"`
}

// FillResponse is the result of a fill event.
type FillResponse struct {
	Datasets    []Dataset        `json:"datasets"`
	Save        *SaveDeclaration `json:"save,omitempty"`
	ClientState string           `json:"client_state,omitempty"`
}

// IsEmpty reports whether the response offers nothing.
func (r *FillResponse) IsEmpty() bool {
	return r == nil || (len(r.Datasets) == 0 && r.Save == nil)
}

// SaveResult is a submitted username/password pair. A nil *SaveResult means
// no complete pair was found.
type SaveResult struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionContext carries the single-slot "last selected credential" handoff
// between the authorize step and the following save. It is owned by the
// caller.
type SessionContext struct {
	SelectedCredentialID *string `json:"selected_credential_id,omitempty"`
}

// Select records id as the selected credential, replacing any earlier value.
func (s *SessionContext) Select(id string) {
	s.SelectedCredentialID = &id
}

// Take returns the selected credential id and clears the slot.
func (s *SessionContext) Take() *string {
	if s == nil {
		return nil
	}
	id := s.SelectedCredentialID
	s.SelectedCredentialID = nil
	return id
}
