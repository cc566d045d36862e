package autofill

import (
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"mpass/internal/domain"
)

const (
	DefaultSentinelTitle = "Choose from mPass"
	untitledCredential   = "Unknown"
)

// BuilderConfig holds presentation settings for fill responses.
type BuilderConfig struct {
	SentinelTitle string
	InlineMinSize domain.PresentationSize
	InlineMaxSize domain.PresentationSize
}

// DefaultBuilderConfig returns the stock presentation settings.
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{
		SentinelTitle: DefaultSentinelTitle,
		InlineMinSize: domain.PresentationSize{Width: 300, Height: 50},
		InlineMaxSize: domain.PresentationSize{Width: 600, Height: 100},
	}
}

// FillResponseBuilder turns classified fields and credential summaries into a
// fill response. Secrets are never placed in datasets; values are filled in
// later by the authorizer.
type FillResponseBuilder struct {
	cfg       BuilderConfig
	sanitizer *bluemonday.Policy
	logger    *zap.Logger
}

// NewFillResponseBuilder creates a FillResponseBuilder. A nil logger is
// replaced by a no-op logger.
func NewFillResponseBuilder(cfg BuilderConfig, logger *zap.Logger) *FillResponseBuilder {
	if cfg.SentinelTitle == "" {
		cfg.SentinelTitle = DefaultSentinelTitle
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FillResponseBuilder{
		cfg:       cfg,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
}

// Build assembles the response. An empty field set yields an empty response.
// With no credentials no datasets are built, but the save declaration is
// still evaluated.
func (b *FillResponseBuilder) Build(
	fields *domain.ClassifiedFields,
	credentials []domain.CredentialSummary,
	site domain.SiteInfo,
) *domain.FillResponse {
	resp := &domain.FillResponse{Datasets: []domain.Dataset{}}
	if fields.Len() == 0 {
		return resp
	}

	usernameIDs := fields.UsernameIDs()
	passwordIDs := fields.PasswordIDs()

	if len(credentials) > 0 {
		for _, cred := range credentials {
			ds, err := b.credentialDataset(cred, usernameIDs, passwordIDs, site)
			if err != nil {
				b.logger.Warn("skipping dataset", zap.String("credential_id", cred.ID), zap.Error(err))
				continue
			}
			resp.Datasets = append(resp.Datasets, *ds)
		}
		resp.Datasets = append(resp.Datasets, b.dataset(b.cfg.SentinelTitle, nil, usernameIDs, passwordIDs, domain.SiteInfo{}))
	}

	resp.Save = SaveDeclarationFor(usernameIDs, passwordIDs, site)
	return resp
}

func (b *FillResponseBuilder) credentialDataset(
	cred domain.CredentialSummary,
	usernameIDs, passwordIDs []string,
	site domain.SiteInfo,
) (*domain.Dataset, error) {
	id := strings.TrimSpace(cred.ID)
	if id == "" {
		return nil, fmt.Errorf("building dataset %q: %w", cred.Title, domain.ErrMalformedCredential)
	}
	title := b.sanitize(cred.Title)
	if title == "" {
		title = untitledCredential
	}
	ds := b.dataset(title, &id, usernameIDs, passwordIDs, site)
	return &ds, nil
}

func (b *FillResponseBuilder) dataset(
	title string,
	credentialID *string,
	usernameIDs, passwordIDs []string,
	site domain.SiteInfo,
) domain.Dataset {
	values := make(map[string]string, len(usernameIDs)+len(passwordIDs))
	for _, id := range usernameIDs {
		values[id] = ""
	}
	for _, id := range passwordIDs {
		values[id] = ""
	}
	return domain.Dataset{
		ID:           uuid.NewString(),
		Title:        title,
		CredentialID: credentialID,
		Values:       values,
		Presentation: &domain.InlinePresentation{
			Title:   title,
			MinSize: b.cfg.InlineMinSize,
			MaxSize: b.cfg.InlineMaxSize,
		},
		Auth: domain.DatasetContext{
			CredentialID:     credentialID,
			UsernameFieldIDs: append([]string{}, usernameIDs...),
			PasswordFieldIDs: append([]string{}, passwordIDs...),
			Domain:           site.Domain,
			FormURL:          site.FormURL,
		},
	}
}

// sanitize strips markup from a stored title before it is shown.
func (b *FillResponseBuilder) sanitize(title string) string {
	return strings.TrimSpace(html.UnescapeString(b.sanitizer.Sanitize(title)))
}

// SaveDeclarationFor returns a save declaration when both username and
// password fields exist, or nil otherwise. The required ids are the username
// ids followed by the password ids.
func SaveDeclarationFor(usernameIDs, passwordIDs []string, site domain.SiteInfo) *domain.SaveDeclaration {
	if len(usernameIDs) == 0 || len(passwordIDs) == 0 {
		return nil
	}
	required := make([]string, 0, len(usernameIDs)+len(passwordIDs))
	required = append(required, usernameIDs...)
	required = append(required, passwordIDs...)
	return &domain.SaveDeclaration{
		DataTypes:        []domain.SaveDataType{domain.SaveDataUsername, domain.SaveDataPassword},
		RequiredFieldIDs: required,
		State: domain.ClientState{
			Domain:           site.Domain,
			FormURL:          site.FormURL,
			RequiredFieldIDs: append([]string{}, required...),
		},
	}
}
