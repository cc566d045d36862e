package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"mpass/internal/domain"
	"mpass/internal/port"
)

// FillInput is the DTO for fill requests.
type FillInput struct {
	RequestID         string              `json:"-"`
	RequestingPackage string              `json:"requesting_package"`
	Windows           []*domain.FieldNode `json:"windows"`
}

// SaveInput is the DTO for save requests.
type SaveInput struct {
	RequestingPackage string                `json:"requesting_package"`
	Windows           []*domain.FieldNode   `json:"windows"`
	ClientState       string                `json:"client_state"`
	Session           domain.SessionContext `json:"session"`
}

// SaveOutput is the result of a save request. Credential is nil when the
// final tree held no complete username/password pair.
type SaveOutput struct {
	Credential   *domain.SaveResult    `json:"credential"`
	CredentialID *string               `json:"credential_id,omitempty"`
	Domain       *string               `json:"domain,omitempty"`
	FormURL      *string               `json:"form_url,omitempty"`
	AppPackage   *string               `json:"app_package,omitempty"`
	Session      domain.SessionContext `json:"session"`
}

// AuthorizeInput is the DTO for authorize requests.
type AuthorizeInput struct {
	Dataset domain.DatasetContext `json:"dataset"`
	Session domain.SessionContext `json:"session"`
}

// AuthorizedDataset carries the revealed values keyed by field id.
type AuthorizedDataset struct {
	CredentialID *string           `json:"credential_id,omitempty"`
	Values       map[string]string `json:"values"`
}

// AuthorizeOutput is the result of an authorize request. Dataset is nil when
// authorization was cancelled or failed.
type AuthorizeOutput struct {
	Dataset *AuthorizedDataset    `json:"dataset"`
	Session domain.SessionContext `json:"session"`
}

// ClassifyInput is the DTO for classify requests.
type ClassifyInput struct {
	RequestingPackage string              `json:"requesting_package"`
	Windows           []*domain.FieldNode `json:"windows"`
}

// ClassifyOutput lists the login fields found in a tree.
type ClassifyOutput struct {
	Fields []domain.ClassifiedField `json:"fields"`
	Site   domain.SiteInfo          `json:"site"`
}

// AutofillOptions holds service-level autofill settings.
type AutofillOptions struct {
	SelfPackage   string
	LookupTimeout time.Duration
}

// AutofillService defines the autofill bridge contract.
type AutofillService interface {
	Fill(ctx context.Context, input FillInput) (*domain.FillResponse, error)
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)
	Authorize(ctx context.Context, input AuthorizeInput) (*AuthorizeOutput, error)
	Classify(ctx context.Context, input ClassifyInput) (*ClassifyOutput, error)
}

type autofillService struct {
	engine     *Engine
	lookup     port.CredentialLookup
	authorizer port.Authorizer
	archive    port.SnapshotArchive
	codec      ClientStateCodec
	opts       AutofillOptions
	logger     *zap.Logger
}

// NewAutofillService creates a new AutofillService implementation. archive
// may be nil to disable diagnostic snapshots.
func NewAutofillService(
	engine *Engine,
	lookup port.CredentialLookup,
	authorizer port.Authorizer,
	archive port.SnapshotArchive,
	codec ClientStateCodec,
	opts AutofillOptions,
	logger *zap.Logger,
) AutofillService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &autofillService{
		engine:     engine,
		lookup:     lookup,
		authorizer: authorizer,
		archive:    archive,
		codec:      codec,
		opts:       opts,
		logger:     logger,
	}
}

func emptyFillResponse() *domain.FillResponse {
	return &domain.FillResponse{Datasets: []domain.Dataset{}}
}

func (s *autofillService) Fill(ctx context.Context, input FillInput) (*domain.FillResponse, error) {
	log := s.logger.With(zap.String("request_id", input.RequestID), zap.String("package", input.RequestingPackage))

	if s.opts.SelfPackage != "" && input.RequestingPackage == s.opts.SelfPackage {
		log.Debug("ignoring fill request from own package")
		return emptyFillResponse(), nil
	}

	fields := s.engine.Classifier.FindAutofillableFields(input.Windows)
	if fields.Len() == 0 {
		log.Debug("no login fields found")
		s.archiveSnapshot(ctx, input, "no_login_fields")
		return emptyFillResponse(), nil
	}

	var site domain.SiteInfo
	if s.engine.Browsers.IsBrowser(input.RequestingPackage) {
		site = s.engine.Extractor.Extract(input.Windows)
	}

	credentials, err := s.lookupCredentials(ctx, port.LookupInput{
		Identity: input.RequestingPackage,
		Domain:   site.Domain,
		FormURL:  site.FormURL,
	})
	if err != nil {
		log.Warn("credential lookup abandoned", zap.Error(err))
		return emptyFillResponse(), nil
	}

	resp := s.engine.Builder.Build(fields, credentials, site)
	if resp.Save != nil {
		token, err := s.codec.Encode(resp.Save.State)
		if err != nil {
			log.Error("encoding client state, dropping save declaration", zap.Error(err))
			resp.Save = nil
		} else {
			resp.ClientState = token
		}
	}

	log.Debug("fill response built",
		zap.Int("fields", fields.Len()),
		zap.Int("datasets", len(resp.Datasets)),
		zap.Bool("save", resp.Save != nil),
	)
	return resp, nil
}

// lookupCredentials runs the lookup bounded by the configured timeout and the
// caller's context. On expiry the lookup context is cancelled and its result
// discarded.
func (s *autofillService) lookupCredentials(ctx context.Context, input port.LookupInput) ([]domain.CredentialSummary, error) {
	var (
		lookupCtx context.Context
		cancel    context.CancelFunc
	)
	if s.opts.LookupTimeout > 0 {
		lookupCtx, cancel = context.WithTimeout(ctx, s.opts.LookupTimeout)
	} else {
		lookupCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	type result struct {
		credentials []domain.CredentialSummary
		err         error
	}
	done := make(chan result, 1)
	go func() {
		creds, err := s.lookup.Lookup(lookupCtx, input)
		done <- result{credentials: creds, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("autofill.Fill: %w: %w", domain.ErrLookupFailed, r.err)
		}
		return r.credentials, nil
	case <-lookupCtx.Done():
		return nil, fmt.Errorf("autofill.Fill: %w: %w", domain.ErrLookupFailed, lookupCtx.Err())
	}
}

func (s *autofillService) archiveSnapshot(ctx context.Context, input FillInput, reason string) {
	if s.archive == nil || len(input.Windows) == 0 {
		return
	}
	err := s.archive.Archive(ctx, port.SnapshotInput{
		RequestID:         input.RequestID,
		RequestingPackage: input.RequestingPackage,
		Reason:            reason,
		CapturedAt:        time.Now().UTC(),
		Windows:           redact(input.Windows),
	})
	if err != nil {
		s.logger.Warn("archiving snapshot", zap.String("request_id", input.RequestID), zap.Error(err))
	}
}

// redact copies the trees without any field text or markup values.
func redact(nodes []*domain.FieldNode) []*domain.FieldNode {
	if nodes == nil {
		return nil
	}
	out := make([]*domain.FieldNode, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		c := *n
		c.Text = nil
		if n.HTML != nil {
			info := domain.HTMLInfo{Tag: n.HTML.Tag}
			for _, a := range n.HTML.Attributes {
				if !strings.EqualFold(a.Name, "value") {
					info.Attributes = append(info.Attributes, a)
				}
			}
			c.HTML = &info
		}
		c.Children = redact(n.Children)
		out = append(out, &c)
	}
	return out
}

func (s *autofillService) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	session := input.Session
	out := &SaveOutput{CredentialID: session.Take()}

	var state *domain.ClientState
	if input.ClientState != "" {
		decoded, err := s.codec.Decode(input.ClientState)
		if err != nil {
			s.logger.Info("client state rejected, recomputing fields", zap.Error(err))
		} else {
			state = decoded
		}
	}

	out.Session = session
	out.Credential = s.engine.Parser.Parse(input.Windows, state)
	if out.Credential == nil {
		return out, nil
	}

	isBrowser := s.engine.Browsers.IsBrowser(input.RequestingPackage)
	site := s.engine.Parser.ResolveSite(input.Windows, state, isBrowser)
	out.Domain = site.Domain
	out.FormURL = site.FormURL
	if !isBrowser && input.RequestingPackage != "" {
		pkg := input.RequestingPackage
		out.AppPackage = &pkg
	}
	return out, nil
}

func (s *autofillService) Authorize(ctx context.Context, input AuthorizeInput) (*AuthorizeOutput, error) {
	out := &AuthorizeOutput{Session: input.Session}

	cred, err := s.authorizer.Authenticate(ctx, input.Dataset)
	if err != nil {
		if errors.Is(err, domain.ErrAuthorizationCancelled) {
			s.logger.Debug("authorization cancelled")
		} else {
			s.logger.Warn("authorization failed", zap.Error(err))
		}
		return out, nil
	}
	if cred == nil {
		return out, nil
	}

	values := make(map[string]string, len(input.Dataset.UsernameFieldIDs)+len(input.Dataset.PasswordFieldIDs))
	for _, id := range input.Dataset.UsernameFieldIDs {
		values[id] = cred.Username
	}
	for _, id := range input.Dataset.PasswordFieldIDs {
		values[id] = cred.Password
	}
	out.Dataset = &AuthorizedDataset{CredentialID: input.Dataset.CredentialID, Values: values}

	if id := input.Dataset.CredentialID; id != nil && *id != "" {
		out.Session.Select(*id)
	}
	return out, nil
}

func (s *autofillService) Classify(_ context.Context, input ClassifyInput) (*ClassifyOutput, error) {
	out := &ClassifyOutput{
		Fields: s.engine.Classifier.FindAutofillableFields(input.Windows).Entries(),
	}
	if s.engine.Browsers.IsBrowser(input.RequestingPackage) {
		out.Site = s.engine.Extractor.Extract(input.Windows)
	}
	return out, nil
}
