package service

import (
	"fmt"

	"go.uber.org/zap"

	"mpass/internal/autofill"
	"mpass/internal/config"
	"mpass/internal/domain"
)

// Engine bundles the autofill core components configured for a deployment.
type Engine struct {
	Classifier *autofill.Classifier
	Extractor  *autofill.DomainExtractor
	Builder    *autofill.FillResponseBuilder
	Parser     *autofill.SaveRequestParser
	Browsers   *autofill.BrowserRecognizer
}

// NewEngine builds the core components from configuration. Browser entries
// from cfg.BrowsersFile are added to cfg.Browsers and the default set.
func NewEngine(cfg config.AutofillConfig, logger *zap.Logger) (*Engine, error) {
	variations, err := autofill.ParsePasswordVariations(cfg.PasswordVariations)
	if err != nil {
		return nil, fmt.Errorf("service.NewEngine: %w", err)
	}

	browsers := append([]string(nil), cfg.Browsers...)
	if cfg.BrowsersFile != "" {
		fromFile, err := autofill.LoadBrowserFile(cfg.BrowsersFile)
		if err != nil {
			return nil, fmt.Errorf("service.NewEngine: %w", err)
		}
		browsers = append(browsers, fromFile...)
	}
	recognizer, err := autofill.NewBrowserRecognizer(browsers...)
	if err != nil {
		return nil, fmt.Errorf("service.NewEngine: %w", err)
	}

	classifier := autofill.NewClassifier(autofill.ClassifierConfig{
		UsernameTerms:      cfg.UsernameTerms,
		PasswordVariations: variations,
	})
	extractor := autofill.NewDomainExtractor()

	builderCfg := autofill.DefaultBuilderConfig()
	if cfg.SentinelTitle != "" {
		builderCfg.SentinelTitle = cfg.SentinelTitle
	}
	if cfg.InlineMinWidth > 0 && cfg.InlineMinHeight > 0 {
		builderCfg.InlineMinSize = domain.PresentationSize{Width: cfg.InlineMinWidth, Height: cfg.InlineMinHeight}
	}
	if cfg.InlineMaxWidth > 0 && cfg.InlineMaxHeight > 0 {
		builderCfg.InlineMaxSize = domain.PresentationSize{Width: cfg.InlineMaxWidth, Height: cfg.InlineMaxHeight}
	}

	return &Engine{
		Classifier: classifier,
		Extractor:  extractor,
		Builder:    autofill.NewFillResponseBuilder(builderCfg, logger),
		Parser:     autofill.NewSaveRequestParser(classifier, extractor),
		Browsers:   recognizer,
	}, nil
}
