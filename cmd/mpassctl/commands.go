package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mpass/internal/config"
	"mpass/internal/domain"
	"mpass/internal/logging"
	"mpass/internal/service"
)

func loadEngine() (*service.Engine, *config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}
	logger, err := logging.New(config.LogConfig{Level: "warn", Format: cfg.Log.Format})
	if err != nil {
		return nil, nil, nil, err
	}
	engine, err := service.NewEngine(cfg.Autofill, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return engine, cfg, logger, nil
}

func openInput(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	return f, nil
}

func readWindows(cmd *cobra.Command, name string) ([]*domain.FieldNode, error) {
	rc, err := openInput(cmd, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return loadWindows(rc, htmlInput, pageURL)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runClassify(cmd *cobra.Command, args []string) error {
	engine, _, _, err := loadEngine()
	if err != nil {
		return err
	}
	windows, err := readWindows(cmd, args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd, engine.Classifier.FindAutofillableFields(windows).Entries())
}

func runExtract(cmd *cobra.Command, args []string) error {
	engine, _, _, err := loadEngine()
	if err != nil {
		return err
	}
	windows, err := readWindows(cmd, args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd, struct {
		Browser bool            `json:"browser"`
		Site    domain.SiteInfo `json:"site"`
	}{
		Browser: engine.Browsers.IsBrowser(packageName),
		Site:    engine.Extractor.Extract(windows),
	})
}

func runFill(cmd *cobra.Command, args []string) error {
	engine, cfg, _, err := loadEngine()
	if err != nil {
		return err
	}
	windows, err := readWindows(cmd, args[0])
	if err != nil {
		return err
	}
	summaries, err := parseCredentials(credentials)
	if err != nil {
		return err
	}

	fields := engine.Classifier.FindAutofillableFields(windows)
	var site domain.SiteInfo
	if engine.Browsers.IsBrowser(packageName) {
		site = engine.Extractor.Extract(windows)
	}

	resp := engine.Builder.Build(fields, summaries, site)
	if resp.Save != nil {
		token, err := service.NewClientStateCodec(cfg.Token).Encode(resp.Save.State)
		if err != nil {
			return err
		}
		resp.ClientState = token
	}
	return printJSON(cmd, resp)
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	token, err := service.NewAccessTokenService(cfg.Token).IssueToken(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
