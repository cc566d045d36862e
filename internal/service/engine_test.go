package service_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpass/internal/config"
	"mpass/internal/domain"
	"mpass/internal/service"
)

func TestNewEngine_Defaults(t *testing.T) {
	engine, err := service.NewEngine(config.AutofillConfig{}, nil)
	require.NoError(t, err)

	assert.True(t, engine.Browsers.IsBrowser("com.android.chrome"))
	assert.False(t, engine.Browsers.IsBrowser("com.example.bank"))
	assert.Equal(t, domain.FieldTypeUsername, engine.Classifier.Classify(&domain.FieldNode{IDEntry: "login"}))
}

func TestNewEngine_BrowsersFromConfigAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "browsers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("browsers:\n  - org.example.*\n"), 0o600))

	engine, err := service.NewEngine(config.AutofillConfig{
		Browsers:     []string{"com.kiwibrowser.browser"},
		BrowsersFile: path,
	}, nil)
	require.NoError(t, err)

	assert.True(t, engine.Browsers.IsBrowser("com.kiwibrowser.browser"))
	assert.True(t, engine.Browsers.IsBrowser("org.example.nightly"))
}

func TestNewEngine_MissingBrowsersFile(t *testing.T) {
	_, err := service.NewEngine(config.AutofillConfig{
		BrowsersFile: filepath.Join(t.TempDir(), "missing.yaml"),
	}, nil)
	assert.Error(t, err)
}

func TestNewEngine_UnknownPasswordVariation(t *testing.T) {
	_, err := service.NewEngine(config.AutofillConfig{PasswordVariations: []string{"pin"}}, nil)
	assert.Error(t, err)
}

func TestNewEngine_UsernameTermOverride(t *testing.T) {
	engine, err := service.NewEngine(config.AutofillConfig{
		UsernameTerms:      []string{"benutzer"},
		PasswordVariations: []string{"web_password"},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.FieldTypeUsername, engine.Classifier.Classify(&domain.FieldNode{IDEntry: "Benutzername"}))
	assert.Equal(t, domain.FieldTypeOther, engine.Classifier.Classify(&domain.FieldNode{IDEntry: "login"}))

	visible := &domain.FieldNode{InputType: domain.InputType{Class: domain.InputClassText, Variation: domain.InputVariationPassword}}
	assert.Equal(t, domain.FieldTypeOther, engine.Classifier.Classify(visible))
}
