package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpass/internal/config"
	"mpass/internal/domain"
	"mpass/internal/service"
)

func TestLoadWindows_Array(t *testing.T) {
	windows, err := loadWindows(strings.NewReader(`[{"id":"root","children":[{"id":"u","id_entry":"username"}]}]`), false, "")
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, "username", windows[0].Children[0].IDEntry)
}

func TestLoadWindows_Object(t *testing.T) {
	windows, err := loadWindows(strings.NewReader(`  {"windows":[{"id":"a"},{"id":"b"}]}`), false, "")
	require.NoError(t, err)
	assert.Len(t, windows, 2)
}

func TestLoadWindows_Invalid(t *testing.T) {
	_, err := loadWindows(strings.NewReader(`{"windows":`), false, "")
	assert.Error(t, err)
}

func TestLoadWindows_HTML(t *testing.T) {
	page := `<form action="/login"><input name="email" type="email"><input name="pw" type="password"></form>`
	windows, err := loadWindows(strings.NewReader(page), true, "https://shop.example.com/login")
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, "shop.example.com", *windows[0].WebDomain)
}

func TestParseCredentials(t *testing.T) {
	got, err := parseCredentials([]string{"c1=Work", " c2 ", "c3=a=b"})
	require.NoError(t, err)
	assert.Equal(t, []domain.CredentialSummary{
		{ID: "c1", Title: "Work"},
		{ID: "c2"},
		{ID: "c3", Title: "a=b"},
	}, got)

	_, err = parseCredentials([]string{"=Nameless"})
	assert.Error(t, err)
}

func TestClassifyCommand_JSONOnStdin(t *testing.T) {
	t.Setenv("MPASS_LOG_FORMAT", "console")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(`[{"id":"root","children":[
		{"id":"u","id_entry":"login_name"},
		{"id":"p","autofill_hints":["password"]}
	]}]`))
	rootCmd.SetArgs([]string{"classify", "-"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), `"id": "u"`)
	assert.Contains(t, out.String(), `"type": "password"`)
}

func TestTokenCommand_IssuesValidToken(t *testing.T) {
	t.Setenv("MPASS_TOKEN_SECRET", "ctl-test-secret")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"token", "android-bridge"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())

	cfg, err := config.Load()
	require.NoError(t, err)
	claims, err := service.NewAccessTokenService(cfg.Token).ValidateToken(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "android-bridge", claims.Subject)
}
