package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajaym/portfolio/internal/config"
	"github.com/ajaym/portfolio/internal/shell"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "portfolio", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"serve", "tui", "check"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err, "command %s should exist", name)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"content", "log-level"} {
		f := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, "", f.DefValue)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GIN_MODE", "test")
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckRenderedPage(t *testing.T) {
	out, err := execute(t, "check")
	require.NoError(t, err)
	for _, it := range shell.Nav {
		assert.Contains(t, out, "#"+it.AnchorID)
	}
}

func TestCheckRenderedPageInRelayMode(t *testing.T) {
	t.Setenv("CONTACT_MODE", config.ContactRelay)
	_, err := execute(t, "check")
	require.NoError(t, err)
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestCheckSavedPage(t *testing.T) {
	complete := writeFile(t, "page.html", `<html><body>
<section id="home"></section><section id="about"></section>
<section id="projects"></section><section id="skills"></section>
<section id="contact"></section></body></html>`)

	out, err := execute(t, "check", complete)
	require.NoError(t, err)
	assert.Contains(t, out, "ok  Contact")

	missing := writeFile(t, "page.html", `<html><body>
<section id="home"></section><section id="about"></section>
<section id="projects"></section></body></html>`)

	_, err = execute(t, "check", missing)
	require.ErrorIs(t, err, shell.ErrMissingAnchor)
	assert.Contains(t, err.Error(), `"skills"`)
	assert.Contains(t, err.Error(), `"contact"`)
}

func TestCheckMissingFile(t *testing.T) {
	_, err := execute(t, "check", filepath.Join(t.TempDir(), "nope.html"))
	require.Error(t, err)
}

func TestContentFlagOverridesEnv(t *testing.T) {
	bad := writeFile(t, "content.yaml", "name: [unterminated\n")
	_, err := execute(t, "--content", bad, "check")
	require.Error(t, err)
}
