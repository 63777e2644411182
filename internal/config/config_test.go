package config

import (
	"os"
	"path/filepath"
	"testing"

	"git.home.luguber.info/inful/sitecfg/internal/adapter"
	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/render"
	"git.home.luguber.info/inful/sitecfg/internal/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sitecfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Equal(t, adapter.TargetStatic, cfg.Deployment.Target)
	assert.Equal(t, DefaultContentRoot, cfg.Content.Root)
	assert.Equal(t, render.FormatMJS, cfg.Output.Format)
	assert.Equal(t, "astro.config.mjs", cfg.Output.Filename)
	assert.True(t, cfg.Output.ManifestEnabled())
	assert.Equal(t, DefaultDebounce, cfg.Watch.Debounce)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, site.Load(site.TargetStatic), cfg.SiteConfiguration())
}

func TestLoadFullFile(t *testing.T) {
	t.Setenv("SITECFG_TEST_BRANCH", "release")
	path := writeConfig(t, `
version: "1.0"
deployment:
  target: Vercel
site:
  title: Internal Docs
  social:
    github: https://github.com/acme/docs
  sidebar:
    - label: Reference
      directory: /reference/
content:
  root: docs
  validate: true
output:
  directory: out
  format: JSON
edit_link:
  from_git: true
  branch: ${SITECFG_TEST_BRANCH}
watch:
  debounce: 2s
logging:
  level: WARNING
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, adapter.TargetVercel, cfg.Deployment.Target)
	assert.Equal(t, render.FormatJSON, cfg.Output.Format)
	assert.Equal(t, "starlight.config.json", cfg.Output.Filename)
	assert.Equal(t, "release", cfg.EditLink.Branch)
	assert.Equal(t, DefaultRemote, cfg.EditLink.Remote)
	assert.Equal(t, LogLevelWarn, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, "2s", cfg.Watch.Debounce)
	assert.Equal(t, "reference", cfg.Site.Sidebar[0].Directory)

	dir := filepath.Dir(path)
	assert.Equal(t, filepath.Join(dir, "docs"), cfg.ContentRoot())
	assert.Equal(t, filepath.Join(dir, "out", "starlight.config.json"), cfg.OutputPath())
	assert.Equal(t, filepath.Join(dir, "out", ManifestFilename), cfg.ManifestPath())

	sc := cfg.SiteConfiguration()
	assert.Equal(t, "Internal Docs", sc.Title())
	assert.True(t, sc.HasAdapter())
	require.Len(t, sc.Sidebar(), 1)
	assert.Equal(t, "Reference", sc.Sidebar()[0].Label())
}

func TestLoadEnvFileDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SITECFG_TEST_TITLE", "from-process")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SITECFG_TEST_TITLE=from-file\nSITECFG_TEST_TARGET=vercel\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("SITECFG_TEST_TARGET") })
	path := filepath.Join(dir, "sitecfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site:\n  title: ${SITECFG_TEST_TITLE}\ndeployment:\n  target: ${SITECFG_TEST_TARGET}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-process", cfg.Site.Title)
	assert.Equal(t, adapter.TargetVercel, cfg.Deployment.Target)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))

	_, err = Load(writeConfig(t, "deployment:\n  targt: vercel\n"))
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig), "unknown keys are rejected")

	_, err = Load(writeConfig(t, "version: \"2.0\"\n"))
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, adapter.TargetStatic, cfg.Deployment.Target)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, found, err := LoadOrDefault(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, Default().Output, cfg.Output)

	_, _, err = LoadOrDefault(writeConfig(t, "output:\n  format: toml\n"))
	require.Error(t, err)
}

func TestValidation(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"unknown target", "deployment:\n  target: netlify\n", "deployment.target"},
		{"unknown format", "output:\n  format: toml\n", "output.format"},
		{"filename with separator", "output:\n  filename: a/b.mjs\n", "output.filename"},
		{"filename dot", "output:\n  filename: \".\"\n", "output.filename"},
		{"filename parent", "output:\n  filename: \"..\"\n", "output.filename"},
		{"relative social", "site:\n  social:\n    github: github.com/acme\n", "site.social.github"},
		{"empty label", "site:\n  sidebar:\n    - directory: x\n", "site.sidebar"},
		{"escaping dir", "site:\n  sidebar:\n    - label: X\n      directory: ../x\n", "site.sidebar.X.directory"},
		{"duplicate dir", "site:\n  sidebar:\n    - label: A\n      directory: x\n    - label: B\n      directory: x/\n", "site.sidebar.B.directory"},
		{"exclusive edit link", "edit_link:\n  base_url: https://e.com/\n  from_git: true\n", "edit_link"},
		{"bad edit link", "edit_link:\n  base_url: /edit\n", "edit_link.base_url"},
		{"bad debounce", "watch:\n  debounce: soon\n", "watch.debounce"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.body))
			require.Error(t, err)
			classified, ok := ferrors.AsClassified(err)
			require.True(t, ok)
			assert.Equal(t, ferrors.CategoryValidation, classified.Category())
			field, _ := classified.Context().GetString("field")
			assert.Equal(t, tc.field, field)
		})
	}
}

func TestNormalizeWarnings(t *testing.T) {
	cfg := &Config{
		Deployment: DeploymentConfig{Target: "VERCEL"},
		Output:     OutputConfig{Format: "yml"},
		Logging:    LoggingConfig{Level: "loud", Format: "JSON"},
	}
	warnings := Normalize(cfg)
	assert.Len(t, warnings, 4)
	assert.Equal(t, adapter.TargetVercel, cfg.Deployment.Target)
	assert.Equal(t, render.FormatYAML, cfg.Output.Format)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)

	cfg = &Config{Deployment: DeploymentConfig{Target: "netlify"}}
	assert.Empty(t, Normalize(cfg))
	assert.Equal(t, adapter.Target("netlify"), cfg.Deployment.Target)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sitecfg.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Example().Watch, cfg.Watch)
	assert.Equal(t, Example().Deployment, cfg.Deployment)

	err = Init(path, false)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	require.NoError(t, Init(path, true))
}

func TestManifestToggle(t *testing.T) {
	cfg, err := Parse([]byte("output:\n  manifest: false\n"))
	require.NoError(t, err)
	assert.False(t, cfg.Output.ManifestEnabled())
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Apply(Overrides{Target: "Vercel", Format: "json", OutputDir: "dist"}))
	assert.Equal(t, adapter.TargetVercel, cfg.Deployment.Target)
	assert.Equal(t, render.FormatJSON, cfg.Output.Format)
	assert.Equal(t, "starlight.config.json", cfg.Output.Filename)
	assert.Equal(t, "dist", cfg.Output.Directory)

	custom := Default()
	custom.Output.Filename = "site.mjs"
	require.NoError(t, custom.Apply(Overrides{Format: "yaml"}))
	assert.Equal(t, "site.mjs", custom.Output.Filename)

	err := Default().Apply(Overrides{Target: "netlify"})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))

	err = Default().Apply(Overrides{Format: "toml"})
	require.Error(t, err)
}
