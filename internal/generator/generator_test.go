package generator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/manifest"
	"git.home.luguber.info/inful/sitecfg/internal/metrics"
	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setup writes sitecfg.yaml with body into a temp project and loads it.
func setup(t *testing.T, body string) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	return cfg, dir
}

func writePage(t *testing.T, root, rel, body string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
}

func TestGenerateStatic(t *testing.T) {
	cfg, dir := setup(t, "")
	writePage(t, dir, "src/content/docs/courses/intro.md", "---\ntitle: Intro\n---\nHello\n")

	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	g := New(cfg, WithClock(func() time.Time { return fixed }))
	rep, err := g.Generate(context.Background())
	require.NoError(t, err)

	assert.True(t, rep.Changed)
	assert.Equal(t, "static", rep.Target)
	assert.Equal(t, filepath.Join(dir, "astro.config.mjs"), rep.Path)
	require.Len(t, rep.Groups, 3)
	assert.Len(t, rep.Groups[0].Pages, 1)
	assert.True(t, rep.Groups[1].Missing)

	out, err := os.ReadFile(rep.Path)
	require.NoError(t, err)
	assert.Contains(t, string(out), `title: "Web API with .NET"`)
	assert.NotContains(t, string(out), "adapter")

	m, err := manifest.Read(rep.ManifestPath)
	require.NoError(t, err)
	assert.Equal(t, rep.RunID, m.ID)
	assert.Equal(t, rep.Digest, m.Outputs.Hash)
	assert.Equal(t, "written", m.Status)
	assert.True(t, fixed.Equal(m.Timestamp))
	assert.Contains(t, m.Pages, "courses/intro")
	require.Len(t, m.Inputs.Groups, 3)
	assert.Equal(t, "how-to", m.Inputs.Groups[1].Directory)
}

func TestGenerateSkipsUnchanged(t *testing.T) {
	cfg, _ := setup(t, "deployment:\n  target: vercel\n")

	first, err := Generate(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, first.Changed)
	info1, err := os.Stat(first.Path)
	require.NoError(t, err)

	second, err := Generate(context.Background(), cfg)
	require.NoError(t, err)
	assert.False(t, second.Changed)
	assert.Equal(t, first.Digest, second.Digest)
	assert.NotEqual(t, first.RunID, second.RunID)
	info2, err := os.Stat(second.Path)
	require.NoError(t, err)
	assert.Equal(t, info1.ModTime(), info2.ModTime())

	m, err := manifest.Read(second.ManifestPath)
	require.NoError(t, err)
	assert.Equal(t, "unchanged", m.Status)
	assert.Equal(t, "vercel", m.Inputs.Target)
}

func TestGenerateFormatsAndManifestToggle(t *testing.T) {
	cfg, dir := setup(t, "output:\n  format: json\n  directory: out\n  manifest: false\n")

	rep, err := Generate(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out", "starlight.config.json"), rep.Path)
	assert.Empty(t, rep.ManifestPath)
	_, err = os.Stat(filepath.Join(dir, "out", config.ManifestFilename))
	assert.ErrorIs(t, err, os.ErrNotExist)

	out, err := os.ReadFile(rep.Path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "{"))
}

func TestGenerateValidateContent(t *testing.T) {
	cfg, dir := setup(t, "content:\n  validate: true\n")
	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)

	_, err := New(cfg, WithRecorder(rec)).Generate(context.Background())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryContent))
	_, statErr := os.Stat(filepath.Join(dir, "astro.config.mjs"))
	assert.ErrorIs(t, statErr, os.ErrNotExist)

	for _, d := range []string{"courses", "how-to", "explainers"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "src/content/docs", d), 0o755))
	}
	_, err = New(cfg, WithRecorder(rec)).Generate(context.Background())
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "sitecfg_generate_outcomes_total", "sitecfg_content_checks_total")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestGenerateToleratesMalformedPages(t *testing.T) {
	cfg, dir := setup(t, "")
	writePage(t, dir, "src/content/docs/courses/open.md", "---\ntitle: Intro\n...\n")
	writePage(t, dir, "src/content/docs/courses/colons.md", "---\ntitle: Foo: bar: baz\n---\n")
	writePage(t, dir, "src/content/docs/courses/ok.md", "# Fine\n")

	rep, err := Generate(context.Background(), cfg)
	require.NoError(t, err)
	assert.FileExists(t, rep.Path)
	assert.Len(t, rep.Groups[0].Pages, 1)
	assert.Len(t, rep.Groups[0].Skipped, 2)

	m, err := manifest.Read(rep.ManifestPath)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"courses/ok": rep.Groups[0].Pages[0].Fingerprint}, m.Pages)
}

func TestGenerateValidateRejectsMalformedPages(t *testing.T) {
	cfg, dir := setup(t, "content:\n  validate: true\n")
	for _, d := range []string{"how-to", "explainers"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "src/content/docs", d), 0o755))
	}
	writePage(t, dir, "src/content/docs/courses/open.md", "---\ntitle: Intro\n")

	_, err := Generate(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryContent))
	_, statErr := os.Stat(filepath.Join(dir, "astro.config.mjs"))
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestGenerateEditLink(t *testing.T) {
	cfg, _ := setup(t, "edit_link:\n  base_url: https://github.com/acme/docs/edit/main/\n")
	data, err := New(cfg).Render(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(data), `baseUrl: "https://github.com/acme/docs/edit/main/"`)
}

func TestGenerateEditLinkFromGit(t *testing.T) {
	cfg, dir := setup(t, "edit_link:\n  from_git: true\n  branch: main\n")
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{Name: "origin", URLs: []string{"git@github.com:acme/docs.git"}})
	require.NoError(t, err)

	opts, err := New(cfg).Options(context.Background())
	require.NoError(t, err)
	require.NotNil(t, opts.Starlight.EditLink)
	assert.Equal(t, "https://github.com/acme/docs/edit/main/", opts.Starlight.EditLink.BaseURL)
}

func TestGenerateEditLinkFromGitNestedProject(t *testing.T) {
	cfg, dir := setup(t, "output:\n  directory: site\nedit_link:\n  from_git: true\n  branch: main\n")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "site"), 0o755))
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{Name: "origin", URLs: []string{"https://github.com/acme/monorepo.git"}})
	require.NoError(t, err)

	opts, err := New(cfg).Options(context.Background())
	require.NoError(t, err)
	require.NotNil(t, opts.Starlight.EditLink)
	assert.Equal(t, "https://github.com/acme/monorepo/edit/main/site/", opts.Starlight.EditLink.BaseURL)
}

func TestGenerateEditLinkFromGitWithoutRepo(t *testing.T) {
	cfg, _ := setup(t, "edit_link:\n  from_git: true\n")
	_, err := Generate(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryGit))
}

func TestGenerateCanceled(t *testing.T) {
	cfg, _ := setup(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Generate(ctx, cfg)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryRuntime))
}
