package testing

import (
	"os"
	"path/filepath"
	"testing"

	"git.home.luguber.info/inful/sitecfg/internal/adapter"
	"git.home.luguber.info/inful/sitecfg/internal/config"
	"gopkg.in/yaml.v3"
)

// Project is a temporary project directory holding a configuration file and
// a content tree.
type Project struct {
	Dir        string
	ConfigPath string

	t *testing.T
}

// ContentRoot is the project's content tree root.
func (p *Project) ContentRoot() string {
	return filepath.Join(p.Dir, filepath.FromSlash(config.DefaultContentRoot))
}

// Load loads the project's configuration file.
func (p *Project) Load() *config.Config {
	p.t.Helper()
	cfg, err := config.Load(p.ConfigPath)
	if err != nil {
		p.t.Fatalf("load %s: %v", p.ConfigPath, err)
	}
	return cfg
}

// Files returns assertions rooted at the project directory.
func (p *Project) Files() *FileAssertions {
	return NewFileAssertions(p.t, p.Dir)
}

// ProjectBuilder assembles a Project fluently.
type ProjectBuilder struct {
	t        *testing.T
	cfg      *config.Config
	raw      string
	noConfig bool
	dirs     []string
	pages    map[string]string
}

// NewProjectBuilder starts from the default configuration.
func NewProjectBuilder(t *testing.T) *ProjectBuilder {
	t.Helper()
	return &ProjectBuilder{t: t, cfg: config.Default(), pages: make(map[string]string)}
}

// WithTarget sets deployment.target.
func (b *ProjectBuilder) WithTarget(target adapter.Target) *ProjectBuilder {
	b.cfg.Deployment.Target = target
	return b
}

// WithTitle overrides site.title.
func (b *ProjectBuilder) WithTitle(title string) *ProjectBuilder {
	b.cfg.Site.Title = title
	return b
}

// WithContentValidation sets content.validate.
func (b *ProjectBuilder) WithContentValidation() *ProjectBuilder {
	b.cfg.Content.Validate = true
	return b
}

// WithRawConfig writes body verbatim instead of the built configuration.
func (b *ProjectBuilder) WithRawConfig(body string) *ProjectBuilder {
	b.raw = body
	return b
}

// WithoutConfig leaves the configuration file absent.
func (b *ProjectBuilder) WithoutConfig() *ProjectBuilder {
	b.noConfig = true
	return b
}

// WithGroupDirs creates the named directories under the content root.
func (b *ProjectBuilder) WithGroupDirs(dirs ...string) *ProjectBuilder {
	b.dirs = append(b.dirs, dirs...)
	return b
}

// WithDefaultGroupDirs creates the three default sidebar directories.
func (b *ProjectBuilder) WithDefaultGroupDirs() *ProjectBuilder {
	return b.WithGroupDirs("courses", "how-to", "explainers")
}

// WithPage writes a page at rel (slash separated, relative to the content root).
func (b *ProjectBuilder) WithPage(rel, body string) *ProjectBuilder {
	b.pages[rel] = body
	return b
}

// Build writes the project to a temporary directory.
func (b *ProjectBuilder) Build() *Project {
	b.t.Helper()
	p := &Project{Dir: b.t.TempDir(), t: b.t}
	p.ConfigPath = filepath.Join(p.Dir, config.DefaultPath)

	if !b.noConfig {
		data := []byte(b.raw)
		if b.raw == "" {
			var err error
			data, err = yaml.Marshal(b.cfg)
			if err != nil {
				b.t.Fatalf("marshal config: %v", err)
			}
		}
		b.write(p.ConfigPath, data)
	}
	for _, d := range b.dirs {
		if err := os.MkdirAll(filepath.Join(p.ContentRoot(), filepath.FromSlash(d)), testDirPermissions); err != nil {
			b.t.Fatalf("create %s: %v", d, err)
		}
	}
	for rel, body := range b.pages {
		b.write(filepath.Join(p.ContentRoot(), filepath.FromSlash(rel)), []byte(body))
	}
	return p
}

func (b *ProjectBuilder) write(path string, data []byte) {
	b.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), testDirPermissions); err != nil {
		b.t.Fatalf("create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, testFilePermissions); err != nil {
		b.t.Fatalf("write %s: %v", path, err)
	}
}
