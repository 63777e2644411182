package config

import (
	"git.home.luguber.info/inful/sitecfg/internal/adapter"
	"git.home.luguber.info/inful/sitecfg/internal/render"
)

// Overrides are command-line values that take precedence over the file.
// Empty fields leave the file's value in place.
type Overrides struct {
	Target    string
	OutputDir string
	Format    string
}

// Apply merges o into c and revalidates. A filename that was derived from the
// previous format follows the new one.
func (c *Config) Apply(o Overrides) error {
	if o.Target != "" {
		t, ok := adapter.ParseTarget(o.Target)
		if !ok {
			return invalid("--target", "unknown deployment target (expected static or vercel)", o.Target)
		}
		c.Deployment.Target = t
	}
	if o.Format != "" {
		f, ok := render.ParseFormat(o.Format)
		if !ok {
			return invalid("--format", "unknown output format (expected mjs, json or yaml)", o.Format)
		}
		if c.Output.Filename == render.DefaultFilename(c.Output.Format) {
			c.Output.Filename = render.DefaultFilename(f)
		}
		c.Output.Format = f
	}
	if o.OutputDir != "" {
		c.Output.Directory = o.OutputDir
	}
	return Validate(c)
}
