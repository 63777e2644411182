package config

import (
	"git.home.luguber.info/inful/sitecfg/internal/adapter"
	"git.home.luguber.info/inful/sitecfg/internal/render"
)

const (
	DefaultContentRoot = "src/content/docs"
	DefaultDebounce    = "500ms"
	DefaultRemote      = "origin"
)

func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = CurrentVersion
	}
	if c.Deployment.Target == "" {
		c.Deployment.Target = adapter.TargetStatic
	}
	if c.Content.Root == "" {
		c.Content.Root = DefaultContentRoot
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "."
	}
	if c.Output.Format == "" {
		c.Output.Format = render.FormatMJS
	}
	if c.Output.Filename == "" {
		c.Output.Filename = render.DefaultFilename(c.Output.Format)
	}
	if c.EditLink.FromGit && c.EditLink.Remote == "" {
		c.EditLink.Remote = DefaultRemote
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = DefaultDebounce
	}
	if c.Logging.Level == "" {
		c.Logging.Level = LogLevelInfo
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
}
