package config

import (
	"git.home.luguber.info/inful/sitecfg/internal/adapter"
	"git.home.luguber.info/inful/sitecfg/internal/render"
)

// CurrentVersion is the configuration schema version written by Init.
const CurrentVersion = "1.0"

// DefaultPath is the configuration file looked up when -c is not given.
const DefaultPath = "sitecfg.yaml"

// Config is the sitecfg configuration file.
type Config struct {
	Version    string           `yaml:"version"`
	Deployment DeploymentConfig `yaml:"deployment"`
	Site       SiteConfig       `yaml:"site,omitempty"`
	Content    ContentConfig    `yaml:"content"`
	Output     OutputConfig     `yaml:"output"`
	EditLink   EditLinkConfig   `yaml:"edit_link,omitempty"`
	Watch      WatchConfig      `yaml:"watch,omitempty"`
	Logging    LoggingConfig    `yaml:"logging,omitempty"`

	baseDir string
}

// DeploymentConfig selects the configuration variant.
type DeploymentConfig struct {
	Target adapter.Target `yaml:"target"` // static|vercel
}

// SiteConfig overrides the canonical site literal. Empty fields keep the defaults.
type SiteConfig struct {
	Title   string               `yaml:"title,omitempty"`
	Social  map[string]string    `yaml:"social,omitempty"`
	Sidebar []SidebarGroupConfig `yaml:"sidebar,omitempty"`
}

// SidebarGroupConfig is one sidebar group backed by a content directory.
type SidebarGroupConfig struct {
	Label     string `yaml:"label"`
	Directory string `yaml:"directory"`
}

// ContentConfig locates the documentation content tree.
type ContentConfig struct {
	Root     string `yaml:"root"`               // relative to the config file directory
	Validate bool   `yaml:"validate,omitempty"` // fail generation when a sidebar directory is missing
}

// OutputConfig controls what gets written and where.
type OutputConfig struct {
	Directory   string        `yaml:"directory"`
	Format      render.Format `yaml:"format"` // mjs|json|yaml
	Filename    string        `yaml:"filename,omitempty"`
	AlwaysWrite bool          `yaml:"always_write,omitempty"` // rewrite even when bytes are unchanged
	Manifest    *bool         `yaml:"manifest,omitempty"`     // write .sitecfg-manifest.json (default true)
}

// ManifestEnabled reports whether the run manifest is written.
func (o OutputConfig) ManifestEnabled() bool { return o.Manifest == nil || *o.Manifest }

// EditLinkConfig configures page edit links. BaseURL and FromGit are exclusive.
type EditLinkConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
	FromGit bool   `yaml:"from_git,omitempty"`
	Remote  string `yaml:"remote,omitempty"` // default origin
	Branch  string `yaml:"branch,omitempty"` // default: current branch
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	Debounce        string `yaml:"debounce,omitempty"`         // Go duration, default 500ms
	RecheckSchedule string `yaml:"recheck_schedule,omitempty"` // cron expression for periodic content checks
	MetricsAddr     string `yaml:"metrics_addr,omitempty"`     // serve /metrics when set
}

// LoggingConfig selects log level and output format.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}
