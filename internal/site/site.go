// Package site builds the documentation site configuration handed to the
// Starlight integration at build time.
//
// A Configuration is constructed fresh on every call and never mutated:
// fields are unexported and accessors return copies. The loader does no I/O
// and no validation; whether a sidebar directory exists is checked (if at
// all) by the content package or by the external build tool.
package site

import (
	"maps"
	"slices"

	"git.home.luguber.info/inful/sitecfg/internal/adapter"
	_ "git.home.luguber.info/inful/sitecfg/internal/adapter/vercel" // registers the vercel adapter
)

// DeploymentTarget selects the configuration variant.
type DeploymentTarget = adapter.Target

const (
	TargetStatic = adapter.TargetStatic
	TargetVercel = adapter.TargetVercel
)

const (
	DefaultTitle = "Web API with .NET"

	// SocialGitHub is the platform key of the source repository host.
	SocialGitHub     = "github"
	DefaultGitHubURL = "https://github.com/withastro/starlight"
)

// SidebarGroup is a labeled navigation section populated by the build tool
// from a content directory.
type SidebarGroup struct {
	label     string
	directory string
}

// NewSidebarGroup returns a group backed by directory (relative to the content root).
func NewSidebarGroup(label, directory string) SidebarGroup {
	return SidebarGroup{label: label, directory: directory}
}

func (g SidebarGroup) Label() string     { return g.label }
func (g SidebarGroup) Directory() string { return g.directory }

// DefaultSidebar returns the canonical navigation order.
func DefaultSidebar() []SidebarGroup {
	return []SidebarGroup{
		NewSidebarGroup("Courses", "courses"),
		NewSidebarGroup("Guides", "how-to"),
		NewSidebarGroup("Explainers", "explainers"),
	}
}

// Configuration is the site configuration value.
type Configuration struct {
	title   string
	social  map[string]string
	sidebar []SidebarGroup
	target  DeploymentTarget
	adapter adapter.Handle
}

// Title is the site display title.
func (c Configuration) Title() string { return c.title }

// Social returns a copy of the platform -> URL mapping.
func (c Configuration) Social() map[string]string { return maps.Clone(c.social) }

// Sidebar returns a copy of the sidebar groups in authored order.
func (c Configuration) Sidebar() []SidebarGroup { return slices.Clone(c.sidebar) }

// Target is the deployment variant the configuration was built for.
func (c Configuration) Target() DeploymentTarget { return c.target }

// Adapter is the deployment adapter handle, nil when the variant has none.
func (c Configuration) Adapter() adapter.Handle { return c.adapter }

// HasAdapter reports whether a deployment adapter is wired.
func (c Configuration) HasAdapter() bool { return c.adapter != nil }
