package site

import (
	"maps"
	"slices"

	"git.home.luguber.info/inful/sitecfg/internal/adapter"
)

// Params carries caller overrides. Zero-valued fields take the defaults.
type Params struct {
	Title   string
	Social  map[string]string
	Sidebar []SidebarGroup
	Target  DeploymentTarget
}

// Load returns the canonical configuration for target.
func Load(target DeploymentTarget) Configuration {
	return New(Params{Target: target})
}

// New builds a configuration from p, filling unset fields from the canonical
// literal. An empty target means TargetStatic. The adapter for the target,
// if any, is instantiated with no arguments and embedded as-is.
func New(p Params) Configuration {
	c := Configuration{
		title:   p.Title,
		social:  maps.Clone(p.Social),
		sidebar: slices.Clone(p.Sidebar),
		target:  p.Target,
	}
	if c.title == "" {
		c.title = DefaultTitle
	}
	if len(c.social) == 0 {
		c.social = map[string]string{SocialGitHub: DefaultGitHubURL}
	}
	if len(c.sidebar) == 0 {
		c.sidebar = DefaultSidebar()
	}
	if c.target == "" {
		c.target = TargetStatic
	}
	c.adapter = adapter.New(c.target)
	return c
}
