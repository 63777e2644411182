package config

import "git.home.luguber.info/inful/sitecfg/internal/site"

// SiteParams converts the site overrides for the loader.
func (c *Config) SiteParams() site.Params {
	p := site.Params{
		Title:  c.Site.Title,
		Social: c.Site.Social,
		Target: c.Deployment.Target,
	}
	for _, g := range c.Site.Sidebar {
		p.Sidebar = append(p.Sidebar, site.NewSidebarGroup(g.Label, g.Directory))
	}
	return p
}

// SiteConfiguration builds the site configuration this file describes.
func (c *Config) SiteConfiguration() site.Configuration {
	return site.New(c.SiteParams())
}
