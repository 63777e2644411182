package render

import (
	"sort"

	"git.home.luguber.info/inful/sitecfg/internal/site"
)

// AstroConfig is the option object handed to the site build tool.
type AstroConfig struct {
	Adapter   *AdapterCall     `json:"adapter,omitempty" yaml:"adapter,omitempty"`
	Starlight StarlightOptions `json:"starlight" yaml:"starlight"`
}

// AdapterCall describes how the build config instantiates the deployment adapter.
type AdapterCall struct {
	Module  string         `json:"module" yaml:"module"`
	Import  string         `json:"import" yaml:"import"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// StarlightOptions are the recognized Starlight integration options.
type StarlightOptions struct {
	Title    string            `json:"title" yaml:"title"`
	Social   map[string]string `json:"social" yaml:"social"`
	EditLink *EditLink         `json:"editLink,omitempty" yaml:"editLink,omitempty"`
	Sidebar  []SidebarEntry    `json:"sidebar" yaml:"sidebar"`
}

// EditLink points page edit links at the source repository.
type EditLink struct {
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`
}

// SidebarEntry is one autogenerated sidebar group.
type SidebarEntry struct {
	Label        string       `json:"label" yaml:"label"`
	Autogenerate Autogenerate `json:"autogenerate" yaml:"autogenerate"`
}

// Autogenerate names the content directory the build tool scans.
type Autogenerate struct {
	Directory string `json:"directory" yaml:"directory"`
}

// Options tune the option object beyond what the site configuration carries.
type Options struct {
	EditLinkBaseURL string
}

// Build maps a site configuration onto the build tool's option shape.
func Build(cfg site.Configuration, opts Options) AstroConfig {
	out := AstroConfig{
		Starlight: StarlightOptions{
			Title:  cfg.Title(),
			Social: cfg.Social(),
		},
	}
	for _, g := range cfg.Sidebar() {
		out.Starlight.Sidebar = append(out.Starlight.Sidebar, SidebarEntry{
			Label:        g.Label(),
			Autogenerate: Autogenerate{Directory: g.Directory()},
		})
	}
	if opts.EditLinkBaseURL != "" {
		out.Starlight.EditLink = &EditLink{BaseURL: opts.EditLinkBaseURL}
	}
	if h := cfg.Adapter(); h != nil {
		out.Adapter = &AdapterCall{Module: h.Module(), Import: h.ImportName(), Options: h.Options()}
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
