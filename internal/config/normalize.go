package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/sitecfg/internal/adapter"
	"git.home.luguber.info/inful/sitecfg/internal/render"
)

// Normalize canonicalizes enumerated fields in place and returns warnings
// for coerced values. Unknown deployment targets and output formats are left
// untouched so validation can reject them: guessing either would produce a
// different site.
func Normalize(c *Config) []string {
	var warnings []string

	if t, ok := adapter.ParseTarget(string(c.Deployment.Target)); ok && strings.TrimSpace(string(c.Deployment.Target)) != "" {
		if t != c.Deployment.Target {
			warnings = append(warnings, warnChanged("deployment.target", c.Deployment.Target, t))
		}
		c.Deployment.Target = t
	}
	if f, ok := render.ParseFormat(string(c.Output.Format)); ok && strings.TrimSpace(string(c.Output.Format)) != "" {
		if f != c.Output.Format {
			warnings = append(warnings, warnChanged("output.format", c.Output.Format, f))
		}
		c.Output.Format = f
	}

	if raw := c.Logging.Level; raw != "" {
		lvl, ok := logLevelNormalizer.Lookup(string(raw))
		if !ok {
			warnings = append(warnings, warnUnknown("logging.level", string(raw), string(logLevelNormalizer.Default())))
			lvl = logLevelNormalizer.Default()
		} else if lvl != raw {
			warnings = append(warnings, warnChanged("logging.level", raw, lvl))
		}
		c.Logging.Level = lvl
	}
	if raw := c.Logging.Format; raw != "" {
		f, ok := logFormatNormalizer.Lookup(string(raw))
		if !ok {
			warnings = append(warnings, warnUnknown("logging.format", string(raw), string(logFormatNormalizer.Default())))
			f = logFormatNormalizer.Default()
		} else if f != raw {
			warnings = append(warnings, warnChanged("logging.format", raw, f))
		}
		c.Logging.Format = f
	}

	c.Content.Root = strings.TrimSpace(c.Content.Root)
	for i := range c.Site.Sidebar {
		c.Site.Sidebar[i].Label = strings.TrimSpace(c.Site.Sidebar[i].Label)
		c.Site.Sidebar[i].Directory = strings.Trim(strings.TrimSpace(c.Site.Sidebar[i].Directory), "/")
	}
	return warnings
}

func warnChanged[T ~string, U ~string](field string, from T, to U) string {
	return fmt.Sprintf("%s normalized from %q to %q", field, string(from), string(to))
}

func warnUnknown(field, value, fallback string) string {
	return fmt.Sprintf("%s: unknown value %q, using %q", field, value, fallback)
}
