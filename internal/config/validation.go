package config

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/sitecfg/internal/adapter"
	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/render"
)

// Validate checks a normalized, defaulted configuration.
func Validate(c *Config) error {
	checks := []func(*Config) error{
		validateVersion,
		validateDeployment,
		validateSite,
		validateContent,
		validateOutput,
		validateEditLink,
		validateWatch,
	}
	for _, check := range checks {
		if err := check(c); err != nil {
			return err
		}
	}
	return nil
}

func invalid(field, msg string, value any) error {
	return ferrors.ValidationError(msg).WithContext("field", field).WithContext("value", value).Build()
}

func validateVersion(c *Config) error {
	if c.Version != CurrentVersion {
		return invalid("version", "unsupported configuration version (expected "+CurrentVersion+")", c.Version)
	}
	return nil
}

func validateDeployment(c *Config) error {
	switch c.Deployment.Target {
	case adapter.TargetStatic:
		return nil
	case adapter.TargetVercel:
		if adapter.New(c.Deployment.Target) == nil {
			return ferrors.InternalError("deployment adapter not registered").
				WithContext("target", string(c.Deployment.Target)).
				Build()
		}
		return nil
	default:
		return invalid("deployment.target", "unknown deployment target (expected static or vercel)", string(c.Deployment.Target))
	}
}

func validateSite(c *Config) error {
	for platform, u := range c.Site.Social {
		if strings.TrimSpace(platform) == "" {
			return invalid("site.social", "social platform key cannot be empty", u)
		}
		if err := validateHTTPURL(u); err != nil {
			return invalid("site.social."+platform, "social link must be an absolute http(s) URL", u)
		}
	}
	seenDirs := make(map[string]bool, len(c.Site.Sidebar))
	for i, g := range c.Site.Sidebar {
		if g.Label == "" {
			return invalid("site.sidebar", "sidebar group label cannot be empty", i)
		}
		if err := validateRelativeDir(g.Directory); err != nil {
			return invalid("site.sidebar."+g.Label+".directory", err.Error(), g.Directory)
		}
		if seenDirs[g.Directory] {
			return invalid("site.sidebar."+g.Label+".directory", "directory already used by another sidebar group", g.Directory)
		}
		seenDirs[g.Directory] = true
	}
	return nil
}

func validateContent(c *Config) error {
	if c.Content.Root == "" {
		return invalid("content.root", "content root cannot be empty", c.Content.Root)
	}
	return nil
}

func validateOutput(c *Config) error {
	if _, ok := render.ParseFormat(string(c.Output.Format)); !ok {
		return invalid("output.format", "unknown output format (expected mjs, json or yaml)", string(c.Output.Format))
	}
	if strings.ContainsAny(c.Output.Filename, `/\`) {
		return invalid("output.filename", "filename must not contain path separators", c.Output.Filename)
	}
	if c.Output.Filename == "." || c.Output.Filename == ".." {
		return invalid("output.filename", "filename must name a file", c.Output.Filename)
	}
	return nil
}

func validateEditLink(c *Config) error {
	if c.EditLink.BaseURL != "" && c.EditLink.FromGit {
		return invalid("edit_link", "base_url and from_git are mutually exclusive", c.EditLink.BaseURL)
	}
	if c.EditLink.BaseURL != "" {
		if err := validateHTTPURL(c.EditLink.BaseURL); err != nil {
			return invalid("edit_link.base_url", "edit link base must be an absolute http(s) URL", c.EditLink.BaseURL)
		}
	}
	return nil
}

func validateWatch(c *Config) error {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d < 0 {
		return invalid("watch.debounce", "debounce must be a non-negative duration", c.Watch.Debounce)
	}
	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errNotHTTP
	}
	return nil
}

type validationMsg string

func (m validationMsg) Error() string { return string(m) }

const (
	errNotHTTP     validationMsg = "not an absolute http(s) URL"
	errEmptyDir    validationMsg = "directory cannot be empty"
	errAbsoluteDir validationMsg = "directory must be relative to the content root"
	errEscapingDir validationMsg = "directory must stay inside the content root"
)

func validateRelativeDir(dir string) error {
	if dir == "" {
		return errEmptyDir
	}
	if filepath.IsAbs(dir) || path.IsAbs(dir) {
		return errAbsoluteDir
	}
	clean := path.Clean(filepath.ToSlash(dir))
	if clean == "." {
		return errEmptyDir
	}
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return errEscapingDir
	}
	return nil
}

// DebounceDuration returns the parsed watch debounce.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(w.Debounce)
	if err != nil {
		return 0
	}
	return d
}
