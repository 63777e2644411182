package commands

import (
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/content"
	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/site"
)

// DiscoverCmd implements the 'discover' command.
type DiscoverCmd struct {
	Group string `short:"g" help:"Only list the group with this label or directory"`
}

func (d *DiscoverCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root, g, config.Overrides{})
	if err != nil {
		return err
	}
	sidebar, err := selectGroups(cfg.SiteConfiguration().Sidebar(), d.Group)
	if err != nil {
		return err
	}
	groups, err := content.Discover(cfg.ContentRoot(), sidebar)
	if err != nil {
		return err
	}
	return printGroups(g.out(), groups)
}

func selectGroups(all []site.SidebarGroup, want string) ([]site.SidebarGroup, error) {
	if want == "" {
		return all, nil
	}
	for _, sg := range all {
		if strings.EqualFold(sg.Label(), want) || sg.Directory() == want {
			return []site.SidebarGroup{sg}, nil
		}
	}
	names := make([]string, 0, len(all))
	for _, sg := range all {
		names = append(names, sg.Label())
	}
	return nil, ferrors.NotFoundError("sidebar group not found").
		WithContext("group", want).
		WithContext("available", strings.Join(names, ", ")).
		Build()
}

func printGroups(w io.Writer, groups []content.Group) error {
	for _, grp := range groups {
		if _, err := fmt.Fprintf(w, "%s (%s)\n", grp.Label, grp.Directory); err != nil {
			return err
		}
		switch {
		case grp.Missing:
			if _, err := fmt.Fprintln(w, "  (directory missing)"); err != nil {
				return err
			}
		case len(grp.Pages) == 0 && len(grp.Skipped) == 0:
			if _, err := fmt.Fprintln(w, "  (no pages)"); err != nil {
				return err
			}
		}
		for _, p := range grp.Pages {
			if _, err := fmt.Fprintf(w, "  %-40s %s\n", p.Slug, p.Label); err != nil {
				return err
			}
		}
		for _, sp := range grp.Skipped {
			if _, err := fmt.Fprintf(w, "  (skipped %s: %v)\n", sp.Path, sp.Err); err != nil {
				return err
			}
		}
	}
	return nil
}
