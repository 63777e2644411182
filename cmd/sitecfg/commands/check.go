package commands

import (
	"fmt"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/content"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct{}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root, g, config.Overrides{})
	if err != nil {
		return err
	}
	sidebar := cfg.SiteConfiguration().Sidebar()
	if err := content.Check(cfg.ContentRoot(), sidebar); err != nil {
		return err
	}
	groups, err := content.Discover(cfg.ContentRoot(), sidebar)
	if err != nil {
		return err
	}
	if err := content.CheckPages(groups); err != nil {
		return err
	}
	_, err = fmt.Fprintf(g.out(), "ok: %d sidebar directories present under %s\n", len(sidebar), cfg.ContentRoot())
	return err
}
