package commands

import (
	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/generator"
)

// PrintCmd implements the 'print' command.
type PrintCmd struct {
	TargetFlags
}

func (c *PrintCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root, g, config.Overrides{Target: c.Target, Format: c.Format})
	if err != nil {
		return err
	}
	data, err := generator.New(cfg).Render(g.context())
	if err != nil {
		return err
	}
	_, err = g.out().Write(data)
	return err
}
