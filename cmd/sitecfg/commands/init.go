package commands

import (
	"fmt"

	"git.home.luguber.info/inful/sitecfg/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}
	_, err := fmt.Fprintf(g.out(), "Wrote %s\n", root.Config)
	return err
}
