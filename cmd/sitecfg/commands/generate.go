package commands

import (
	"fmt"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/content"
	"git.home.luguber.info/inful/sitecfg/internal/generator"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	TargetFlags
	Output string `short:"o" help:"Output directory (overrides output.directory)" type:"path"`
}

func (c *GenerateCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root, g, config.Overrides{Target: c.Target, Format: c.Format, OutputDir: c.Output})
	if err != nil {
		return err
	}
	rep, err := generator.New(cfg).Generate(g.context())
	if err != nil {
		return err
	}
	state := "unchanged"
	if rep.Changed {
		state = "written"
	}
	_, err = fmt.Fprintf(g.out(), "%s %s (target %s, format %s, %d pages)\n",
		rep.Path, state, rep.Target, rep.Format, content.Pages(rep.Groups))
	return err
}
