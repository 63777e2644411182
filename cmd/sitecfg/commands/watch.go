package commands

import (
	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	TargetFlags
	Output string `short:"o" help:"Output directory (overrides output.directory)" type:"path"`
}

func (c *WatchCmd) Run(g *Global, root *CLI) error {
	// Apply the file's logging settings before the runner takes over.
	if _, err := loadConfig(root, g, config.Overrides{}); err != nil {
		return err
	}
	r, err := watch.New(watch.Options{
		ConfigPath: root.Config,
		Overrides:  config.Overrides{Target: c.Target, Format: c.Format, OutputDir: c.Output},
	})
	if err != nil {
		return err
	}
	return r.Run(g.context())
}
