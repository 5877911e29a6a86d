package commands

import (
	"git.home.luguber.info/inful/staticbuild/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	path, _ := root.configPath()
	g.printf("Writing configuration to %s\n", path)
	if err := config.Init(path, i.Force); err != nil {
		g.printf("Initialization failed\n")
		return err
	}
	g.printf("Initialized successfully\n")
	return nil
}
