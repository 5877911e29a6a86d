package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/staticbuild/cmd/staticbuild/commands"
	"git.home.luguber.info/inful/staticbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/staticbuild/internal/version"
)

func main() {
	cli := &commands.CLI{}
	globals := &commands.Global{Stdout: os.Stdout}

	parser := kong.Parse(cli,
		kong.Name("staticbuild"),
		kong.Description("Build the public/private key demo site into an output directory."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	if err := parser.Run(globals, cli); err != nil {
		adapter := errors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
		adapter.HandleError(err)
	}
}
