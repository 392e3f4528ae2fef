package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/blogbuilder/cmd/blogbuilder/commands"
	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("blogbuilder"),
		kong.Description("Generate a static blog from Markdown posts with TOML front matter."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	adapter := ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
	if err := ctx.Run(&commands.Global{Logger: slog.Default(), Stdout: os.Stdout, Stderr: os.Stderr}); err != nil {
		adapter.HandleError(err)
	}
}
