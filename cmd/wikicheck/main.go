package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/wikicheck/cmd/wikicheck/commands"
	"git.home.luguber.info/inful/wikicheck/internal/version"
)

func main() {
	// Optional .env file for WIKICHECK_* variables; absence is not an error.
	_ = godotenv.Load()

	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("wikicheck"),
		kong.Description("Cross-reference checker for a multi-language Markdown wiki"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	if err := ctx.Run(&commands.Global{Logger: slog.Default()}); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
