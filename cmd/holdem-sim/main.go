package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// version is set by ldflags during build
var version = "dev"

// Globals are shared by every subcommand.
type Globals struct {
	Config   string `short:"c" env:"HOLDEM_CONFIG" default:"holdem.hcl" help:"Path to the HCL config file (missing file uses defaults)"`
	LogLevel string `env:"HOLDEM_LOG_LEVEL" help:"Log level: debug, info, warn, error (overrides config)"`
	Seed     *int64 `env:"HOLDEM_SEED" help:"Deterministic RNG seed (overrides config)"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play one hand and print its history"`
	Simulate SimulateCmd      `cmd:"" help:"Play a batch of independent hands and report statistics"`
	Evaluate EvaluateCmd      `cmd:"" help:"Classify a set of cards"`
}

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem-sim"),
		kong.Description("Texas Hold'em hand simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(os.Stdout, (*io.Writer)(nil)),
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
