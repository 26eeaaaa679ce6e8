package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"termwire/internal/config"
	"termwire/internal/glwin"
	"termwire/internal/term"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const title = "termwire"

type RunFlags struct {
	Backend string `help:"Display backend." enum:"term,gl" default:"term"`
	Status  bool   `help:"Show a status line under the terminal grid." default:"true" negatable:""`
	Cols    int    `help:"Grid columns for the gl backend." default:"120"`
	Rows    int    `help:"Grid rows for the gl backend." default:"48"`
	Cell    int    `help:"Cell size in pixels for the gl backend." default:"8"`
}

var CLI struct {
	Debug   bool     `help:"Whether to enable debug logging."`
	LogFile string   `help:"Write logs to this file." type:"path"`
	Configs []string `name:"config" help:"Configuration files, applied in order over the defaults."`

	Pyramid struct {
		RunFlags
	} `cmd:"" default:"1" help:"Rotate a wireframe pyramid."`

	Polygon struct {
		RunFlags
	} `cmd:"" help:"Spin a polygon defined in polar coordinates."`

	Config struct {
	} `cmd:"" help:"Write the default configuration to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

// setupLogging routes logs away from the terminal when the terminal backend
// owns it.
func setupLogging(backend string) (io.Closer, error) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if CLI.LogFile != "" {
		file, err := os.OpenFile(CLI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("could not open log file: %w", err)
		}
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: file, TimeFormat: time.RFC3339, NoColor: true})
		return file, nil
	}

	if backend == "term" {
		log.Logger = zerolog.Nop()
		return nil, nil
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	return nil, nil
}

func run(variant config.Variant, flags RunFlags) error {
	closer, err := setupLogging(flags.Backend)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	log.Debug().Msg("debug logging enabled")

	cfg, err := config.Load(CLI.Configs...)
	if err != nil {
		return err
	}

	switch flags.Backend {
	case "gl":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return glwin.Run(ctx, cfg, variant, glwin.Options{
			Cols:     flags.Cols,
			Rows:     flags.Rows,
			CellSize: flags.Cell,
			Title:    title,
		})
	default:
		return term.Run(cfg, variant, flags.Status)
	}
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(title),
		kong.Description("wireframe shapes rendered on a character grid"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	var err error
	switch ctx.Command() {
	case "pyramid":
		err = run(config.VariantPyramid, CLI.Pyramid.RunFlags)
	case "polygon":
		err = run(config.VariantPolygon, CLI.Polygon.RunFlags)
	case "config":
		_, err = os.Stdout.Write(config.DEFAULT)
	}
	if err != nil {
		writeError(err)
	}
}
