package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/tfl-bdd/pkg/archiver"
	"github.com/travigo/tfl-bdd/pkg/report"
	"github.com/travigo/tfl-bdd/pkg/steps"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("TFLBDD_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("TFLBDD_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "tfl-bdd",
		Description: "Behaviour driven tests for the TfL journey planner and OpenCage geocoding APIs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "optional YAML config file",
				EnvVars: []string{"TFLBDD_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			steps.RegisterCLI(),
			report.RegisterCLI(),
			archiver.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
