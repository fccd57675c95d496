package steps

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/tfl-bdd/pkg/config"
	"github.com/travigo/tfl-bdd/pkg/geocoding"
	"github.com/travigo/tfl-bdd/pkg/redis_client"
	"github.com/travigo/tfl-bdd/pkg/report"
	"github.com/travigo/tfl-bdd/pkg/tfl"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the journey planning features against the live TfL and OpenCage APIs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "tags",
				Usage: "only run scenarios matching this tag expression",
			},
			&cli.BoolFlag{
				Name:  "html",
				Value: true,
				Usage: "generate the HTML report once the run finishes",
			},
			&cli.BoolFlag{
				Name:  "no-colors",
				Usage: "disable ANSI colours in progress output",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if c.IsSet("tags") {
				cfg.Tags = c.String("tags")
			}

			location, err := time.LoadLocation(cfg.Timezone)
			if err != nil {
				return fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
			}

			var geocoder geocoding.Geocoder = geocoding.NewClient(cfg.GeocodingBaseURL, cfg.OpenCageAPIKey)
			if cfg.GeocodeCache {
				if err := redis_client.Connect(); err != nil {
					return fmt.Errorf("connect to redis for geocode cache: %w", err)
				}
				geocoder = geocoding.NewRedisCachedGeocoder(geocoder, redis_client.Client)
			}

			dependencies := Dependencies{
				Geocoder: geocoder,
				Planner:  tfl.NewClient(cfg.TfLBaseURL, cfg.TfLAppKey),
				Logger:   log.Logger,
				Now: func() time.Time {
					return time.Now().In(location)
				},
			}

			runErr := RunSuite(dependencies, SuiteConfig{
				FeaturePaths: cfg.FeaturePaths,
				ResultsPath:  cfg.ResultsPath,
				Tags:         cfg.Tags,
				NoColors:     c.Bool("no-colors"),
			})

			if c.Bool("html") && cfg.ResultsPath != "" {
				if _, err := report.GenerateFile(cfg.ReportPath, cfg.Metadata, cfg.ResultsPath); err != nil {
					log.Error().Err(err).Msg("Failed to generate HTML report")
				}
			}

			return runErr
		},
	}
}
