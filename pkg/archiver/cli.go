package archiver

import (
	"context"

	"github.com/travigo/tfl-bdd/pkg/config"
	"github.com/travigo/tfl-bdd/pkg/database"
	"github.com/travigo/tfl-bdd/pkg/report"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:      "archive",
		Usage:     "Store cucumber JSON results in MongoDB",
		ArgsUsage: "[results.json...]",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}

			resultsPaths := c.Args().Slice()
			if len(resultsPaths) == 0 {
				resultsPaths = []string{cfg.ResultsPath}
			}

			features, err := report.Load(resultsPaths...)
			if err != nil {
				return err
			}

			if err := database.Connect(); err != nil {
				return err
			}
			defer database.Disconnect()

			_, err = NewArchiver(cfg.Metadata).Archive(context.Background(), features)
			return err
		},
	}
}
