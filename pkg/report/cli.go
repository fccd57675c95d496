package report

import (
	"github.com/travigo/tfl-bdd/pkg/config"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Build and view reports from cucumber JSON results",
		Subcommands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "generate the HTML report",
				ArgsUsage: "[results.json...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output",
						Usage: "HTML file to write, defaults to the configured report path",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					outputPath := cfg.ReportPath
					if c.IsSet("output") {
						outputPath = c.String("output")
					}

					resultsPaths := c.Args().Slice()
					if len(resultsPaths) == 0 {
						resultsPaths = []string{cfg.ResultsPath}
					}

					_, err = GenerateFile(outputPath, cfg.Metadata, resultsPaths...)
					return err
				},
			},
			{
				Name:  "serve",
				Usage: "serve the reports directory over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					return Serve(c.String("listen"), cfg.ReportPath)
				},
			},
		},
	}
}
