package report

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/tfl-bdd/pkg/http_server"
)

// NewServer serves the reports directory, with / redirecting to the HTML report
func NewServer(directory string, reportName string) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(http_server.NewLogger())

	webApp.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/" + reportName)
	})
	webApp.Static("/", directory)

	return webApp
}

func Serve(listen string, reportPath string) error {
	directory, reportName := filepath.Split(reportPath)
	if directory == "" {
		directory = "."
	}

	log.Info().Str("listen", listen).Str("directory", directory).Msgf("Serving report %s", reportName)

	return NewServer(directory, reportName).Listen(listen)
}
