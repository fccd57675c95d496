package steps

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"
	"github.com/rs/zerolog/log"
)

type SuiteConfig struct {
	// FeaturePaths are feature files or directories
	FeaturePaths []string
	// ResultsPath is where the cucumber JSON log is written, empty to disable
	ResultsPath string
	Tags        string
	NoColors    bool
}

// NewSuite builds the godog suite the way the runner config asks for it: progress output plus a cucumber JSON log
func NewSuite(dependencies Dependencies, config SuiteConfig) godog.TestSuite {
	formats := []string{"progress"}
	if config.ResultsPath != "" {
		formats = append(formats, fmt.Sprintf("cucumber:%s", config.ResultsPath))
	}

	return godog.TestSuite{
		Name: "tfl-journey-planning",
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			InitializeScenario(sc, dependencies)
		},
		Options: &godog.Options{
			Format:   strings.Join(formats, ","),
			Paths:    config.FeaturePaths,
			Tags:     config.Tags,
			NoColors: config.NoColors,
			Strict:   true,
		},
	}
}

// RunSuite runs every scenario and returns an error when any of them failed
func RunSuite(dependencies Dependencies, config SuiteConfig) error {
	if config.ResultsPath != "" {
		if err := os.MkdirAll(filepath.Dir(config.ResultsPath), 0755); err != nil {
			return fmt.Errorf("create results directory: %w", err)
		}
	}

	log.Info().Strs("features", config.FeaturePaths).Str("results", config.ResultsPath).Msg("Running journey planning features")

	suite := NewSuite(dependencies, config)
	if status := suite.Run(); status != 0 {
		return fmt.Errorf("journey planning features failed with status %d", status)
	}

	return nil
}
