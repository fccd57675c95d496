package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/travigo/tfl-bdd/pkg/geocoding"
	"github.com/travigo/tfl-bdd/pkg/tfl"
	"github.com/travigo/tfl-bdd/pkg/util"
	"gopkg.in/yaml.v3"
)

const (
	defaultFeaturesPath = "features"
	defaultResultsPath  = "reports/cucumber-report.json"
	defaultReportPath   = "reports/cucumber-report.html"
	defaultTimezone     = "Europe/London"
)

var (
	ErrMissingOpenCageKey = errors.New("TFLBDD_OPENCAGE_API_KEY must be set")
	ErrMissingTfLKey      = errors.New("TFLBDD_TFL_APP_KEY must be set")
)

// Config holds the runner settings. API keys only ever come from the environment.
type Config struct {
	OpenCageAPIKey string `yaml:"-"`
	TfLAppKey      string `yaml:"-"`

	GeocodingBaseURL string `yaml:"geocodingBaseURL"`
	TfLBaseURL       string `yaml:"tflBaseURL"`

	FeaturePaths []string `yaml:"features"`
	Tags         string   `yaml:"tags"`
	ResultsPath  string   `yaml:"results"`
	ReportPath   string   `yaml:"report"`
	Timezone     string   `yaml:"timezone"`

	// GeocodeCache serves repeat lookups from Redis
	GeocodeCache bool `yaml:"geocodeCache"`

	Metadata map[string]string `yaml:"metadata"`
}

func Default() *Config {
	return &Config{
		GeocodingBaseURL: geocoding.DefaultBaseURL,
		TfLBaseURL:       tfl.DefaultBaseURL,
		FeaturePaths:     []string{defaultFeaturesPath},
		ResultsPath:      defaultResultsPath,
		ReportPath:       defaultReportPath,
		Timezone:         defaultTimezone,
		Metadata: map[string]string{
			"App Version":      "1.0.0",
			"Test Environment": "STAGING",
		},
	}
}

// Load reads .env (if present), then the optional YAML file, then environment overrides
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("Failed to read .env file")
	}

	env := util.GetEnvironmentVariables()

	if path == "" {
		path = env["TFLBDD_CONFIG"]
	}

	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvironment(env)

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(contents, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	log.Debug().Str("path", path).Msg("Loaded config file")

	return nil
}

func (c *Config) applyEnvironment(env map[string]string) {
	c.OpenCageAPIKey = env["TFLBDD_OPENCAGE_API_KEY"]
	c.TfLAppKey = env["TFLBDD_TFL_APP_KEY"]

	if env["TFLBDD_GEOCODING_BASE_URL"] != "" {
		c.GeocodingBaseURL = env["TFLBDD_GEOCODING_BASE_URL"]
	}

	if env["TFLBDD_TFL_BASE_URL"] != "" {
		c.TfLBaseURL = env["TFLBDD_TFL_BASE_URL"]
	}

	if env["TFLBDD_FEATURES"] != "" {
		c.FeaturePaths = strings.Split(env["TFLBDD_FEATURES"], ",")
	}

	if env["TFLBDD_TAGS"] != "" {
		c.Tags = env["TFLBDD_TAGS"]
	}

	if env["TFLBDD_TIMEZONE"] != "" {
		c.Timezone = env["TFLBDD_TIMEZONE"]
	}

	if util.IsEnvironmentFlagSet(env, "TFLBDD_GEOCODE_CACHE") {
		c.GeocodeCache = true
	}
}

// Validate checks the settings needed to call the live providers
func (c *Config) Validate() error {
	var errs []error

	if c.OpenCageAPIKey == "" {
		errs = append(errs, ErrMissingOpenCageKey)
	}
	if c.TfLAppKey == "" {
		errs = append(errs, ErrMissingTfLKey)
	}
	if len(c.FeaturePaths) == 0 {
		errs = append(errs, errors.New("at least one feature path is required"))
	}

	return errors.Join(errs...)
}
