package report

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
)

//go:embed templates/report.html.tmpl
var templates embed.FS

var reportTemplate = template.Must(template.New("report.html.tmpl").Funcs(template.FuncMap{
	"scenarioStatus": ScenarioStatus,
	"decodeEmbedding": func(embedding Embedding) string {
		decoded, err := base64.StdEncoding.DecodeString(embedding.Data)
		if err != nil {
			return embedding.Data
		}
		return string(decoded)
	},
	"nanoseconds": func(duration *int64) string {
		if duration == nil {
			return ""
		}
		return time.Duration(*duration).Round(time.Millisecond).String()
	},
}).ParseFS(templates, "templates/report.html.tmpl"))

type MetadataEntry struct {
	Name  string
	Value string
}

type page struct {
	Title       string
	GeneratedAt time.Time
	Metadata    []MetadataEntry
	Summary     Summary
	Features    []Feature
}

// Generate writes a standalone HTML summary of the features
func Generate(w io.Writer, features []Feature, metadata map[string]string) error {
	data := page{
		Title:       "Journey Planning Test Report",
		GeneratedAt: time.Now(),
		Metadata:    sortedMetadata(metadata),
		Summary:     Summarise(features),
		Features:    features,
	}

	if err := reportTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	return nil
}

// GenerateFile renders the report for the given cucumber JSON logs into outputPath
func GenerateFile(outputPath string, metadata map[string]string, resultsPaths ...string) (Summary, error) {
	features, err := Load(resultsPaths...)
	if err != nil {
		return Summary{}, err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return Summary{}, err
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return Summary{}, err
	}
	defer file.Close()

	if err := Generate(file, features, metadata); err != nil {
		return Summary{}, err
	}

	summary := Summarise(features)
	log.Info().
		Str("path", outputPath).
		Int("scenarios", summary.Scenarios.Total).
		Int("passed", summary.Scenarios.Passed).
		Int("failed", summary.Scenarios.Failed).
		Msg("Generated HTML report")

	return summary, nil
}

func sortedMetadata(metadata map[string]string) []MetadataEntry {
	entries := make([]MetadataEntry, 0, len(metadata))
	for name, value := range metadata {
		entries = append(entries, MetadataEntry{Name: name, Value: value})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries
}
