package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

// Feature mirrors one feature entry in a cucumber JSON log
type Feature struct {
	URI         string     `json:"uri" bson:"uri"`
	ID          string     `json:"id" bson:"id"`
	Keyword     string     `json:"keyword" bson:"keyword"`
	Name        string     `json:"name" bson:"name"`
	Description string     `json:"description" bson:"description"`
	Line        int        `json:"line" bson:"line"`
	Tags        []Tag      `json:"tags,omitempty" bson:"tags,omitempty"`
	Elements    []Scenario `json:"elements" bson:"elements"`
}

type Tag struct {
	Name string `json:"name" bson:"name"`
	Line int    `json:"line" bson:"line"`
}

type Scenario struct {
	ID          string `json:"id" bson:"id"`
	Keyword     string `json:"keyword" bson:"keyword"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
	Line        int    `json:"line" bson:"line"`
	Type        string `json:"type" bson:"type"`
	Tags        []Tag  `json:"tags,omitempty" bson:"tags,omitempty"`
	Steps       []Step `json:"steps" bson:"steps"`
}

type Step struct {
	Keyword    string      `json:"keyword" bson:"keyword"`
	Name       string      `json:"name" bson:"name"`
	Line       int         `json:"line" bson:"line"`
	Result     StepResult  `json:"result" bson:"result"`
	Embeddings []Embedding `json:"embeddings,omitempty" bson:"embeddings,omitempty"`
}

type StepResult struct {
	Status       string `json:"status" bson:"status"`
	ErrorMessage string `json:"error_message,omitempty" bson:"errormessage,omitempty"`
	// Duration is in nanoseconds
	Duration *int64 `json:"duration,omitempty" bson:"duration,omitempty"`
}

// Embedding data is base64 encoded
type Embedding struct {
	Name     string `json:"name" bson:"name"`
	MimeType string `json:"mime_type" bson:"mimetype"`
	Data     string `json:"data" bson:"data"`
}

type loadedFile struct {
	index    int
	features []Feature
}

// Load reads cucumber JSON logs, keeping the features in the order of the paths given
func Load(paths ...string) ([]Feature, error) {
	p := pool.NewWithResults[loadedFile]().WithErrors().WithMaxGoroutines(8)

	for index, path := range paths {
		p.Go(func() (loadedFile, error) {
			features, err := loadFile(path)
			return loadedFile{index: index, features: features}, err
		})
	}

	loadedFiles, err := p.Wait()
	if err != nil {
		return nil, err
	}

	sort.Slice(loadedFiles, func(i, j int) bool {
		return loadedFiles[i].index < loadedFiles[j].index
	})

	var features []Feature
	for _, loaded := range loadedFiles {
		features = append(features, loaded.features...)
	}

	return features, nil
}

func loadFile(path string) ([]Feature, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results %s: %w", path, err)
	}

	var features []Feature
	if err := json.Unmarshal(contents, &features); err != nil {
		return nil, fmt.Errorf("parse results %s: %w", path, err)
	}

	log.Debug().Str("path", path).Int("features", len(features)).Msg("Loaded cucumber results")

	return features, nil
}
