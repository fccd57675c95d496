package archiver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/travigo/tfl-bdd/pkg/database"
	"github.com/travigo/tfl-bdd/pkg/report"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestRun is one archived execution of the feature suite
type TestRun struct {
	RunID            string
	CreationDateTime time.Time

	Metadata map[string]string
	Summary  report.Summary

	Features []report.Feature
}

type inserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

type Archiver struct {
	Collection inserter
	Metadata   map[string]string
}

// NewArchiver archives into the test_runs collection, database.Connect must have been called
func NewArchiver(metadata map[string]string) *Archiver {
	return &Archiver{
		Collection: database.GetCollection(database.TestRunsCollection),
		Metadata:   metadata,
	}
}

func (a *Archiver) Archive(ctx context.Context, features []report.Feature) (*TestRun, error) {
	testRun := &TestRun{
		RunID:            uuid.NewString(),
		CreationDateTime: time.Now(),
		Metadata:         a.Metadata,
		Summary:          report.Summarise(features),
		Features:         features,
	}

	if _, err := a.Collection.InsertOne(ctx, testRun); err != nil {
		return nil, fmt.Errorf("archive test run: %w", err)
	}

	log.Info().
		Str("runid", testRun.RunID).
		Int("scenarios", testRun.Summary.Scenarios.Total).
		Int("failed", testRun.Summary.Scenarios.Failed).
		Msg("Archived test run")

	return testRun, nil
}
