package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const TestRunsCollection = "test_runs"

func createIndexes() {
	createTestRunsIndexes()
}

func createTestRunsIndexes() {
	testRunsCollection := GetCollection(TestRunsCollection)
	testRunsIndex := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "runid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "creationdatetime", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "metadata.Test Environment", Value: 1}, {Key: "creationdatetime", Value: -1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := testRunsCollection.Indexes().CreateMany(context.Background(), testRunsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
