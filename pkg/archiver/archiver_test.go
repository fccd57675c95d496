package archiver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/tfl-bdd/pkg/report"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeCollection struct {
	documents []interface{}
	err       error
}

func (f *fakeCollection) InsertOne(_ context.Context, document interface{}, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.documents = append(f.documents, document)

	return &mongo.InsertOneResult{InsertedID: len(f.documents)}, nil
}

func TestArchive(t *testing.T) {
	features, err := report.Load("../report/testdata/cucumber-report.json")
	require.NoError(t, err)

	collection := &fakeCollection{}
	archiver := &Archiver{
		Collection: collection,
		Metadata:   map[string]string{"Test Environment": "STAGING"},
	}

	testRun, err := archiver.Archive(context.Background(), features)
	require.NoError(t, err)

	require.Len(t, collection.documents, 1)
	assert.Same(t, testRun, collection.documents[0])
	assert.NotEmpty(t, testRun.RunID)
	assert.False(t, testRun.CreationDateTime.IsZero())
	assert.Equal(t, 3, testRun.Summary.Scenarios.Total)
	assert.Equal(t, "STAGING", testRun.Metadata["Test Environment"])
}

func TestArchiveGivesEachRunItsOwnID(t *testing.T) {
	archiver := &Archiver{Collection: &fakeCollection{}}

	first, err := archiver.Archive(context.Background(), nil)
	require.NoError(t, err)
	second, err := archiver.Archive(context.Background(), nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestArchiveInsertFailure(t *testing.T) {
	archiver := &Archiver{Collection: &fakeCollection{err: errors.New("connection refused")}}

	testRun, err := archiver.Archive(context.Background(), nil)

	assert.Nil(t, testRun)
	assert.ErrorContains(t, err, "archive test run: connection refused")
}
