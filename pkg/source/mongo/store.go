// Package mongo provides a MongoDB-backed timeline store.
//
// Timelines are kept one per document, addressed by a unique name. The store
// is an alternative input source for the CLI: teams curating a shared set of
// timelines can render any of them by name instead of passing files around.
package mongo

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/chronoplot/pkg/errors"
	"github.com/matzehuels/chronoplot/pkg/timeline"
)

// Store reads and writes timeline documents in a MongoDB collection.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// document is the stored form of a named timeline.
type document struct {
	Name     string            `bson:"name"`
	Timeline timeline.Timeline `bson:"timeline"`
}

// Connect establishes a connection and verifies it with a ping.
func Connect(ctx context.Context, uri, database, collection string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &Store{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Load retrieves the timeline stored under name.
func (s *Store) Load(ctx context.Context, name string) (*timeline.Timeline, error) {
	if err := errors.ValidateTimelineName(name); err != nil {
		return nil, err
	}

	var doc document
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeTimelineNotFound, "timeline %q not found", name)
	}
	if err != nil {
		return nil, err
	}
	return &doc.Timeline, nil
}

// Save stores tl under name, replacing any existing document (upsert).
func (s *Store) Save(ctx context.Context, name string, tl *timeline.Timeline) error {
	if err := errors.ValidateTimelineName(name); err != nil {
		return err
	}

	doc := document{Name: name, Timeline: *tl}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"name": name}, doc, options.Replace().SetUpsert(true))
	return err
}

// Delete removes the timeline stored under name. Deleting a missing timeline
// is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateTimelineName(name); err != nil {
		return err
	}
	_, err := s.coll.DeleteOne(ctx, bson.M{"name": name})
	return err
}

// List returns the names of all stored timelines, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "name", bson.D{})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
