// Package mongo implements the building-configuration document store on
// top of the official MongoDB driver.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/veligame/adminpanel/internal/panel/domain"
	"github.com/veligame/adminpanel/internal/panel/store"
)

// collectionName matches the collection the game backend reads from.
const collectionName = "BuildingConfigurations"

type Configurations struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ store.Configurations = (*Configurations)(nil)

// NewConfigurations connects to MongoDB and binds the building
// configurations collection.
func NewConfigurations(ctx context.Context, uri, database string) (*Configurations, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}

	return &Configurations{
		client: client,
		coll:   client.Database(database).Collection(collectionName),
	}, nil
}

func (c *Configurations) ListConfigurations(ctx context.Context) ([]domain.BuildingConfiguration, error) {
	cur, err := c.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("mongo: find configurations: %w", err)
	}
	defer cur.Close(ctx)

	var configs []domain.BuildingConfiguration
	if err := cur.All(ctx, &configs); err != nil {
		return nil, fmt.Errorf("mongo: decode configurations: %w", err)
	}
	return configs, nil
}

func (c *Configurations) InsertConfiguration(ctx context.Context, cfg domain.BuildingConfiguration) error {
	if _, err := c.coll.InsertOne(ctx, cfg); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("mongo: insert configuration: %w", err)
	}
	return nil
}

func (c *Configurations) DeleteConfiguration(ctx context.Context, id string) error {
	res, err := c.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("mongo: delete configuration: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (c *Configurations) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *Configurations) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
