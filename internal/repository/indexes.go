package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection   = "usuarios"
	quizzesCollection = "cuestionarios"
	gamesCollection   = "partidas"
)

// EnsureIndexes creates the indexes the repositories rely on.
// The idPortal and pin indexes enforce uniqueness, so a failure there is returned.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := createIndex(ctx, db.Collection(usersCollection), bson.D{{Key: "idPortal", Value: 1}}, true); err != nil {
		return err
	}
	if err := createIndex(ctx, db.Collection(gamesCollection), bson.D{{Key: "pin", Value: 1}}, true); err != nil {
		return err
	}

	// Listing and dashboard helpers
	secondary := []struct {
		coll string
		keys bson.D
	}{
		{usersCollection, bson.D{{Key: "creadoEn", Value: -1}}},
		{usersCollection, bson.D{{Key: "rol", Value: 1}}},
		{quizzesCollection, bson.D{{Key: "profesorId", Value: 1}, {Key: "creadoEn", Value: -1}}},
		{gamesCollection, bson.D{{Key: "profesorId", Value: 1}, {Key: "creadaEn", Value: -1}}},
		{gamesCollection, bson.D{{Key: "estado", Value: 1}}},
	}
	for _, idx := range secondary {
		if err := createIndex(ctx, db.Collection(idx.coll), idx.keys, false); err != nil {
			return err
		}
	}
	return nil
}

func createIndex(ctx context.Context, coll *mongo.Collection, keys bson.D, unique bool) error {
	opts := options.Index().SetUnique(unique)
	if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys, Options: opts}); err != nil {
		return fmt.Errorf("create index on %s: %w", coll.Name(), err)
	}
	return nil
}
