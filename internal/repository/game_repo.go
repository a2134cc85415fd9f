package repository

import (
	"aulaquiz/internal/model"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GameRepo handles MongoDB operations for partidas
type GameRepo interface {
	Create(ctx context.Context, game *model.Partida) error
	GetByID(ctx context.Context, id string) (*model.Partida, error)
	GetByPin(ctx context.Context, pin string) (*model.Partida, error)
	List(ctx context.Context, estado model.GameState) ([]*model.Partida, error)
	ListByProfesor(ctx context.Context, profesorID string) ([]*model.Partida, error)
	Update(ctx context.Context, game *model.Partida) error
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByState(ctx context.Context, states ...model.GameState) (int64, error)
}

type gameRepo struct {
	collection *mongo.Collection
}

// NewGameRepo creates a new game repository
func NewGameRepo(db *mongo.Database) GameRepo {
	return &gameRepo{
		collection: db.Collection(gamesCollection),
	}
}

// Create inserts game. A PIN collision yields model.ErrDuplicatePIN.
func (r *gameRepo) Create(ctx context.Context, game *model.Partida) error {
	now := time.Now()
	game.ID = primitive.NewObjectID().Hex()
	game.CreadaEn = now
	game.ActualizadaEn = now

	_, err := r.collection.InsertOne(ctx, game)
	if mongo.IsDuplicateKeyError(err) {
		return model.ErrDuplicatePIN
	}
	return err
}

func (r *gameRepo) GetByID(ctx context.Context, id string) (*model.Partida, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *gameRepo) GetByPin(ctx context.Context, pin string) (*model.Partida, error) {
	return r.findOne(ctx, bson.M{"pin": pin})
}

func (r *gameRepo) findOne(ctx context.Context, filter bson.M) (*model.Partida, error) {
	var game model.Partida
	err := r.collection.FindOne(ctx, filter).Decode(&game)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// List returns every game, optionally restricted to one state
func (r *gameRepo) List(ctx context.Context, estado model.GameState) ([]*model.Partida, error) {
	filter := bson.M{}
	if estado != "" {
		filter["estado"] = estado
	}
	return r.find(ctx, filter)
}

func (r *gameRepo) ListByProfesor(ctx context.Context, profesorID string) ([]*model.Partida, error) {
	return r.find(ctx, bson.M{"profesorId": profesorID})
}

func (r *gameRepo) find(ctx context.Context, filter bson.M) ([]*model.Partida, error) {
	opts := options.Find().SetSort(bson.D{{Key: "creadaEn", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	games := []*model.Partida{}
	if err := cursor.All(ctx, &games); err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepo) Update(ctx context.Context, game *model.Partida) error {
	game.ActualizadaEn = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": game.ID}, game)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gameRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *gameRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *gameRepo) CountByState(ctx context.Context, states ...model.GameState) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"estado": bson.M{"$in": states}})
}
