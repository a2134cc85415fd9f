package repository

import (
	"aulaquiz/internal/model"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepo handles MongoDB operations for users
type UserRepo interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByIDPortal(ctx context.Context, idPortal string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	ListByRole(ctx context.Context, rol model.Role) ([]*model.User, error)
	Recent(ctx context.Context, limit int64) ([]*model.User, error)
	SetPhoto(ctx context.Context, id, path string) (*model.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, rol model.Role) (int64, error)
}

type userRepo struct {
	collection *mongo.Collection
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepo{
		collection: db.Collection(usersCollection),
	}
}

// Create stores user with a fresh hex id. A duplicate idPortal yields model.ErrDuplicateIDPortal.
func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return model.ErrDuplicateIDPortal
	}
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepo) GetByIDPortal(ctx context.Context, idPortal string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"idPortal": idPortal})
}

func (r *userRepo) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var user model.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context) ([]*model.User, error) {
	return r.find(ctx, bson.M{}, options.Find())
}

func (r *userRepo) ListByRole(ctx context.Context, rol model.Role) ([]*model.User, error) {
	return r.find(ctx, bson.M{"rol": rol}, options.Find().SetSort(bson.D{{Key: "creadoEn", Value: -1}}))
}

func (r *userRepo) Recent(ctx context.Context, limit int64) ([]*model.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "creadoEn", Value: -1}}).SetLimit(limit)
	return r.find(ctx, bson.M{}, opts)
}

func (r *userRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.User, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []*model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetPhoto updates fotoPerfil and returns the updated user, or nil if it does not exist
func (r *userRepo) SetPhoto(ctx context.Context, id, path string) (*model.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user model.User
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"fotoPerfil": path}},
		opts,
	).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *userRepo) CountByRole(ctx context.Context, rol model.Role) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"rol": rol})
}
