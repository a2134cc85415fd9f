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

// QuizRepo handles MongoDB operations for cuestionarios
type QuizRepo interface {
	Create(ctx context.Context, quiz *model.Cuestionario) error
	GetByID(ctx context.Context, id string) (*model.Cuestionario, error)
	ListByProfesor(ctx context.Context, profesorID string) ([]*model.Cuestionario, error)
	List(ctx context.Context) ([]*model.Cuestionario, error)
	Count(ctx context.Context) (int64, error)
}

type quizRepo struct {
	collection *mongo.Collection
}

// NewQuizRepo creates a new quiz repository
func NewQuizRepo(db *mongo.Database) QuizRepo {
	return &quizRepo{
		collection: db.Collection(quizzesCollection),
	}
}

func (r *quizRepo) Create(ctx context.Context, quiz *model.Cuestionario) error {
	now := time.Now()
	quiz.ID = primitive.NewObjectID().Hex()
	quiz.CreadoEn = now
	quiz.ActualizadoEn = now

	_, err := r.collection.InsertOne(ctx, quiz)
	return err
}

func (r *quizRepo) GetByID(ctx context.Context, id string) (*model.Cuestionario, error) {
	var quiz model.Cuestionario
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&quiz)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepo) ListByProfesor(ctx context.Context, profesorID string) ([]*model.Cuestionario, error) {
	return r.find(ctx, bson.M{"profesorId": profesorID})
}

func (r *quizRepo) List(ctx context.Context) ([]*model.Cuestionario, error) {
	return r.find(ctx, bson.M{})
}

func (r *quizRepo) find(ctx context.Context, filter bson.M) ([]*model.Cuestionario, error) {
	opts := options.Find().SetSort(bson.D{{Key: "creadoEn", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	quizzes := []*model.Cuestionario{}
	if err := cursor.All(ctx, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
