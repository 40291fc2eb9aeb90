package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pulseform/internal/model"
)

// ResponseRepo handles MongoDB operations for submitted responses
type ResponseRepo interface {
	Insert(ctx context.Context, rec *model.ResponseRecord) (string, error)
	GetBySessionID(ctx context.Context, sessionID string) (*model.ResponseRecord, error)
	GetBySurveyID(ctx context.Context, surveyID string) ([]*model.ResponseRecord, error)
	CountBySurveyID(ctx context.Context, surveyID string) (int64, error)
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("responses"),
	}
}

func (r *responseRepo) Insert(ctx context.Context, rec *model.ResponseRecord) (string, error) {
	rec.SubmittedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, rec)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	return oid.Hex(), nil
}

func (r *responseRepo) GetBySessionID(ctx context.Context, sessionID string) (*model.ResponseRecord, error) {
	var rec model.ResponseRecord
	err := r.collection.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *responseRepo) GetBySurveyID(ctx context.Context, surveyID string) ([]*model.ResponseRecord, error) {
	opts := options.Find().SetSort(bson.M{"submittedAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"surveyId": surveyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recs []*model.ResponseRecord
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *responseRepo) CountBySurveyID(ctx context.Context, surveyID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"surveyId": surveyID})
}
