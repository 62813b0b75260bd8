package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nnx1/internal/model"
)

// ResponseRepo stores one row per answered question. A session has at most
// one row per question code; saving again replaces the answer.
type ResponseRepo interface {
	Save(ctx context.Context, resp *model.QuestionnaireResponse) error
	Delete(ctx context.Context, sessionID, questionCode string) error
	GetBySessionID(ctx context.Context, sessionID string) ([]*model.QuestionnaireResponse, error)
	GetByTool(ctx context.Context, tool model.ToolID) ([]*model.QuestionnaireResponse, error)
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a MongoDB-backed response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("questionnaire_responses"),
	}
}

// prepareResponse fills the id, timestamp and anonymous defaults
func prepareResponse(resp *model.QuestionnaireResponse) {
	if resp.ID == "" {
		resp.ID = uuid.NewString()
	}
	if resp.CreatedAt.IsZero() {
		resp.CreatedAt = time.Now().UTC()
	}
	if resp.UserName == "" {
		resp.UserName = model.AnonymousUserName
	}
	if resp.EmailAddress == "" {
		resp.EmailAddress = model.AnonymousUserEmail
	}
}

func (r *responseRepo) Save(ctx context.Context, resp *model.QuestionnaireResponse) error {
	prepareResponse(resp)

	filter := bson.M{"sessionId": resp.SessionID, "questionCode": resp.QuestionCode}
	update := bson.M{
		"$set": bson.M{
			"userName":     resp.UserName,
			"emailAddress": resp.EmailAddress,
			"phoneNumber":  resp.PhoneNumber,
			"toolId":       resp.Tool,
			"toolName":     resp.ToolName,
			"questionText": resp.QuestionText,
			"answer":       resp.Answer,
			"createdAt":    resp.CreatedAt,
		},
		"$setOnInsert": bson.M{"_id": resp.ID},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *responseRepo) Delete(ctx context.Context, sessionID, questionCode string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"sessionId": sessionID, "questionCode": questionCode})
	return err
}

func (r *responseRepo) GetBySessionID(ctx context.Context, sessionID string) ([]*model.QuestionnaireResponse, error) {
	return r.find(ctx, bson.M{"sessionId": sessionID})
}

func (r *responseRepo) GetByTool(ctx context.Context, tool model.ToolID) ([]*model.QuestionnaireResponse, error) {
	return r.find(ctx, bson.M{"toolId": tool})
}

func (r *responseRepo) find(ctx context.Context, filter bson.M) ([]*model.QuestionnaireResponse, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "questionCode", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.QuestionnaireResponse
	if err = cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}
