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

// DeliveryRepo keeps the log of report delivery attempts
type DeliveryRepo interface {
	Create(ctx context.Context, rec *model.DeliveryRecord) error
	UpdateStatus(ctx context.Context, id string, status model.DeliveryStatus, message string, pdfAttached bool) error
	GetByID(ctx context.Context, id string) (*model.DeliveryRecord, error)
	ListBySession(ctx context.Context, sessionID string) ([]*model.DeliveryRecord, error)
}

type deliveryRepo struct {
	collection *mongo.Collection
}

// NewDeliveryRepo creates a MongoDB-backed delivery repository
func NewDeliveryRepo(db *mongo.Database) DeliveryRepo {
	return &deliveryRepo{
		collection: db.Collection("report_deliveries"),
	}
}

func prepareDelivery(rec *model.DeliveryRecord) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
}

func (r *deliveryRepo) Create(ctx context.Context, rec *model.DeliveryRecord) error {
	prepareDelivery(rec)
	_, err := r.collection.InsertOne(ctx, rec)
	return err
}

func (r *deliveryRepo) UpdateStatus(ctx context.Context, id string, status model.DeliveryStatus, message string, pdfAttached bool) error {
	update := bson.M{"$set": bson.M{
		"status":      status,
		"message":     message,
		"pdfAttached": pdfAttached,
		"updatedAt":   time.Now().UTC(),
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *deliveryRepo) GetByID(ctx context.Context, id string) (*model.DeliveryRecord, error) {
	var rec model.DeliveryRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *deliveryRepo) ListBySession(ctx context.Context, sessionID string) ([]*model.DeliveryRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.DeliveryRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
