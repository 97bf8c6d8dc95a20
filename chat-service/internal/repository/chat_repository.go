package repository

import (
	"car-care-app/chat-service/internal/models"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "chat_sessions"

type ChatRepository interface {
	Create(ctx context.Context, session *models.ChatSession) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.ChatSession, error)
	GetByUserID(ctx context.Context, userID string) ([]models.ChatSession, error)
	Save(ctx context.Context, session *models.ChatSession) error
}

type chatRepository struct {
	collection *mongo.Collection
}

func NewChatRepository(db *mongo.Database) ChatRepository {
	return &chatRepository{collection: db.Collection(collectionName)}
}

func (r *chatRepository) Create(ctx context.Context, session *models.ChatSession) error {
	session.ID = primitive.NewObjectID()
	session.CreatedAt = time.Now()
	session.UpdatedAt = time.Now()
	if session.Messages == nil {
		session.Messages = []models.Message{}
	}
	_, err := r.collection.InsertOne(ctx, session)
	return err
}

func (r *chatRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	var session models.ChatSession
	err := r.collection.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *chatRepository) GetByUserID(ctx context.Context, userID string) ([]models.ChatSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []models.ChatSession
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []models.ChatSession{}
	}
	return sessions, nil
}

// Save rewrites the message log as a single document update. MongoDB guarantees
// atomicity per document only; concurrent saves of the same session are
// last-write-wins.
func (r *chatRepository) Save(ctx context.Context, session *models.ChatSession) error {
	session.UpdatedAt = time.Now()
	_, err := r.collection.UpdateByID(ctx, session.ID, bson.M{
		"$set": bson.M{
			"messages":   session.Messages,
			"updated_at": session.UpdatedAt,
		},
	})
	return err
}
