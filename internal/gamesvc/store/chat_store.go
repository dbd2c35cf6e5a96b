package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

const chatCollection = "game_chats"

// chatRetention is how long a room's messages outlive their last write; the
// TTL index on expires_at does the cleanup.
const chatRetention = 24 * time.Hour

// ChatStore keeps game-room chat in mongo.
type ChatStore struct {
	db *mongo.Database
}

func NewChatStore(db *mongo.Database) *ChatStore {
	return &ChatStore{db: db}
}

func (s *ChatStore) Save(ctx context.Context, msg *models.ChatMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	msg.ExpiresAt = msg.CreatedAt.Add(chatRetention)

	_, err := s.db.Collection(chatCollection).InsertOne(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to save chat message: %w", err)
	}
	return nil
}

// History returns the most recent messages of a game room in chronological
// order.
func (s *ChatStore) History(ctx context.Context, gameID int64, limit int64) ([]*models.ChatMessage, error) {
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(limit)

	cur, err := s.db.Collection(chatCollection).Find(ctx, bson.M{"game_id": gameID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	defer cur.Close(ctx)

	var msgs []*models.ChatMessage
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("failed to decode chat history: %w", err)
	}

	// Newest-first from mongo, oldest-first for the client.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
