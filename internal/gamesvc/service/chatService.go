package service

import (
	"context"

	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
	"github.com/avvvet/monopoly-services/internal/gamesvc/store"
)

const chatHistoryLimit = 50

type ChatService struct {
	chatStore *store.ChatStore
}

func NewChatService(store *store.ChatStore) *ChatService {
	return &ChatService{chatStore: store}
}

func (s *ChatService) Post(ctx context.Context, msg *models.ChatMessage) error {
	return s.chatStore.Save(ctx, msg)
}

func (s *ChatService) History(ctx context.Context, gameID int64) ([]*models.ChatMessage, error) {
	return s.chatStore.History(ctx, gameID, chatHistoryLimit)
}
