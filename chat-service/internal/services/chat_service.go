package services

import (
	"car-care-app/chat-service/internal/ai"
	"car-care-app/chat-service/internal/models"
	"car-care-app/chat-service/internal/repository"
	"context"
	"log"

	"github.com/google/uuid"
)

// FallbackReply is appended in place of an assistant reply when the AI
// provider fails. The request itself still succeeds.
const FallbackReply = "Sorry, I encountered an error processing your request."

type ChatService struct {
	repo     repository.ChatRepository
	provider ai.Provider
}

func NewChatService(repo repository.ChatRepository, provider ai.Provider) *ChatService {
	return &ChatService{repo: repo, provider: provider}
}

func (s *ChatService) CreateSession(ctx context.Context, userID string) (*models.ChatSession, error) {
	session := &models.ChatSession{
		UserID:    userID,
		SessionID: uuid.NewString(),
		Messages:  []models.Message{},
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// AddMessage appends the incoming message to the session log. A user message
// additionally triggers a synchronous AI call; the reply (or the fallback text
// when the provider fails) is appended as an assistant message. Only the
// persistence step can fail the request.
func (s *ChatService) AddMessage(ctx context.Context, sessionID string, role models.MessageRole, content string) (*models.ChatSession, error) {
	session, err := s.repo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Messages = append(session.Messages, models.Message{Role: role, Content: content})

	if role == models.RoleUser {
		reply, err := s.provider.Chat(ctx, []ai.Message{{Role: string(models.RoleUser), Content: content}})
		if err != nil {
			log.Printf("AI generation failed for session %s: %v", sessionID, err)
			reply = FallbackReply
		}
		session.Messages = append(session.Messages, models.Message{Role: models.RoleAssistant, Content: reply})
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *ChatService) GetHistory(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	return s.repo.GetBySessionID(ctx, sessionID)
}

func (s *ChatService) ListUserSessions(ctx context.Context, userID string) ([]models.ChatSession, error) {
	return s.repo.GetByUserID(ctx, userID)
}
