package handler

import (
	"car-care-app/chat-service/internal/models"
	"car-care-app/chat-service/internal/tts"
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ChatService interface {
	CreateSession(ctx context.Context, userID string) (*models.ChatSession, error)
	AddMessage(ctx context.Context, sessionID string, role models.MessageRole, content string) (*models.ChatSession, error)
	GetHistory(ctx context.Context, sessionID string) (*models.ChatSession, error)
	ListUserSessions(ctx context.Context, userID string) ([]models.ChatSession, error)
}

type ChatHandler struct {
	service     ChatService
	synthesizer tts.Synthesizer
}

func NewChatHandler(service ChatService, synthesizer tts.Synthesizer) *ChatHandler {
	return &ChatHandler{service: service, synthesizer: synthesizer}
}

type createSessionRequest struct {
	UserID string `json:"userId" binding:"required"`
}

type addMessageRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Role      string `json:"role" binding:"required,oneof=user assistant"`
	Content   string `json:"content" binding:"required"`
}

type speechRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *ChatHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	session, err := h.service.CreateSession(c.Request.Context(), req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *ChatHandler) AddMessage(c *gin.Context) {
	var req addMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	session, err := h.service.AddMessage(c.Request.Context(), req.SessionID, models.MessageRole(req.Role), req.Content)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Chat session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *ChatHandler) GetHistory(c *gin.Context) {
	session, err := h.service.GetHistory(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Chat session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *ChatHandler) GetUserSessions(c *gin.Context) {
	sessions, err := h.service.ListUserSessions(c.Request.Context(), c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *ChatHandler) GenerateSpeech(c *gin.Context) {
	var req speechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	audio, err := h.synthesizer.Synthesize(c.Request.Context(), req.Text)
	if err != nil {
		log.Printf("Text-to-speech failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate speech"})
		return
	}
	defer audio.Close()

	c.Header("Content-Type", "audio/mpeg")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, audio); err != nil {
		log.Printf("Streaming audio response failed: %v", err)
	}
}
