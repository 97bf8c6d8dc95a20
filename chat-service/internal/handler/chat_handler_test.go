package handler

import (
	"bytes"
	"car-care-app/chat-service/internal/models"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeChatService struct {
	session *models.ChatSession
	err     error
}

func (f *fakeChatService) CreateSession(ctx context.Context, userID string) (*models.ChatSession, error) {
	return f.session, f.err
}

func (f *fakeChatService) AddMessage(ctx context.Context, sessionID string, role models.MessageRole, content string) (*models.ChatSession, error) {
	return f.session, f.err
}

func (f *fakeChatService) GetHistory(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	return f.session, f.err
}

func (f *fakeChatService) ListUserSessions(ctx context.Context, userID string) ([]models.ChatSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []models.ChatSession{*f.session}, nil
}

type fakeSynthesizer struct {
	audio []byte
	err   error
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text string) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(bytes.NewReader(f.audio)), nil
}

func setupRouter(h *ChatHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/chat")
	api.POST("/create", h.CreateSession)
	api.POST("/message", h.AddMessage)
	api.GET("/history/:sessionId", h.GetHistory)
	api.POST("/speech", h.GenerateSpeech)
	return r
}

func TestCreateSession_Returns201(t *testing.T) {
	svc := &fakeChatService{session: &models.ChatSession{UserID: "u1", SessionID: "s1"}}
	r := setupRouter(NewChatHandler(svc, &fakeSynthesizer{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat/create", strings.NewReader(`{"userId":"u1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateSession_MissingUserID(t *testing.T) {
	r := setupRouter(NewChatHandler(&fakeChatService{}, &fakeSynthesizer{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat/create", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAddMessage_UnknownSessionReturns404(t *testing.T) {
	svc := &fakeChatService{err: models.ErrNotFound}
	r := setupRouter(NewChatHandler(svc, &fakeSynthesizer{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat/message",
		strings.NewReader(`{"sessionId":"missing","role":"user","content":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] == "" {
		t.Fatal("expected a message field in the error body")
	}
}

func TestAddMessage_RejectsUnknownRole(t *testing.T) {
	r := setupRouter(NewChatHandler(&fakeChatService{}, &fakeSynthesizer{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat/message",
		strings.NewReader(`{"sessionId":"s1","role":"system","content":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGenerateSpeech_StreamsAudio(t *testing.T) {
	synth := &fakeSynthesizer{audio: []byte("mp3-bytes")}
	r := setupRouter(NewChatHandler(&fakeChatService{}, synth))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat/speech", strings.NewReader(`{"text":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "audio/mpeg" {
		t.Fatalf("expected audio/mpeg, got %s", ct)
	}
	if w.Body.String() != "mp3-bytes" {
		t.Fatalf("unexpected body: %q", w.Body.String())
	}
}

func TestGenerateSpeech_ProviderFailureReturns500(t *testing.T) {
	synth := &fakeSynthesizer{err: errors.New("tts down")}
	r := setupRouter(NewChatHandler(&fakeChatService{}, synth))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat/speech", strings.NewReader(`{"text":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
