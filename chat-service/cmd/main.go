package main

import (
	"car-care-app/chat-service/internal/ai"
	"car-care-app/chat-service/internal/config"
	"car-care-app/chat-service/internal/handler"
	"car-care-app/chat-service/internal/repository"
	"car-care-app/chat-service/internal/services"
	"car-care-app/chat-service/internal/tts"
	"car-care-app/chat-service/internal/utils"
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	baseCtx := context.Background()
	ctx, shutdownManager := utils.NewShutdownManager(baseCtx)
	shutdownManager.StartListening()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// MongoDB
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Mongo connection failed:", err)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		log.Fatal("Mongo ping failed:", err)
	}

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Closing MongoDB connection...")
		return mongoClient.Disconnect(ctx)
	})

	db := mongoClient.Database(cfg.MongoDB)

	// External providers, repository and chat service
	provider := ai.NewGeminiProvider("", cfg.GeminiAPIKey, cfg.GeminiModel)
	synthesizer := tts.NewElevenLabsClient("", cfg.ElevenLabsAPIKey)

	repo := repository.NewChatRepository(db)
	chatService := services.NewChatService(repo, provider)
	chatHandler := handler.NewChatHandler(chatService, synthesizer)

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/chat")
	{
		api.POST("/create", chatHandler.CreateSession)
		api.POST("/message", chatHandler.AddMessage)
		api.GET("/history/:sessionId", chatHandler.GetHistory)
		api.GET("/user/:userId", chatHandler.GetUserSessions)
		api.POST("/speech", chatHandler.GenerateSpeech)
	}

	server := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Chat service running on %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Shutting down HTTP server...")
		return server.Shutdown(ctx)
	})

	select {}
}
