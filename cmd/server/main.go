package main

import (
	"log"
	"time"

	"escape-game-backend/internal/config"
	"escape-game-backend/internal/database"
	"escape-game-backend/internal/game"
	"escape-game-backend/internal/handlers"
	"escape-game-backend/internal/middleware"
	"escape-game-backend/internal/mqtt"
	"escape-game-backend/internal/puzzles"
	"escape-game-backend/internal/scheduler"
	"escape-game-backend/internal/services"
	"escape-game-backend/internal/storage"
	"escape-game-backend/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	store := storage.NewGormStore(db)
	hub := ws.NewHub()
	registry := puzzles.NewRegistry()

	var bridge game.SignalBridge
	if cfg.MQTTDisabled {
		bridge = mqtt.NoopBridge{}
	} else {
		bridge = mqtt.NewBridge(cfg.MQTTBroker, cfg.MQTTPrefix)
	}

	gameService := game.NewService(
		store, registry, hub, bridge,
		time.Duration(cfg.WatchIntervalMS)*time.Millisecond,
	)
	authService := services.NewAuthService(db, cfg.JWTSecret)

	authHandler := handlers.NewAuthHandler(authService)
	roomHandler := handlers.NewRoomHandler(gameService)
	playHandler := handlers.NewPlayHandler(gameService, hub)

	sched := scheduler.New(store)
	sched.Start()
	defer sched.Stop()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/ws/room/:code", playHandler.HandleRoomWebSocket)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		rooms := api.Group("/rooms")
		rooms.Use(middleware.JWTAuth(authService))
		{
			rooms.POST("", roomHandler.CreateRoom)
			rooms.GET("", roomHandler.ListRooms)
			rooms.GET("/:code", roomHandler.GetRoom)
			rooms.POST("/:code/reset", roomHandler.ResetRoom)
			rooms.DELETE("/:code", roomHandler.DeleteRoom)
		}

		play := api.Group("/play")
		{
			play.POST("/enter", playHandler.Enter)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
