package main

import (
	"strconv"
	"time"

	"github.com/ctgula/vibe-sub002/internal/config"
	"github.com/ctgula/vibe-sub002/internal/database"
	"github.com/ctgula/vibe-sub002/internal/handlers"
	"github.com/ctgula/vibe-sub002/internal/logger"
	"github.com/ctgula/vibe-sub002/internal/middleware"
	"github.com/ctgula/vibe-sub002/internal/peers"
	"github.com/ctgula/vibe-sub002/internal/services"
	"github.com/ctgula/vibe-sub002/internal/ws"

	_ "github.com/ctgula/vibe-sub002/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Vibe API
// @version         1.0
// @description     Social audio rooms: profiles, rooms, presence, notifications
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Close()

	db := database.Connect(cfg, log)
	database.AutoMigrate(db, log)

	hub := ws.NewHub(log)

	var registry peers.Registry
	if cfg.RedisAddr != "" {
		registry, err = peers.NewRedisRegistry(cfg.RedisAddr)
		if err != nil {
			log.Fatalw("redis peer registry unavailable", "addr", cfg.RedisAddr, "error", err)
		}
		log.Infow("peer registry backed by redis", "addr", cfg.RedisAddr)
	} else {
		registry = peers.NewMemoryRegistry()
		log.Infow("peer registry in process memory; peer lists are not shared across instances")
	}
	defer registry.Close()

	authService := services.NewAuthService(db, cfg.JWTSecret)
	profileService := services.NewProfileService(db)
	roomService := services.NewRoomService(db)
	participantService := services.NewParticipantService(db, log)
	activityService := services.NewActivityService(db, log)
	notificationService := services.NewNotificationService(db)

	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	roomHandler := handlers.NewRoomHandler(roomService, participantService, activityService, hub)
	participantHandler := handlers.NewParticipantHandler(participantService, notificationService, activityService, hub, log)
	peerHandler := handlers.NewPeerHandler(registry, activityService, log)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	wsHandler := handlers.NewWSHandler(hub, log)

	staleSec, _ := strconv.Atoi(cfg.StaleAfterSec)
	if staleSec <= 0 {
		staleSec = 120
	}
	sweepSec, _ := strconv.Atoi(cfg.SweepIntervalSec)
	if sweepSec <= 0 {
		sweepSec = 30
	}
	sweeper := services.NewStaleSweeper(participantService, log,
		time.Duration(sweepSec)*time.Second,
		time.Duration(staleSec)*time.Second,
	)
	sweeper.Start()
	defer sweeper.Stop()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/rooms/:id", wsHandler.HandleWebSocket)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/guest", authHandler.Guest)
		}

		profiles := api.Group("/profiles")
		{
			profiles.GET("/me", middleware.JWTAuth(authService), profileHandler.GetMe)
			profiles.PUT("/me", middleware.JWTAuth(authService), profileHandler.UpdateMe)
			profiles.GET("/:id", profileHandler.GetProfile)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", roomHandler.ListRooms)
			rooms.GET("/:id", roomHandler.GetRoom)
			rooms.GET("/:id/activity", roomHandler.RoomActivity)
			rooms.GET("/:id/peers", peerHandler.ListPeers)
			rooms.POST("/:id/peers", peerHandler.AddPeer)
			rooms.DELETE("/:id/peers", peerHandler.RemovePeer)

			authed := rooms.Group("")
			authed.Use(middleware.JWTAuth(authService))
			{
				authed.POST("", roomHandler.CreateRoom)
				authed.POST("/join", roomHandler.JoinRoom)
				authed.POST("/:id/leave", roomHandler.LeaveRoom)
				authed.POST("/:id/heartbeat", roomHandler.Heartbeat)
				authed.POST("/:id/close", roomHandler.CloseRoom)
				authed.POST("/:id/hand", participantHandler.RaiseHand)
				authed.DELETE("/:id/hand", participantHandler.DismissOwnHand)
				authed.POST("/:id/approve", participantHandler.Approve)
				authed.POST("/:id/dismiss", participantHandler.DismissTarget)
				authed.PUT("/:id/mute", participantHandler.SetMute)
			}
		}

		notifications := api.Group("/notifications")
		notifications.Use(middleware.JWTAuth(authService))
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
			notifications.PUT("/read-all", notificationHandler.MarkAllRead)
		}
	}

	log.Infow("server starting", "port", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalw("failed to start server", "error", err)
	}
}
