package server

import (
	"time"

	httpHandler "collab-notifier/interfaces/http"
	"collab-notifier/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	healthHandler httpHandler.IHealthHandler,
	eventHandler httpHandler.IEventHandler,
	channelHandler httpHandler.IChannelHandler,
	notifyHandler httpHandler.INotifyHandler,
	secretKey string,
	allowOrigins []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	corsConfig := cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", healthHandler.Healthz)

	// Pub/Sub push subscriptions
	if eventHandler != nil {
		pubsub := router.Group("/pubsub")
		pubsub.POST("/snapshots", eventHandler.SnapshotStored)
		pubsub.POST("/videos", eventHandler.VideoChanged)
	}

	api := router.Group("api")
	api.Use(middleware.Auth(secretKey))

	if channelHandler != nil {
		api.GET("/channels", channelHandler.GetChannel)
		api.PATCH("/channels", channelHandler.UpdateBlacklist)
	}
	if notifyHandler != nil {
		api.POST("/notify/preview", notifyHandler.Preview)
	}

	return router
}
