package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"council-motions-backend/config"
	"council-motions-backend/internal/blob"
	"council-motions-backend/internal/mw"
	"council-motions-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.ServerConfig, s store.Store, webpushOptions *webpush.Options, notifier Notifier, files *blob.Store) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, webpushOptions, notifier, files)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/periods", caching, handler.CreatePeriod)
		api.GET("/periods", caching, handler.ListPeriods)
		api.GET("/periods/latest", caching, handler.GetLatestPeriod)

		api.POST("/meetings", caching, handler.CreateMeeting)
		api.PATCH("/meetings/:id", caching, handler.UpdateMeeting)
		api.GET("/meetings/:id", caching, handler.GetMeeting)
		api.GET("/periods/:period/meetings", caching, handler.ListMeetings)
		api.GET("/periods/:period/meetings/:seq", caching, handler.GetMeetingByNumber)

		api.POST("/motions", caching, handler.CreateMotion)
		api.GET("/motions/:id", caching, handler.GetMotion)
		api.PATCH("/motions/:id", caching, handler.UpdateMotion)
		api.POST("/motions/:id/status", caching, handler.SetMotionStatus)
		api.GET("/periods/:period/motions", caching, handler.ListMotions)
		api.GET("/periods/:period/motions/:seq", caching, handler.GetMotionByNumber)

		api.POST("/motions/:id/submotions", caching, handler.CreateSubMotion)
		api.GET("/motions/:id/submotions", caching, handler.ListSubMotions)

		api.POST("/readings", caching, handler.CreateReading)
		api.PATCH("/readings/:id", caching, handler.UpdateReading)
		api.POST("/readings/:id/vote", caching, handler.RecordVote)

		api.GET("/meetings/:id/agenda", caching, handler.GetAgenda)
		api.PUT("/meetings/:id/agenda-labels", caching, handler.PutAgendaLabels)

		api.PUT("/motions/:id/files/:category", handler.PutMotionFile)
		api.GET("/motions/:id/files/:category", handler.GetMotionFile)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
