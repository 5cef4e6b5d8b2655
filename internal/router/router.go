package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/instacare/backend/api/handler"
)

type Handlers struct {
	Auth       *apiHandler.AuthHandler
	Profile    *apiHandler.ProfileHandler
	Item       *apiHandler.ItemHandler
	Definition *apiHandler.DefinitionHandler
	Occurrence *apiHandler.OccurrenceHandler
	Analytics  *apiHandler.AnalyticsHandler
	Export     *apiHandler.ExportHandler
	Health     *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/register", handlers.Auth.Register)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)

	// Protected routes
	r.POST("/api/v1/profile", authMiddleware(handlers.Profile.Provision))
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.Get))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.Update))

	r.GET("/api/v1/items", authMiddleware(handlers.Item.GetItems))
	r.POST("/api/v1/items", authMiddleware(handlers.Item.CreateItem))
	r.GET("/api/v1/items/{id}", authMiddleware(handlers.Item.GetItem))
	r.PUT("/api/v1/items/{id}", authMiddleware(handlers.Item.UpdateItem))
	r.DELETE("/api/v1/items/{id}", authMiddleware(handlers.Item.DeleteItem))
	r.POST("/api/v1/items/{id}/complete-all", authMiddleware(handlers.Occurrence.CompleteAllDue))

	r.GET("/api/v1/definitions", authMiddleware(handlers.Definition.GetDefinitions))
	r.POST("/api/v1/definitions", authMiddleware(handlers.Definition.CreateDefinition))
	r.POST("/api/v1/definitions/{id}/extend", authMiddleware(handlers.Definition.ExtendHorizon))
	r.DELETE("/api/v1/definitions/{id}", authMiddleware(handlers.Definition.DeleteDefinition))

	r.GET("/api/v1/occurrences", authMiddleware(handlers.Occurrence.GetOccurrences))
	r.GET("/api/v1/occurrences/today", authMiddleware(handlers.Occurrence.GetToday))
	r.GET("/api/v1/occurrences/tomorrow", authMiddleware(handlers.Occurrence.GetTomorrow))
	r.GET("/api/v1/occurrences/overdue", authMiddleware(handlers.Occurrence.GetOverdue))
	r.POST("/api/v1/occurrences/{id}/complete", authMiddleware(handlers.Occurrence.Complete))
	r.PUT("/api/v1/occurrences/{id}/reschedule", authMiddleware(handlers.Occurrence.Reschedule))
	r.DELETE("/api/v1/occurrences/{id}", authMiddleware(handlers.Occurrence.Delete))

	r.GET("/api/v1/analytics/completion-rate", authMiddleware(handlers.Analytics.GetCompletionRate))
	r.GET("/api/v1/analytics/streak", authMiddleware(handlers.Analytics.GetStreak))
	r.GET("/api/v1/analytics/item-scores", authMiddleware(handlers.Analytics.GetItemScores))
	r.GET("/api/v1/analytics/breakdown", authMiddleware(handlers.Analytics.GetBreakdown))

	r.GET("/api/v1/export/ics", authMiddleware(handlers.Export.Calendar))
	r.GET("/api/v1/export/csv", authMiddleware(handlers.Export.CSV))
	r.GET("/api/v1/export/json", authMiddleware(handlers.Export.Backup))

	return r
}
