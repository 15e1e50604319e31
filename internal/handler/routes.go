package handler

import "github.com/gin-gonic/gin"

// Routes groups the handlers mounted by RegisterRoutes.
type Routes struct {
	Days    *DayHandler
	History *HistoryHandler
	Counter *CounterHandler
	Metrics *MetricsHandler
}

// RegisterRoutes mounts the probes at the root and the API under prefix.
// guards run in front of every API route.
func RegisterRoutes(r *gin.Engine, prefix string, routes Routes, guards ...gin.HandlerFunc) {
	r.GET("/health", routes.Metrics.Health)
	r.GET("/ready", routes.Metrics.Ready)
	r.GET("/metrics", routes.Metrics.Prometheus)

	api := r.Group(prefix)
	api.Use(guards...)

	days := api.Group("/days")
	days.GET("/today", routes.Days.Today)
	days.GET("/:date", routes.Days.Get)
	days.POST("/:date/toggle", routes.Days.Toggle)

	history := api.Group("/history")
	history.GET("", routes.History.List)
	history.GET("/export", routes.History.Export)

	counter := api.Group("/counter")
	counter.GET("", routes.Counter.Get)
	counter.POST("/increment", routes.Counter.Increment)
	counter.POST("/decrement", routes.Counter.Decrement)
}
