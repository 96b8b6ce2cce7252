package router

import (
	"ecoVoyage/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc, selfOrAdmin echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
	users.POST("/logout", handler.Logout, authRequired)

	users.PUT("/:id", handler.UpdateUser, authRequired, selfOrAdmin)
	users.GET("", handler.GetAllUsers, authRequired, adminOnly)
	users.GET("/:id", handler.GetUserByID, authRequired, selfOrAdmin)
	users.DELETE("/:id", handler.DeleteUser, authRequired, adminOnly)
}

func SetupDestinationRoutes(api *echo.Group, handler *rest.DestinationHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	destinations := api.Group("/destinations")

	destinations.GET("", handler.GetAllDestinations)
	destinations.GET("/:id", handler.GetDestinationByID)
	destinations.GET("/:id/sustainability", handler.GetSustainabilityBreakdown)

	destinations.POST("", handler.CreateDestination, authRequired, adminOnly)
	destinations.PUT("/:id", handler.UpdateDestination, authRequired, adminOnly)
	destinations.DELETE("/:id", handler.DeleteDestination, authRequired, adminOnly)
}

func SetupVisitRoutes(api *echo.Group, handler *rest.VisitHandler, authRequired echo.MiddlewareFunc) {
	visits := api.Group("/visits", authRequired)

	visits.POST("", handler.LogVisit)
	visits.GET("", handler.MyVisits)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)
	reco.GET("", handler.Recommend)
	reco.POST("/explain", handler.Explain)

	admin := api.Group("/admin", authRequired, adminOnly)
	admin.GET("/reranker", handler.GetRerankerConfig)
	admin.PUT("/reranker", handler.UpdateRerankerConfig)
	admin.GET("/evaluation", handler.Evaluate)
}
