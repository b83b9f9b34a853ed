package routes

import (
	"github.com/4lejanddr0/communityevents/internal/container"
	"github.com/4lejanddr0/communityevents/internal/handlers"
	"github.com/4lejanddr0/communityevents/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimiter())
	v1.Use(middleware.RequestTimeout(container.StoreTimeout))
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "communityevents-api",
			})
		})

		// public routes
		v1.POST("/signup", handlers.Signup(container.UserService))
		v1.POST("/login", handlers.Login(container.UserService))
		v1.POST("/auth/refresh", handlers.RefreshToken(container.UserService))
		v1.POST("/logout", handlers.Logout())
	}

	// Browse and the detail screen work for anonymous callers too; identity,
	// when present, fills in the "mine" lists and the attending state.
	browse := v1.Group("/")
	browse.Use(middleware.OptionalAuth(container.UserService, container.Logger))
	{
		browse.GET("/events", handlers.BrowseEvents(container.BrowseService))
		browse.GET("/events/:id", handlers.GetEventDetail(container.EventsService, container.AttendanceService, container.ReviewsService))
		browse.GET("/events/:id/comments", handlers.ListComments(container.ReviewsService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.UserService, container.Logger))
	{
		protected.GET("/profile", handlers.Profile())

		protected.POST("/events", handlers.CreateEvent(container.EventsService))
		protected.PUT("/events/:id", handlers.UpdateEvent(container.EventsService))
		protected.DELETE("/events/:id", handlers.DeleteEvent(container.EventsService))

		protected.POST("/events/:id/attend", handlers.JoinEvent(container.AttendanceService))
		protected.DELETE("/events/:id/attend", handlers.LeaveEvent(container.AttendanceService))

		protected.POST("/events/:id/comments", handlers.AddComment(container.ReviewsService))
	}

	return r
}
