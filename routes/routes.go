package routes

import (
	"crypto/rsa"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"saloonhub-backend/config"
	"saloonhub-backend/controllers"
	"saloonhub-backend/services"
	"saloonhub-backend/utils"
)

// SetupRouter wires the full HTTP surface. The booking controller carries
// the lifecycle and completion services; everything else is plain CRUD over
// the shared DB handle.
func SetupRouter(cfg *config.Config, identityKey *rsa.PublicKey, resolver *services.Resolver,
	bookings *controllers.BookingController, serviceAccountID func(c *gin.Context) (string, error),
	logger *zap.Logger) *gin.Engine {

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger(logger))

	// Unauthenticated surface: browsing and anonymous booking.
	public := r.Group("/public")
	{
		public.GET("/saloons/:id", controllers.GetSaloon)
		public.GET("/saloons/:id/offerings", controllers.GetOfferings)
		public.GET("/categories", controllers.GetCategories)
		public.POST("/saloons/:id/bookings", bookings.CreatePublicBooking)
	}

	auth := r.Group("/auth")
	{
		auth.Use(utils.AuthMiddleware(identityKey, resolver))
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware(identityKey, resolver))
	{
		// Saloon routes
		saloons := api.Group("/saloons")
		{
			saloons.POST("", controllers.CreateSaloon)
			saloons.GET("", controllers.GetSaloons)
			saloons.GET("/:id", controllers.GetSaloon)
			saloons.PUT("/:id", controllers.UpdateSaloon)
			saloons.DELETE("/:id", controllers.DeleteSaloon)

			saloons.POST("/:id/offerings", controllers.CreateOffering)
			saloons.GET("/:id/offerings", controllers.GetOfferings)

			saloons.POST("/:id/bookings", bookings.CreateBooking)
			saloons.GET("/:id/bookings", bookings.ListSaloonBookings)
		}

		// Offering routes
		offerings := api.Group("/offerings")
		{
			offerings.PUT("/:id", controllers.UpdateOffering)
			offerings.DELETE("/:id", controllers.DeleteOffering)
		}

		// Booking lifecycle routes
		api.GET("/bookings/mine", bookings.ListMyBookings)
		api.PUT("/bookings/:id/status", bookings.TransitionBooking)
		api.DELETE("/bookings/:id", bookings.DeleteBooking)

		// Taxonomy routes (admin curated)
		categories := api.Group("/categories", utils.RequireAdmin())
		{
			categories.POST("", controllers.CreateCategory)
			categories.GET("", controllers.GetCategories)
			categories.PUT("/:id", controllers.UpdateCategory)
			categories.DELETE("/:id", controllers.DeleteCategory)
		}
	}

	// Machine-to-machine surface.
	internal := r.Group("/internal")
	internal.Use(utils.ServiceAuthMiddleware(cfg.ServiceKeyHash, serviceAccountID))
	{
		internal.POST("/completions/run", bookings.RunCompletionSweep)
	}

	return r
}
