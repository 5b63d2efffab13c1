package routes

import (
	"net/http"

	"stayhaven/handlers"
	"stayhaven/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.ResolveViewer(hb.Auth))

	api.POST("/bookings", hb.Bookings.CreateBooking)

	listings := api.Group("/listings")
	{
		listings.GET("/:id", hb.Listings.GetListing)
		listings.GET("/:id/bookings", hb.Listings.ListingBookings)
		listings.POST("", middleware.RequireViewer(), hb.Listings.HostListing)
	}

	users := api.Group("/users")
	{
		users.GET("/:id", hb.Users.GetUser)
		users.GET("/:id/listings", hb.Users.UserListings)
		users.GET("/:id/bookings", hb.Users.UserBookings)
	}

	viewer := api.Group("/viewer", middleware.RequireViewer())
	{
		viewer.PUT("/wallet", hb.Users.ConnectWallet)
		viewer.DELETE("/wallet", hb.Users.DisconnectWallet)
	}
}
