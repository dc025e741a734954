package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-booking/controllers"
	"hotel-booking/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Controllers bundles every handler set the router mounts.
type Controllers struct {
	Auth    *controllers.AuthController
	User    *controllers.UserController
	Hotel   *controllers.HotelController
	Room    *controllers.RoomController
	Booking *controllers.BookingController
	Upload  *controllers.UploadController
}

func SetupRouter(ctl Controllers, auth middleware.Authenticator, uploadDir string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Static("/uploads", uploadDir)

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireSession := middleware.RequireSession()

	api := r.Group("/api")
	api.Use(middleware.Session(auth))
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", ctl.Auth.Register)
			authRoutes.POST("/login", ctl.Auth.Login)
			authRoutes.POST("/logout", ctl.Auth.Logout)
			authRoutes.GET("/me", requireSession, ctl.Auth.Me)
		}

		users := api.Group("/users", requireSession)
		{
			users.GET("", ctl.User.GetUsers)
			users.GET("/:id", ctl.User.GetUser)
			users.PUT("/:id", ctl.User.UpdateUser)
			users.DELETE("/:id", ctl.User.DeleteUser)
			users.GET("/:id/saved", ctl.User.GetSavedHotels)
			users.POST("/:id/saved/:hotelId", ctl.User.SaveHotel)
			users.DELETE("/:id/saved/:hotelId", ctl.User.UnsaveHotel)
		}

		hotels := api.Group("/hotels")
		{
			hotels.GET("", ctl.Hotel.ListHotels)
			// static segments are matched before /:id
			hotels.GET("/search", ctl.Hotel.Search)
			hotels.GET("/countByCity", ctl.Hotel.CountByCity)
			hotels.GET("/countByType", ctl.Hotel.CountByType)
			hotels.GET("/find/:id", ctl.Hotel.GetHotel)
			hotels.GET("/room/:id", ctl.Hotel.HotelRooms)

			hotels.POST("", requireSession, ctl.Hotel.CreateHotel)
			hotels.PUT("/:id", requireSession, ctl.Hotel.UpdateHotel)
			hotels.DELETE("/:id", requireSession, ctl.Hotel.DeleteHotel)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", ctl.Room.GetRooms)
			rooms.GET("/:id", ctl.Room.GetRoom)
			rooms.POST("/:hotelId", requireSession, ctl.Room.CreateRoom)
			rooms.PUT("/:id", requireSession, ctl.Room.UpdateRoom)
			rooms.DELETE("/:id", requireSession, ctl.Room.DeleteRoom)
			rooms.PUT("/available/:roomId/:number", requireSession, ctl.Room.ReserveDates)
			rooms.DELETE("/available/:roomId/:number", requireSession, ctl.Room.ReleaseDates)
		}

		bookings := api.Group("/bookings", requireSession)
		{
			bookings.GET("", ctl.Booking.GetBookings)
			bookings.POST("/:userId", ctl.Booking.CreateBooking)
			bookings.GET("/find/:id", ctl.Booking.GetBookingDetails)
			bookings.GET("/user/:userId", ctl.Booking.GetUserBookings)
			bookings.GET("/upcoming/:userId", ctl.Booking.GetUpcomingBookings)
			bookings.GET("/owner/:userId", ctl.Booking.GetOwnerBookings)
			bookings.DELETE("/cancel/:bookingId/:userId", ctl.Booking.CancelBooking)
			bookings.PATCH("/cancel/:bookingId/:userId", ctl.Booking.CancelRoomNumber)
		}

		api.POST("/uploads", requireSession, ctl.Upload.Upload)
	}

	return r
}
