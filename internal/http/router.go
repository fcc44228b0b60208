package api

import (
	stdhttp "net/http"

	intconfig "busbooking/internal/config"
	h "busbooking/internal/http/handlers"
	"busbooking/internal/http/middleware"
	"busbooking/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	_ = env

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Log().Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		mountSchedules(api.Group("/schedules"))
		mountBookings(api.Group("/bookings"))

		stations := api.Group("/stations")
		stations.GET("", h.GetStations)
		stations.POST("", h.CreateStation)

		buses := api.Group("/buses")
		buses.GET("", h.GetBuses)
		buses.GET("/:id", h.GetBusByID)
		buses.POST("", h.CreateBus)

		users := api.Group("/users")
		users.GET("", h.GetUsers)
		users.GET("/:id", h.GetUserByID)
		users.GET("/:id/bookings", h.GetUserBookings)
		users.POST("", h.CreateUser)
	}

	// Bare mounts keep the original unprefixed paths working.
	mountSchedules(r.Group("/schedules"))
	mountBookings(r.Group("/bookings"))

	h.SetRouter(r)
	return r
}

func mountSchedules(g *gin.RouterGroup) {
	g.GET("/availability", h.GetScheduleAvailability)
	g.POST("", h.CreateSchedule)
	g.GET("/:id", h.GetSchedule)
	g.PUT("/:id", h.UpdateSchedule)
	g.DELETE("/:id", h.DeleteSchedule)
}

func mountBookings(g *gin.RouterGroup) {
	g.POST("", h.CreateBooking)
	g.GET("/:id", h.GetBooking)
	g.GET("/:id/e-ticket", h.GetBookingETicket)
	g.GET("/:id/invoice", h.GetBookingInvoice)
}
