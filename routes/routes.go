package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hotel-console/controllers"
	"hotel-console/middleware"
)

// Controllers bundles every handler set the router mounts.
type Controllers struct {
	Rooms        *controllers.RoomController
	Bookings     *controllers.BookingController
	Tickets      *controllers.TicketController
	Transactions *controllers.TransactionController
	Reports      *controllers.ReportController
}

func corsConfig(origins []string) cors.Config {
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

func SetupRouter(ctrl Controllers, corsOrigins []string, log *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log))
	r.Use(cors.New(corsConfig(corsOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("", ctrl.Rooms.GetRooms)
			rooms.POST("", ctrl.Rooms.CreateRoom)
			rooms.GET("/:id", ctrl.Rooms.GetRoom)
			rooms.PUT("/:id", ctrl.Rooms.UpdateRoom)
			rooms.PATCH("/:id", ctrl.Rooms.UpdateRoom)
			rooms.DELETE("/:id", ctrl.Rooms.DeleteRoom)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", ctrl.Bookings.GetBookings)
			bookings.POST("", ctrl.Bookings.CreateBooking)
			bookings.GET("/:id", ctrl.Bookings.GetBooking)
			bookings.PUT("/:id", ctrl.Bookings.UpdateBooking)
			bookings.PATCH("/:id", ctrl.Bookings.UpdateBooking)
			bookings.DELETE("/:id", ctrl.Bookings.DeleteBooking)
		}

		spots := api.Group("/scenic-spots")
		{
			spots.GET("", ctrl.Tickets.GetScenicSpots)
			spots.POST("", ctrl.Tickets.CreateScenicSpot)
			spots.GET("/:id", ctrl.Tickets.GetScenicSpot)
			spots.PUT("/:id", ctrl.Tickets.UpdateScenicSpot)
			spots.PATCH("/:id", ctrl.Tickets.UpdateScenicSpot)
			spots.DELETE("/:id", ctrl.Tickets.DeleteScenicSpot)
			spots.POST("/:id/sales", ctrl.Tickets.SellTickets)
		}

		api.GET("/ticket-sales", ctrl.Tickets.GetTicketSales)

		txs := api.Group("/transactions")
		{
			txs.GET("", ctrl.Transactions.GetTransactions)
			// before /:id
			txs.GET("/export", ctrl.Transactions.ExportTransactions)
			txs.POST("", ctrl.Transactions.CreateTransaction)
			txs.GET("/:id", ctrl.Transactions.GetTransaction)
			txs.PUT("/:id", ctrl.Transactions.UpdateTransaction)
			txs.PATCH("/:id", ctrl.Transactions.UpdateTransaction)
			txs.DELETE("/:id", ctrl.Transactions.DeleteTransaction)
		}

		reports := api.Group("/reports")
		{
			reports.GET("/dashboard", ctrl.Reports.GetDashboard)
			reports.GET("/finance", ctrl.Reports.GetFinance)
		}
	}

	return r
}
