package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"hotel-console/cache"
	"hotel-console/config"
	"hotel-console/controllers"
	"hotel-console/routes"
	"hotel-console/services"
	"hotel-console/store"
)

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	log.SetOutput(os.Stdout)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

func main() {
	// .env is optional
	envErr := godotenv.Load()

	cfg := config.Load()
	log := newLogger(cfg.LogLevel)
	if envErr != nil {
		log.Debug(".env not loaded; using process environment")
	}

	db, err := config.ConnectDatabase(cfg.DB, log)
	if err != nil {
		log.WithError(err).Fatal("database connect failed")
	}
	log.WithField("driver", cfg.DB.Driver).Info("database ready")

	st := store.New(db)
	qc := cache.New()

	roomService := services.NewRoomService(st, qc, log)
	bookingService := services.NewBookingService(st, qc, log)
	ticketService := services.NewTicketService(st, qc, log)
	transactionService := services.NewTransactionService(st, qc, log)
	reportService := services.NewReportService(st, qc, log)

	router := routes.SetupRouter(routes.Controllers{
		Rooms:        controllers.NewRoomController(roomService),
		Bookings:     controllers.NewBookingController(bookingService),
		Tickets:      controllers.NewTicketController(ticketService),
		Transactions: controllers.NewTransactionController(transactionService),
		Reports:      controllers.NewReportController(reportService),
	}, cfg.CorsOrigins, log)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithField("addr", addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("forced shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped")
}
