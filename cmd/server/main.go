package main

import (
	"log"
	"net/http"

	"taka_track/internal/config"
	"taka_track/internal/controllers"
	"taka_track/internal/logger"
	"taka_track/internal/middleware"
	"taka_track/internal/notify"
	"taka_track/internal/routes"
	"taka_track/internal/stores"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database (loads .env first)
	config.InitDB()
	cfg := config.Load()

	users := stores.NewGormUserStore(config.GetDB())
	reports := stores.NewGormReportStore(config.GetDB())

	var notifier notify.Notifier
	if cfg.Email.Configured() {
		notifier = notify.NewEmailNotifier(&cfg.Email)
	} else {
		log.Println("SMTP not configured – notifications go to the log")
		notifier = notify.NewLogNotifier()
	}

	authController := controllers.NewAuthController(users)
	reportController := controllers.NewReportController(reports, users, notifier, cfg.UploadDir)

	r := routes.SetupRouter(cfg, authController, reportController, users)

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Printf("🚀 Server running at %s", cfg.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, handler))
}
