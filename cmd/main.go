package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"dueday/dueday/broker"
	"dueday/dueday/config"
	"dueday/dueday/database"
	"dueday/dueday/middleware"
	"dueday/dueday/routes"
	"dueday/dueday/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db, err := database.Setup(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// The broker is optional: without it mutations still commit, the outbox
	// just keeps accumulating until a dispatcher can drain it.
	brokerAvailable := true
	if err := broker.InitProducer(cfg); err != nil {
		log.Printf("Warning: Failed to initialize NATS producer: %v", err)
		log.Println("The application will continue, but mutation events will not be dispatched")
		brokerAvailable = false
	} else {
		defer broker.CloseProducer()
	}

	if brokerAvailable {
		eventHandlerService := services.NewEventHandlerService(db)
		services.EventHandlerServiceInstance = eventHandlerService
		eventHandlerService.Start()
		defer eventHandlerService.Stop()
	} else {
		log.Println("Event dispatcher is disabled due to NATS unavailability")
	}

	authService := services.NewAuthService(services.UserServiceInstance, cfg.TokenSecret, cfg.TokenExpirationHrs)
	services.AuthServiceInstance = authService

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	router.Use(middleware.MetricsMiddleware())

	routes.RegisterHealthRoutes(router)
	routes.RegisterAuthRoutes(router, db, authService)
	routes.RegisterTaskRoutes(router, db, services.TaskServiceInstance, authService)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down server...")
		broker.CloseProducer()
		db.Close()
		os.Exit(0)
	}()

	log.Printf("API server is running on port %s", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
