package main

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"netops_reports/internal/global"
	"netops_reports/internal/logger"
)

// initLogger initializes the logging system for the whole application.
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// main_thread builds the Fiber app and serves it on the main thread.
func main_thread() {
	app := InitFiberApp()

	address := global.ServerConfig.Address
	log := logger.GetAppLogger()
	log.WithFields(map[string]interface{}{
		"address":  address,
		"protocol": "HTTP",
	}).Info("Starting Fiber server")

	if err := app.Listen(address, fiber.ListenConfig{}); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

func main() {
	initLogger()

	InitGlobal()

	InitRegistry()

	main_thread()
}
