package main

import (
	"context"
	"log"
	"net/http"
	_ "net/http/pprof"

	"launchdash/internal"
	"launchdash/internal/config"
	"launchdash/internal/container"
	"launchdash/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	internal.DefaultLogger.SetLevel(internal.ParseLogLevel(appConfig.Logging.Level))
	logger := internal.DefaultLogger.WithComponent("Main")
	gin.SetMode(appConfig.Server.GinMode)

	// Load launch records once; a bad source ends the process here
	ctx := context.Background()
	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	if err := appContainer.Init(ctx); err != nil {
		log.Fatalf("Failed to load launch records: %v", err)
	}

	server := ui.NewServer(ui.Assets)
	if err := server.Initialize(ctx, appContainer); err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	// Start pprof server for performance profiling
	if appConfig.Profiling.Enabled {
		go func() {
			logger.Info("Profiling server starting on :%s", appConfig.Profiling.Port)
			if err := http.ListenAndServe(":"+appConfig.Profiling.Port, nil); err != nil {
				logger.Error("pprof server failed: %v", err)
			}
		}()
	}

	logger.Info("Dashboard for %d launches listening on port %s", appContainer.Dataset.Len(), appConfig.Server.Port)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
