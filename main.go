package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"studysize/app"
	"studysize/internal"
	"studysize/internal/calculator"
	"studysize/internal/config"
	"studysize/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Log.Level))
	internal.DefaultLogger = logger

	calc := calculator.New()
	sweeps := app.NewSweepService(calc, app.SweepOptions{
		Workers:           appConfig.Sweep.Workers,
		MaxRows:           appConfig.Sweep.MaxRows,
		DefaultConfidence: appConfig.Sweep.DefaultConfidence,
	}, logger)

	server := ui.NewApp(ui.Config{
		Port:              appConfig.Server.Port,
		ReadTimeout:       appConfig.Server.ReadTimeout,
		ShutdownTimeout:   appConfig.Server.ShutdownTimeout,
		DefaultConfidence: appConfig.Sweep.DefaultConfidence,
	}, calc, sweeps, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("%d catalog functions, %d sweep workers, max %d rows", len(calc.Functions()), appConfig.Sweep.Workers, appConfig.Sweep.MaxRows)
	if err := server.Start(ctx); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
