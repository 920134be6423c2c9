package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/agenthands/lattice/internal/server"
	"github.com/agenthands/lattice/pkg/logger"
	"github.com/agenthands/lattice/pkg/logger/console"
)

func main() {
	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: os.Getenv("DEBUG") != "",
	}))

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using defaults")
	}

	srv := server.NewServer()
	r := srv.SetupRouter()

	logger.Info("Starting server", "port", srv.Port())
	if err := r.Run(":" + srv.Port()); err != nil {
		logger.Fatal("Server exited", "error", err)
	}
}
