package main

import (
	"github.com/joho/godotenv"

	"bizsuite/internal/app/server"
)

func main() {
	// Missing .env is fine; configuration falls back to process env/defaults.
	_ = godotenv.Load()

	server.Run()
}
