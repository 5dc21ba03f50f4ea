package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/tickify/gateway/internal/server"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		logrus.Warn("No .env file found, relying on the environment")
	}

	if err := server.Start(); err != nil {
		logrus.Fatalf("Server failed to start: %v", err)
	}
}
