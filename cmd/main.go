package main

import (
	"log"
	"os"

	"macrotrack-backend/config"
	"macrotrack-backend/routes"
)

func main() {
	config.InitDB()

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
