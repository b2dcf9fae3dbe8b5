package main

import (
	"log"

	_ "familysync/docs"
	"familysync/internal/config"
	"familysync/internal/server"
)

// @title           FamilySync API
// @version         1.0
// @description     Write path of the offline-first family task sync.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
