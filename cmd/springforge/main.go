package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kyisaiah47/springforge/db"
	"github.com/kyisaiah47/springforge/internal/auth"
	"github.com/kyisaiah47/springforge/internal/config"
	"github.com/kyisaiah47/springforge/internal/onboarding"
	"github.com/kyisaiah47/springforge/internal/realtime"
	"github.com/kyisaiah47/springforge/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using process environment")
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	conn, err := db.Connect(cfg.DatabaseURL)

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(conn); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	verifier, err := auth.NewTokenVerifier(cfg.JWTSecret)

	if err != nil {
		log.Fatalf("Failed to initialize token verifier: %v", err)
	}

	hub := realtime.NewHub()
	resolver := onboarding.NewResolver(onboarding.NewGormStore(conn))

	r := router.NewRouter(router.Deps{
		Conn:     conn,
		Verifier: verifier,
		Resolver: resolver,
		Hub:      hub,
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
