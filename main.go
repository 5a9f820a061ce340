package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"colguard/adapters/postgres"
	"colguard/internal/config"
	"colguard/ports"
	"colguard/ui"
)

func main() {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	var runs ports.RunRepository
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		if err := postgres.EnsureSchema(db); err != nil {
			log.Fatalf("failed to ensure schema: %v", err)
		}
		runs = postgres.NewRunRepository(db)
		log.Printf("[Main] run history enabled")
	}

	app := ui.NewApp(ui.Config{
		Port:    cfg.Server.Port,
		Workers: cfg.Detection.Workers,
	}, runs)

	log.Fatal(app.Start())
}
