package main

import (
	"database/sql"
	"flag"
	"log"

	"juntaai-backend/internal/config"
	"juntaai-backend/internal/logger"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	dir := flag.String("dir", "migrations", "Directory with migration files")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set dialect: %v", err)
	}

	logger.Info("Applying migrations", "dir", *dir)
	if err := goose.Up(db, *dir); err != nil {
		logger.Error("Migrations failed", "error", err)
		log.Fatalf("Migrations failed: %v", err)
	}
	logger.Info("Migrations applied")
}
