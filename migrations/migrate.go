package main

import (
	"log"
	"os"

	"cryptoportfolio/src/config"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		log.Fatalf("Error loading config for environment: %v", err)
	}
	if cfg.Databases.SQL.Driver != config.DriverPostgres {
		log.Fatalf("Migrations need the %s driver, settings use %q", config.DriverPostgres, cfg.Databases.SQL.Driver)
	}

	db, err := gorm.Open(postgres.Open(cfg.Databases.SQL.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB from GORM DB: %v", err)
	}
	defer sqlDB.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set migration dialect: %v", err)
	}

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}
	if err := goose.Run(command, sqlDB, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations %s: %v", command, err)
	}

	log.Printf("Database migration %s completed successfully", command)
}
