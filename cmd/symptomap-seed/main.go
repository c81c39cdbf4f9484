// Command symptomap-seed loads the symptom catalog into the database.
// The reseed is destructive: the existing catalog (and any junction rows
// pointing at it) is replaced wholesale.
package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/terraincognita07/symptomap/internal/db"
	"github.com/terraincognita07/symptomap/internal/models"
	"github.com/terraincognita07/symptomap/internal/services"
)

func main() {
	_ = godotenv.Load()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join("data", "symptomap.db")
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	catalog := services.NewCatalogService(db.NewSymptomRepository(database))
	names := models.DefaultCatalogSymptoms()
	if err := catalog.Reseed(names); err != nil {
		log.Fatalf("seed symptoms failed: %v", err)
	}

	log.Printf("seeded %d symptoms into %s", len(names), dbPath)
}
