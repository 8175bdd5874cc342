package main

import (
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/estantedev/estante/internal/config"
	"github.com/estantedev/estante/internal/infrastructure/persistence/gorm"
)

func main() {
	var (
		drop = flag.Bool("drop", false, "Drop all catalog tables before migrating")
	)
	flag.Parse()

	cfg, err := config.Load("catalog")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLog, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLog.Sync()

	db, cleanup, err := gorm.NewDB(cfg, zapLog)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer cleanup()

	if *drop {
		fmt.Println("Dropping catalog tables...")
		if err := gorm.DropAll(db); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	fmt.Println("Running database migrations...")
	if err := gorm.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	fmt.Println("Migrations completed successfully!")
}
