package main

import (
	"context"
	"log"
	"time"

	"focus-shield-be/internal/bootstrap"
	"focus-shield-be/internal/config"
	"focus-shield-be/internal/server"
	"focus-shield-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 0. Initialize Tracer - DISABLED
	// shutdownTracer := tracer.InitTracer()
	// defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (optional; in-memory fallback without it)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		gormDB = db
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Notifier Service...")
		if err := container.NotifierService.Consume(context.Background()); err != nil {
			log.Printf("Background Notifier Error: %v", err)
		}
	}()
	go func() {
		log.Println("Background: Starting Activity Service...")
		if err := container.ActivityService.Consume(context.Background()); err != nil {
			log.Printf("Background Activity Error: %v", err)
		}
	}()
	go runExpireSweep(container, cfg.Shield.SweepInterval)

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}

// runExpireSweep tears down the session once its end time passes. One sweep
// runs immediately so a restart does not leave an expired session active
// until the first tick.
func runExpireSweep(container *bootstrap.Container, interval time.Duration) {
	sweep := func() {
		if _, err := container.SessionService.ExpireSweep(context.Background()); err != nil {
			log.Printf("Expire sweep error: %v", err)
		}
	}

	sweep()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		sweep()
	}
}
