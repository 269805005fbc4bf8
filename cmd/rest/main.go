package main

import (
	"context"
	"log"

	"notevault-be/internal/bootstrap"
	"notevault-be/internal/config"
	"notevault-be/internal/server"
	"notevault-be/internal/tracer"
	"notevault-be/pkg/database"
)

func main() {
	// 1. Tracing (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load Configuration
	cfg := config.Load()

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	// 5. Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
