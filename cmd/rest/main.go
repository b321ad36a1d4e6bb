package main

import (
	"context"
	"log"

	"github.com/benvansteenbergen/console-sub000/internal/bootstrap"
	"github.com/benvansteenbergen/console-sub000/internal/config"
	"github.com/benvansteenbergen/console-sub000/internal/server"
	"github.com/benvansteenbergen/console-sub000/internal/tracer"
)

func main() {
	// 1. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load Configuration
	cfg := config.Load()

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	// 4. Start Background Consumers
	if err := container.InvalidationConsumer.Consume(context.Background()); err != nil {
		log.Printf("Background invalidation consumer error: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
