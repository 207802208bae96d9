package main

import (
	"log"

	"github.com/joho/godotenv"

	"epilag/internal/config"
	"epilag/internal/container"
	"epilag/internal/ops"
	"epilag/ui"
)

func main() {
	// .env is optional; real deployments configure through the environment
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env file")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	c, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("❌ Startup failed: %v", err)
	}
	log.Printf("Loaded metadata catalog with %d signals", len(c.Metadata.Signals()))

	c.Sessions.StartJanitor(appConfig.Session.TTL / 4)

	if appConfig.Ops.Enabled {
		opsServer := ops.NewServer(c.Sessions, func() bool { return true })
		go func() {
			log.Printf("Ops server listening on :%s", appConfig.Ops.Port)
			if err := opsServer.Start(":" + appConfig.Ops.Port); err != nil {
				log.Printf("❌ Ops server failed: %v", err)
			}
		}()
	}

	server := ui.NewServer(appConfig, c.Analysis, c.Catalog)
	if err := server.Start(appConfig.Server.Port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
