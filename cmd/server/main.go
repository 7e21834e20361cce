package main

import (
	"context"
	"log"
	"os"

	"odoo-agent/internal/adapters/mcp"
	"odoo-agent/internal/app"
	"odoo-agent/internal/config"
	"odoo-agent/internal/odoo"

	"github.com/joho/godotenv"
)

const serverVersion = "0.1.0"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	ctx := context.Background()

	client := odoo.NewClient(cfg.URL, cfg.Database, cfg.Username, cfg.Password)
	log.Printf("connecting to Odoo at %s, database %s, user %s", cfg.URL, cfg.Database, cfg.Username)
	uid, err := client.Authenticate(ctx)
	if err != nil {
		log.Fatalf("odoo: %v", err)
	}
	log.Printf("connected to Odoo as user id %d", uid)

	svc := app.NewAppService(client)
	server := mcp.NewServer(svc.Tools(), "odoo-agent", serverVersion)

	// The protocol runs on stdout; log output stays on stderr.
	if err := server.Serve(ctx, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("mcp server: %v", err)
	}
}
