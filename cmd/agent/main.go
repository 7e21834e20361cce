package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"odoo-agent/internal/ai"
	"odoo-agent/internal/app"
	"odoo-agent/internal/config"
	"odoo-agent/internal/odoo"

	"github.com/joho/godotenv"
)

// One-shot agent: routes a natural language request through the OpenAI
// tool loop against the same tools the MCP server exposes.
func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		log.Fatal(`Usage: agent "<request>"`)
	}
	request := strings.Join(os.Args[1:], " ")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY is required")
	}

	ctx := context.Background()

	client := odoo.NewClient(cfg.URL, cfg.Database, cfg.Username, cfg.Password)
	if _, err := client.Authenticate(ctx); err != nil {
		log.Fatalf("odoo: %v", err)
	}

	svc := app.NewAppService(client)
	agent := ai.NewAgent(apiKey, svc.Tools())

	answer, err := agent.Run(ctx, request)
	if err != nil {
		log.Fatalf("agent: %v", err)
	}
	fmt.Println(answer)
}
