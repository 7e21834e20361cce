package main

import (
	"context"
	"log"

	"odoo-agent/internal/config"
	"odoo-agent/internal/odoo"

	"github.com/joho/godotenv"
)

// Connectivity check: validates the environment, authenticates against
// the configured Odoo server and reads one product to prove execute_kw
// works end to end.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[CONFIG] %v", err)
	}
	log.Printf("[CONFIG] ok: %+v", cfg.Redacted())

	ctx := context.Background()

	client := odoo.NewClient(cfg.URL, cfg.Database, cfg.Username, cfg.Password)
	uid, err := client.Authenticate(ctx)
	if err != nil {
		log.Fatalf("[AUTH] %v", err)
	}
	log.Printf("[AUTH] ok: user id %d", uid)

	res := odoo.Call(ctx, client, "product.product", "search_read",
		[]any{[]any{}},
		&odoo.CallOptions{Fields: []string{"id", "name"}, Limit: 1})
	if res.Failed() {
		log.Fatalf("[EXECUTE] %v", res.Err())
	}
	if rec, ok := res.First(); ok {
		log.Printf("[EXECUTE] ok: first product %v (%v)", rec["id"], rec["name"])
	} else {
		log.Println("[EXECUTE] ok: no products in database")
	}

	log.Println("[DONE] Odoo connection verified.")
}
