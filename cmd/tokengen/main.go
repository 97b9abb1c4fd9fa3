// Command tokengen mints a bearer token for submitting signals to a
// gateway. Run it where the shared secret lives and pass the token to the
// signal producer out of band.
//
//	tokengen -audience http://gateway.example.com/webhook -ttl 24h
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"signalgate/configs"
	"signalgate/internal/auth"
)

func main() {
	audience := flag.String("audience", "", "submission URL the token is valid for (default: derived from PUBLIC_URL)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg := configs.Load()

	aud := *audience
	if aud == "" {
		aud = cfg.WebhookURL()
	}

	if !auth.SecretConfigured(cfg.Gateway.Secret) {
		log.Println("WARNING: WEBHOOK_SECRET is the development placeholder")
	}

	token, err := auth.GenerateToken(cfg.Gateway.Secret, aud, *ttl)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Println(token)
}
