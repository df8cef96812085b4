package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/iamasit07/5-in-a-row/backend/internal/config"
	"github.com/iamasit07/5-in-a-row/backend/pkg/auth"
	"github.com/joho/godotenv"
)

func main() {
	clientID := flag.String("client", "", "client id to embed in the token")
	ttl := flag.Duration("ttl", 0, "token lifetime (default ACCESS_TOKEN_TTL_MINUTES)")
	flag.Parse()

	if *clientID == "" {
		log.Fatal("-client is required")
	}

	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}
	cfg := config.LoadConfig()

	lifetime := cfg.AccessTokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, err := auth.GenerateToken(*clientID, cfg.JWTSecret, lifetime)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	log.Printf("Token for %s expires %s", *clientID, time.Now().Add(lifetime).Format(time.RFC3339))
	fmt.Println(token)
}
