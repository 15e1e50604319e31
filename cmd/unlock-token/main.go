package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/kutrumbo/unlockapp/internal/service"
	"github.com/kutrumbo/unlockapp/pkg/config"
)

// Issues a bearer token signed with AUTH_TOKEN_SECRET for calling the API.
func main() {
	subject := flag.String("subject", "owner", "token subject")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if !cfg.Auth.Enabled() {
		log.Fatal("AUTH_TOKEN_SECRET is not set")
	}

	token, err := service.NewTokenService(cfg.Auth.TokenSecret).Issue(*subject, *ttl)
	if err != nil {
		log.Fatalf("failed to issue token: %v", err)
	}
	fmt.Fprintln(os.Stdout, token)
}
