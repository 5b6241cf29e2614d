//go:build ignore

// This script generates secrets for the meal planner and can issue a bearer
// token signed with them.
//
//	go run scripts/generate_keys.go
//	go run scripts/generate_keys.go --secret "$JWT_SECRET_KEY" --subject ops --scopes catalogs:write,history:read --ttl 720h
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/guttosm/meal-planner-service/internal/middleware"
)

func generateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	secret := pflag.String("secret", "", "sign a token with this JWT_SECRET_KEY instead of generating keys")
	issuer := pflag.String("issuer", "meal-planner", "token issuer; must match JWT_ISSUER")
	subject := pflag.String("subject", "", "token subject")
	scopes := pflag.String("scopes", middleware.ScopeAll, "comma separated token scopes")
	ttl := pflag.Duration("ttl", 24*time.Hour, "token lifetime")
	pflag.Parse()

	if *secret != "" {
		if *subject == "" {
			fail("--subject is required when issuing a token")
		}
		verifier, err := middleware.NewTokenVerifier(*secret, *issuer)
		if err != nil {
			fail("Error creating verifier: %v", err)
		}
		token, err := verifier.Issue(*subject, middleware.ParseScopes(*scopes), *ttl)
		if err != nil {
			fail("Error issuing token: %v", err)
		}
		fmt.Println(token)
		return
	}

	fmt.Println("=== Meal Planner Key Generator ===")
	fmt.Println()

	// 32 bytes = 256 bits, the HS256 key size.
	jwtSecret, err := generateSecureKey(32)
	if err != nil {
		fail("Error generating JWT secret: %v", err)
	}
	apiKey, err := generateSecureKey(24)
	if err != nil {
		fail("Error generating API key: %v", err)
	}

	fmt.Println("Add these to your .env file:")
	fmt.Println()
	fmt.Println("AUTH_ENABLED=true")
	fmt.Printf("JWT_SECRET_KEY=%s\n", jwtSecret)
	fmt.Printf("API_KEYS=%s\n", apiKey)
	fmt.Println()
	fmt.Println("Issue a token with:")
	fmt.Println("  go run scripts/generate_keys.go --secret <JWT_SECRET_KEY> --subject <name> --scopes plans:write,history:read")
	fmt.Println()
	fmt.Println("=== IMPORTANT ===")
	fmt.Println("- Never commit these keys to version control")
	fmt.Println("- Use different keys for each environment (dev, staging, prod)")
	fmt.Println("- Store production keys in a secure secret manager")
}
