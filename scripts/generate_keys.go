//go:build ignore

// This script generates a JWT signing secret and an API key for one client.
// Run with: go run scripts/generate_keys.go [client]
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func generateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", what, err)
	os.Exit(1)
}

func main() {
	client := "ops"
	if len(os.Args) > 1 {
		client = os.Args[1]
	}

	fmt.Println("=== Inventory Allocator Key Generator ===")
	fmt.Println()

	// 32 bytes = 256 bits
	jwtSecret, err := generateSecureKey(32)
	if err != nil {
		fail("JWT secret", err)
	}

	secret, err := generateSecureKey(24)
	if err != nil {
		fail("API key", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		fail("API key hash", err)
	}

	fmt.Println("Add these to your .env file:")
	fmt.Println()
	fmt.Println("# JWT Configuration")
	fmt.Printf("JWT_SECRET_KEY=%s\n", jwtSecret)
	fmt.Println()
	fmt.Println("# API key, stored as a bcrypt hash")
	fmt.Printf("API_KEYS=%s=%s\n", client, hash)
	fmt.Println()
	fmt.Println("Give the client this key (X-API-Key header):")
	fmt.Printf("%s:%s\n", client, secret)
	fmt.Println()
	fmt.Println("=== IMPORTANT ===")
	fmt.Println("- Never commit these keys to version control")
	fmt.Println("- The plain API key is shown once; only the hash belongs in configuration")
	fmt.Println("- Store production keys in a secure secret manager")
}
