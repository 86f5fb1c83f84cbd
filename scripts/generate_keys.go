//go:build ignore

// Generates a JWT signing secret and an API key with its bcrypt hash.
// Run with: go run scripts/generate_keys.go
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func randomKey(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", what, err)
	os.Exit(1)
}

func main() {
	jwtSecret, err := randomKey(32)
	if err != nil {
		fail("JWT secret", err)
	}

	apiKey, err := randomKey(24)
	if err != nil {
		fail("API key", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		fail("API key hash", err)
	}

	fmt.Println("# Bearer tokens (sign with: epqctl token --subject <name>)")
	fmt.Printf("JWT_SECRET_KEY=%s\n", jwtSecret)
	fmt.Println()
	fmt.Println("# Give this key to the client:")
	fmt.Printf("#   %s\n", apiKey)
	fmt.Println("# and configure only its hash on the server:")
	fmt.Printf("API_KEY_HASHES=%s\n", hash)
	fmt.Println()
	fmt.Println("AUTH_ENABLED=true")
}
