package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/caffebar919/server/internal/config"
)

// Hashes a password for seeding the admin_users table:
//
//	go run scripts/hash-password.go <password>
//	psql "$DATABASE_URL" -c "INSERT INTO admin_users (id, username, password_hash) VALUES (gen_random_uuid(), 'admin', '<hash>')"
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: go run scripts/hash-password.go <password>\n")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), config.BcryptCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(hash))
}
