package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/avivgl/schoolhub-api/internal/config"
	"github.com/avivgl/schoolhub-api/internal/database"
	"github.com/avivgl/schoolhub-api/internal/roles"
)

// Bootstraps the first administrator: promotes an existing account to admin
// and approves it in one step, since no admin exists yet to do it via the API.
func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: promote-admin <email>")
		os.Exit(1)
	}

	email := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	result, err := db.Pool.Exec(ctx, `
		UPDATE profiles SET role = $1, is_approved = TRUE, group_id = NULL, updated_at = NOW()
		WHERE email = $2
	`, roles.Admin, email)
	if err != nil {
		log.Fatalf("Failed to update profile: %v", err)
	}

	if result.RowsAffected() == 0 {
		log.Fatalf("No account found with email: %s", email)
	}

	fmt.Printf("Successfully promoted %s to admin\n", email)
}
