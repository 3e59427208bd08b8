package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"

	"photoshare-backend/data"
	"photoshare-backend/internal/config"
	"photoshare-backend/internal/db"
	"photoshare-backend/internal/seed"
	"photoshare-backend/internal/services"
	"photoshare-backend/internal/utils"

	"golang.org/x/exp/slog"
)

// Seeds the database with the embedded fixtures and prints a development
// token for every fixture user.
func main() {
	if err := utils.LoadEnv(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()
	slog.SetDefault(utils.NewLogger(os.Stderr, cfg.LogLevel))

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	fixtures, err := seed.Parse(data.Fixtures)
	if err != nil {
		log.Fatal(err)
	}
	ids, err := seed.Run(ctx, pool, fixtures)
	if err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	logins := make([]string, 0, len(ids))
	for login := range ids {
		logins = append(logins, login)
	}
	sort.Strings(logins)
	tokens := services.NewTokenService(cfg.JWTSecret)
	for _, login := range logins {
		token, err := tokens.GenerateJWT(ids[login], login)
		if err != nil {
			log.Fatalf("Failed to sign token for %s: %v", login, err)
		}
		fmt.Printf("%s\t%s\t%s\n", login, ids[login], token)
	}
}
