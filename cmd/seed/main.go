// Command seed loads the baseline users and countries into the database.
// Both seeders skip entirely when any of their rows already exist, so the
// command is safe to re-run.
package main

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	database "github.com/oselz/watch-catalog-api/app/db"
	"github.com/oselz/watch-catalog-api/config"
)

//go:embed data/*.json
var seedFS embed.FS

type seedUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type seedCountry struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on environment")
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.InitConfig()
	if err != nil {
		log.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	dbConfig, err := database.NewDatabaseConfig(&cfg, log)
	if err != nil {
		log.Error("Failed to build database config", slog.Any("error", err))
		os.Exit(1)
	}
	pool, err := database.Init(dbConfig.ConnectionURL, log)
	if err != nil {
		log.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	ctx := context.Background()
	if !database.WaitForDB(ctx, pool, log) {
		log.Error("Database is unreachable, giving up")
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return seedUsers(gctx, pool, log) })
	g.Go(func() error { return seedCountries(gctx, pool, log) })

	if err := g.Wait(); err != nil {
		log.Error("Seeding failed", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("All seeders have been run")
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	raw, err := seedFS.ReadFile("data/user.json")
	if err != nil {
		return fmt.Errorf("failed to read user seed data: %w", err)
	}
	var users []seedUser
	if err := json.Unmarshal(raw, &users); err != nil {
		return fmt.Errorf("failed to parse user seed data: %w", err)
	}

	emails := make([]string, 0, len(users))
	for _, u := range users {
		emails = append(emails, u.Email)
	}

	var existing int
	if err := pool.QueryRow(ctx,
		`SELECT count(*) FROM users WHERE email = ANY($1)`, emails).Scan(&existing); err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if existing > 0 {
		log.Info("Users already exist, skipping")
		return nil
	}

	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), 10)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", u.Email, err)
		}
		if _, err := pool.Exec(ctx,
			`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3)`,
			u.Name, u.Email, string(hash)); err != nil {
			return fmt.Errorf("failed to insert user %s: %w", u.Email, err)
		}
	}
	log.Info("Users have been seeded", slog.Int("count", len(users)))
	return nil
}

func seedCountries(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	raw, err := seedFS.ReadFile("data/country.json")
	if err != nil {
		return fmt.Errorf("failed to read country seed data: %w", err)
	}
	var countries []seedCountry
	if err := json.Unmarshal(raw, &countries); err != nil {
		return fmt.Errorf("failed to parse country seed data: %w", err)
	}

	codes := make([]string, 0, len(countries))
	for _, c := range countries {
		if c.Code != "" {
			codes = append(codes, c.Code)
		}
	}

	var existing int
	if err := pool.QueryRow(ctx,
		`SELECT count(*) FROM country WHERE code = ANY($1)`, codes).Scan(&existing); err != nil {
		return fmt.Errorf("failed to check existing countries: %w", err)
	}
	if existing > 0 {
		log.Info("Countries already exist, skipping")
		return nil
	}

	inserted := 0
	for _, c := range countries {
		if c.Code == "" {
			log.Warn("Skipping country with missing code", slog.String("name", c.Name))
			continue
		}
		if _, err := pool.Exec(ctx,
			`INSERT INTO country (name, code) VALUES ($1, $2)`,
			c.Name, c.Code); err != nil {
			return fmt.Errorf("failed to insert country %s: %w", c.Name, err)
		}
		inserted++
	}
	log.Info("Countries have been seeded", slog.Int("count", inserted))
	return nil
}
