// Command seed loads the demo product catalog into the storefront database.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joanie-store/storefront/cache"
	"github.com/joanie-store/storefront/database"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := database.PostgresConfig{}
	var redisURL string
	var keepUsers, invalidate bool
	flag.StringVar(&cfg.Host, "host", os.Getenv("POSTGRES_HOST"), "PostgreSQL host")
	flag.StringVar(&cfg.Port, "port", envOr("POSTGRES_PORT", "5432"), "PostgreSQL port")
	flag.StringVar(&cfg.User, "user", os.Getenv("POSTGRES_USER"), "PostgreSQL user")
	flag.StringVar(&cfg.Password, "password", os.Getenv("POSTGRES_PASSWORD"), "PostgreSQL password")
	flag.StringVar(&cfg.Name, "db", os.Getenv("POSTGRES_DB"), "PostgreSQL database name")
	flag.StringVar(&cfg.SSLMode, "sslmode", envOr("POSTGRES_SSLMODE", "disable"), "PostgreSQL sslmode")
	flag.StringVar(&redisURL, "redis", os.Getenv("REDIS_URL"), "Redis URL of the product cache")
	flag.BoolVar(&keepUsers, "keep-users", true, "keep user accounts")
	flag.BoolVar(&invalidate, "invalidate-cache", true, "bump the product cache version after seeding")
	flag.Parse()

	if cfg.Host == "" || cfg.User == "" || cfg.Name == "" {
		log.Fatal("POSTGRES_HOST, POSTGRES_USER and POSTGRES_DB must be set or provided via flags")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer database.Close()

	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	n, err := database.Seed(ctx, database.DB, database.CatalogProducts(time.Now().UTC()), keepUsers)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("Seeded %d products (keep-users=%t)", n, keepUsers)

	if !invalidate || redisURL == "" {
		return
	}
	client, err := database.NewRedisClient(ctx, redisURL)
	if err != nil {
		log.Printf("cache not invalidated: %v", err)
		return
	}
	defer client.Close()
	if err := cache.NewProductCache(client, 0).Invalidate(ctx); err != nil {
		log.Printf("cache not invalidated: %v", err)
		return
	}
	log.Println("Product cache invalidated")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
