// Command seed populates the database with demo users, addresses and posts.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"time"

	"lema/internal/config"
	"lema/internal/database"
	"lema/internal/middleware"
	"lema/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of generated users")
	postsPerUser := flag.Int("posts", 4, "Number of posts per generated user")
	addressRatio := flag.Float64("address-ratio", 0.8, "Share of generated users with an address (0..1)")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fixtures := flag.String("fixtures", "", "YAML fixture file (default: built-in fixtures)")
	noFixtures := flag.Bool("no-fixtures", false, "Skip fixtures entirely")
	dryRun := flag.Bool("dry-run", false, "Generate data without writing it")
	randSeed := flag.Int64("seed", 0, "Random seed for reproducible data (0 = clock)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d posts each, clean=%v\n", *numUsers, *postsPerUser, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	var fx *seed.Fixtures
	switch {
	case *noFixtures:
	case *fixtures != "":
		fx, err = seed.LoadFixtures(*fixtures)
	default:
		fx, err = seed.DefaultFixtures()
	}
	if err != nil {
		log.Fatalf("❌ Failed to load fixtures: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	sum, err := seed.Seed(ctx, db, seed.Options{
		NumUsers:     *numUsers,
		PostsPerUser: *postsPerUser,
		AddressRatio: *addressRatio,
		ShouldClean:  *shouldClean,
		DryRun:       *dryRun,
		RandSeed:     *randSeed,
		Fixtures:     fx,
		Logger:       middleware.Logger.With(slog.String("component", "seed")),
	})
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Printf("✨ All done! %d users, %d addresses, %d posts.", sum.Users, sum.Addresses, sum.Posts)
}
