package seed

import (
	"context"
	"fmt"
	"log/slog"

	"lema/internal/models"

	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers     int
	PostsPerUser int
	// AddressRatio is the share of generated users that get an address (0..1).
	AddressRatio float64
	ShouldClean  bool
	DryRun       bool
	MaxDays      int
	RandSeed     int64
	// Fixtures are applied before generated data. Nil skips them.
	Fixtures *Fixtures
	Logger   *slog.Logger
}

// Summary reports what a run created.
type Summary struct {
	Users     int
	Addresses int
	Posts     int
}

// Seed populates the database with fixtures and generated data.
func Seed(ctx context.Context, db *gorm.DB, opts Options) (*Summary, error) {
	f := NewFactory(db, opts)
	f.logger.Info("starting database seeding",
		slog.Int("users", opts.NumUsers),
		slog.Int("posts_per_user", opts.PostsPerUser),
		slog.Bool("dry_run", opts.DryRun),
	)

	if opts.ShouldClean && !opts.DryRun {
		if err := ClearData(ctx, db); err != nil {
			return nil, fmt.Errorf("failed to clear data: %w", err)
		}
	}

	sum := &Summary{}
	if opts.Fixtures != nil {
		if !opts.DryRun {
			if err := ApplyFixtures(ctx, db, opts.Fixtures); err != nil {
				return nil, fmt.Errorf("failed to apply fixtures: %w", err)
			}
		}
		sum.Users, sum.Addresses, sum.Posts = opts.Fixtures.Counts()
		f.logger.Info("fixtures applied", slog.Int("users", sum.Users), slog.Int("posts", sum.Posts))
	}

	for i := 0; i < opts.NumUsers; i++ {
		user, addr, err := f.CreateUser(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		sum.Users++
		if addr != nil {
			sum.Addresses++
		}

		posts := make([]*models.Post, 0, opts.PostsPerUser)
		for j := 0; j < opts.PostsPerUser; j++ {
			posts = append(posts, f.BuildPost(user))
		}
		if err := f.CreatePostsBatch(ctx, posts); err != nil {
			return nil, fmt.Errorf("failed to create posts: %w", err)
		}
		sum.Posts += len(posts)

		if (i+1)%100 == 0 {
			f.logger.Info("seeding progress", slog.Int("users", i+1))
		}
	}

	f.logger.Info("database seeding completed",
		slog.Int("users", sum.Users),
		slog.Int("addresses", sum.Addresses),
		slog.Int("posts", sum.Posts),
	)
	return sum, nil
}

// ClearData removes all posts, addresses and users.
func ClearData(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"posts", "addresses", "users"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
}
