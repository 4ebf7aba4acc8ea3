// Package seed provides helpers to create demo users, addresses and posts.
// Users and addresses are never created through the API, so every
// environment gets them from here.
package seed

import (
	"context"
	"log/slog"
	"time"

	"lema/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db     *gorm.DB
	opts   Options
	faker  *gofakeit.Faker
	logger *slog.Logger
	now    func() time.Time
}

// NewFactory creates a Factory bound to db. A zero opts.RandSeed seeds from the clock.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{db: db, opts: opts, faker: gofakeit.New(seed), logger: logger, now: time.Now}
}

// BuildUser constructs a user without persisting it.
func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	user := &models.User{
		ID:    f.faker.UUID(),
		Name:  f.faker.Name(),
		Email: f.faker.Email(),
	}
	for _, override := range overrides {
		override(user)
	}
	return user
}

// BuildAddress constructs an address for user without persisting it.
func (f *Factory) BuildAddress(user *models.User, overrides ...func(*models.Address)) *models.Address {
	addr := &models.Address{
		ID:      f.faker.UUID(),
		UserID:  user.ID,
		Street:  f.faker.Street(),
		State:   f.faker.State(),
		City:    f.faker.City(),
		Zipcode: f.faker.Zip(),
	}
	for _, override := range overrides {
		override(addr)
	}
	return addr
}

// BuildPost constructs a post by user with a created_at spread over the last MaxDays days.
func (f *Factory) BuildPost(user *models.User, overrides ...func(*models.Post)) *models.Post {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	now := f.now()
	created := f.faker.DateRange(now.Add(-time.Duration(maxDays)*24*time.Hour), now)

	post := &models.Post{
		ID:        f.faker.UUID(),
		UserID:    user.ID,
		Title:     truncateRunes(f.faker.Sentence(5), 50),
		Body:      f.faker.Paragraph(1, 3, 12, " "),
		CreatedAt: models.FormatCreatedAt(created),
	}
	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreateUser persists a generated user and, with probability AddressRatio, an address.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, *models.Address, error) {
	user := f.BuildUser(overrides...)
	var addr *models.Address
	if f.faker.Float64Range(0, 1) < f.opts.AddressRatio {
		addr = f.BuildAddress(user)
	}

	if f.opts.DryRun {
		f.logger.Info("[dry-run] create user", slog.String("id", user.ID), slog.Bool("address", addr != nil))
		return user, addr, nil
	}

	err := f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if addr != nil {
			return tx.Create(addr).Error
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return user, addr, nil
}

// CreatePostsBatch persists posts in batches.
func (f *Factory) CreatePostsBatch(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	if f.opts.DryRun {
		f.logger.Info("[dry-run] create posts", slog.Int("count", len(posts)))
		return nil
	}
	return f.db.WithContext(ctx).CreateInBatches(posts, 100).Error
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
