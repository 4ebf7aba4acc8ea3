package seed

import (
	"context"
	"embed"
	"fmt"
	"os"

	"lema/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed fixtures/*.yml
var fixtureFS embed.FS

// Fixtures is a hand-written data set, typically loaded from YAML.
type Fixtures struct {
	Users []UserFixture `yaml:"users"`
}

type UserFixture struct {
	ID      string          `yaml:"id"`
	Name    string          `yaml:"name"`
	Email   string          `yaml:"email"`
	Address *AddressFixture `yaml:"address"`
	Posts   []PostFixture   `yaml:"posts"`
}

type AddressFixture struct {
	Street  string `yaml:"street"`
	State   string `yaml:"state"`
	City    string `yaml:"city"`
	Zipcode string `yaml:"zipcode"`
}

type PostFixture struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Body      string `yaml:"body"`
	CreatedAt string `yaml:"created_at"`
}

// DefaultFixtures returns the built-in data set.
func DefaultFixtures() (*Fixtures, error) {
	data, err := fixtureFS.ReadFile("fixtures/default.yml")
	if err != nil {
		return nil, err
	}
	return ParseFixtures(data)
}

// LoadFixtures reads a fixture file from disk.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return ParseFixtures(data)
}

// ParseFixtures decodes and checks a YAML data set.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}

	seen := map[string]bool{}
	for i, u := range fx.Users {
		if u.ID == "" || u.Name == "" || u.Email == "" {
			return nil, fmt.Errorf("fixture user %d: id, name and email are required", i)
		}
		if seen[u.ID] {
			return nil, fmt.Errorf("fixture user %d: duplicate id %q", i, u.ID)
		}
		seen[u.ID] = true
		for j, p := range u.Posts {
			if p.ID == "" || p.Title == "" || p.Body == "" || p.CreatedAt == "" {
				return nil, fmt.Errorf("fixture user %q post %d: id, title, body and created_at are required", u.ID, j)
			}
		}
	}
	return &fx, nil
}

// Counts returns the number of users, addresses and posts in the set.
func (fx *Fixtures) Counts() (users, addresses, posts int) {
	for _, u := range fx.Users {
		users++
		if u.Address != nil {
			addresses++
		}
		posts += len(u.Posts)
	}
	return users, addresses, posts
}

// ApplyFixtures upserts the data set. Running it twice leaves the same rows.
func ApplyFixtures(ctx context.Context, db *gorm.DB, fx *Fixtures) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upsert := clause.OnConflict{UpdateAll: true}
		for _, u := range fx.Users {
			user := models.User{ID: u.ID, Name: u.Name, Email: u.Email}
			if err := tx.Clauses(upsert).Create(&user).Error; err != nil {
				return fmt.Errorf("upsert user %s: %w", u.ID, err)
			}
			if u.Address != nil {
				addr := models.Address{
					ID:      "addr-" + u.ID,
					UserID:  u.ID,
					Street:  u.Address.Street,
					State:   u.Address.State,
					City:    u.Address.City,
					Zipcode: u.Address.Zipcode,
				}
				if err := tx.Clauses(upsert).Create(&addr).Error; err != nil {
					return fmt.Errorf("upsert address of %s: %w", u.ID, err)
				}
			}
			for _, p := range u.Posts {
				post := models.Post{ID: p.ID, UserID: u.ID, Title: p.Title, Body: p.Body, CreatedAt: p.CreatedAt}
				if err := tx.Clauses(upsert).Create(&post).Error; err != nil {
					return fmt.Errorf("upsert post %s: %w", p.ID, err)
				}
			}
		}
		return nil
	})
}
