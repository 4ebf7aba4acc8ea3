// Package models contains data structures for the application's domain models.
package models

// User represents a seeded user. Users are never created or mutated through the API.
type User struct {
	ID    string `gorm:"primaryKey;type:text" json:"id"`
	Name  string `gorm:"type:text;not null" json:"name"`
	Email string `gorm:"type:text;not null" json:"email"`
}

// TableName returns the database table name for User.
func (User) TableName() string {
	return "users"
}

// Address is the optional postal address of a user (at most one per user).
type Address struct {
	ID      string `gorm:"primaryKey;type:text" json:"id"`
	UserID  string `gorm:"type:text;not null;uniqueIndex" json:"user_id"`
	Street  string `gorm:"type:text" json:"street"`
	State   string `gorm:"type:text" json:"state"`
	City    string `gorm:"type:text" json:"city"`
	Zipcode string `gorm:"type:text" json:"zipcode"`
}

// TableName returns the database table name for Address.
func (Address) TableName() string {
	return "addresses"
}

// UserWithAddress is a user row as listed by GET /users.
// Address is nil (JSON null) when the user has none.
type UserWithAddress struct {
	User
	Address *Address `json:"address"`
}
