// Package content persists the catalog site's documents: the three content
// collections the admin area manages, quote/contact submissions, and the
// user directory. Backed by redis in production, with an in-memory store
// for tests.
package content

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("document not found")

// Collections holding admin-managed content.
const (
	CollectionProducts = "products"
	CollectionDesigns  = "designs"
	CollectionPrograms = "programs"
)

// Item is one admin-managed content document. Products, laboratory designs
// and STEM programs share the same shape; the collection they live in
// distinguishes them.
type Item struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Category    string            `json:"category,omitempty"`
	Price       float64           `json:"price,omitempty"`
	Currency    string            `json:"currency,omitempty"`
	Specs       map[string]string `json:"specs,omitempty"`
	Images      []string          `json:"images,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Featured    bool              `json:"featured"`
	Published   bool              `json:"published"`
	StockStatus string            `json:"stockStatus,omitempty"`
	CreatedBy   string            `json:"createdBy,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// Submission is a persisted quote/contact request.
type Submission struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Company    string    `json:"company,omitempty"`
	Message    string    `json:"message"`
	Locale     string    `json:"locale,omitempty"`
	ProductIDs []string  `json:"productIds,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// User is a directory entry; the role here feeds the identity provider's
// claims on the next token refresh, it is not consulted at request time.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store is the document-store boundary.
type Store interface {
	PutItem(ctx context.Context, collection string, item *Item) error
	GetItem(ctx context.Context, collection, id string) (*Item, error)
	ListItems(ctx context.Context, collection string) ([]Item, error)
	DeleteItem(ctx context.Context, collection, id string) error

	AddSubmission(ctx context.Context, submission *Submission) error
	ListSubmissions(ctx context.Context) ([]Submission, error)

	PutUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
}
