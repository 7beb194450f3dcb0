// Package store is the persistence boundary for pages. Both implementations
// read and write the gorm-migrated pages table.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/portfoliocms/internal/db"
)

var (
	ErrNotFound = errors.New("page not found")
	// ErrConflict is returned when the table's unique slug index rejects a write.
	ErrConflict = errors.New("page slug conflict")
)

// Order selects the sort applied by Select.
type Order int

const (
	OrderNone Order = iota
	OrderUpdatedDesc
	OrderCreatedDesc
)

// Filter narrows a query. Zero-valued fields are ignored.
type Filter struct {
	ID        string
	Slug      string
	Published *bool
}

// Query is a filtered, ordered, optionally limited select.
type Query struct {
	Filter Filter
	Order  Order
	Limit  int
}

// Patch lists the columns an update writes. Nil fields are left untouched.
type Patch struct {
	Title           *string
	Slug            *string
	Content         *string
	MetaDescription *string
	FeaturedImage   *string
	Published       *bool
}

func (p Patch) columns() map[string]any {
	cols := make(map[string]any)
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Slug != nil {
		cols["slug"] = *p.Slug
	}
	if p.Content != nil {
		cols["content"] = *p.Content
	}
	if p.MetaDescription != nil {
		cols["meta_description"] = *p.MetaDescription
	}
	if p.FeaturedImage != nil {
		cols["featured_image"] = *p.FeaturedImage
	}
	if p.Published != nil {
		cols["published"] = *p.Published
	}
	return cols
}

// Repository is the page table as seen by the services.
type Repository interface {
	Select(ctx context.Context, q Query) ([]db.Page, error)
	Insert(ctx context.Context, page *db.Page) (*db.Page, error)
	Update(ctx context.Context, id string, patch Patch) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, f Filter) (int64, error)
}

// Option configures a repository.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the timestamp source used for created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Bool returns a pointer to v, for Filter.Published and Patch.Published.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
