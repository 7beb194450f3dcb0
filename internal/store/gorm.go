package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/portfoliocms/internal/db"
)

type gormRepository struct {
	db   *gorm.DB
	opts options
}

// NewGorm returns a Repository backed by gorm.
func NewGorm(gdb *gorm.DB, opts ...Option) Repository {
	return &gormRepository{db: gdb, opts: buildOptions(opts)}
}

func (r *gormRepository) scoped(ctx context.Context, f Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&db.Page{})
	if f.ID != "" {
		query = query.Where("id = ?", f.ID)
	}
	if f.Slug != "" {
		query = query.Where("slug = ?", f.Slug)
	}
	if f.Published != nil {
		query = query.Where("published = ?", *f.Published)
	}
	return query
}

func (r *gormRepository) Select(ctx context.Context, q Query) ([]db.Page, error) {
	query := r.scoped(ctx, q.Filter)
	switch q.Order {
	case OrderUpdatedDesc:
		query = query.Order("updated_at desc").Order("id asc")
	case OrderCreatedDesc:
		query = query.Order("created_at desc").Order("id asc")
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	pages := []db.Page{}
	if err := query.Find(&pages).Error; err != nil {
		return nil, fmt.Errorf("select pages: %w", err)
	}
	return pages, nil
}

func (r *gormRepository) Insert(ctx context.Context, page *db.Page) (*db.Page, error) {
	if page.ID == "" {
		page.ID = uuid.NewString()
	}
	now := r.opts.now()
	page.CreatedAt = now
	page.UpdatedAt = now

	// Select("*") so a false published flag is written instead of skipped for the column default.
	if err := r.db.WithContext(ctx).Select("*").Create(page).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("insert page: %w", err)
	}
	return page, nil
}

func (r *gormRepository) Update(ctx context.Context, id string, patch Patch) error {
	cols := patch.columns()
	cols["updated_at"] = r.opts.now()

	result := r.db.WithContext(ctx).Model(&db.Page{}).Where("id = ?", id).Updates(cols)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrConflict
		}
		return fmt.Errorf("update page %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&db.Page{})
	if result.Error != nil {
		return fmt.Errorf("delete page %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRepository) Count(ctx context.Context, f Filter) (int64, error) {
	var n int64
	if err := r.scoped(ctx, f).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return n, nil
}
