package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/portfoliocms/internal/db"
)

const pageColumns = `id, title, slug, content, meta_description, featured_image, published, user_id, created_at, updated_at`

type sqlxRepository struct {
	db   *sqlx.DB
	opts options
}

// NewSQLX returns a Repository that issues hand-written SQL through sqlx.
func NewSQLX(sdb *sqlx.DB, opts ...Option) Repository {
	return &sqlxRepository{db: sdb, opts: buildOptions(opts)}
}

func whereClause(f Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.ID != "" {
		conds = append(conds, "id = ?")
		args = append(args, f.ID)
	}
	if f.Slug != "" {
		conds = append(conds, "slug = ?")
		args = append(args, f.Slug)
	}
	if f.Published != nil {
		conds = append(conds, "published = ?")
		args = append(args, *f.Published)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *sqlxRepository) Select(ctx context.Context, q Query) ([]db.Page, error) {
	where, args := whereClause(q.Filter)
	query := `SELECT ` + pageColumns + ` FROM pages` + where

	switch q.Order {
	case OrderUpdatedDesc:
		query += ` ORDER BY updated_at DESC, id ASC`
	case OrderCreatedDesc:
		query += ` ORDER BY created_at DESC, id ASC`
	}
	if q.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, q.Limit)
	}

	pages := []db.Page{}
	if err := r.db.SelectContext(ctx, &pages, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select pages: %w", err)
	}
	return pages, nil
}

func (r *sqlxRepository) Insert(ctx context.Context, page *db.Page) (*db.Page, error) {
	if page.ID == "" {
		page.ID = uuid.NewString()
	}
	now := r.opts.now()
	page.CreatedAt = now
	page.UpdatedAt = now

	const query = `INSERT INTO pages (` + pageColumns + `)
		VALUES (:id, :title, :slug, :content, :meta_description, :featured_image, :published, :user_id, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, page); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("insert page: %w", err)
	}
	return page, nil
}

func (r *sqlxRepository) Update(ctx context.Context, id string, patch Patch) error {
	cols := patch.columns()
	cols["updated_at"] = r.opts.now()

	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	sort.Strings(names)

	sets := make([]string, 0, len(names))
	args := make([]any, 0, len(names)+1)
	for _, name := range names {
		sets = append(sets, name+" = ?")
		args = append(args, cols[name])
	}
	args = append(args, id)

	query := `UPDATE pages SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("update page %s: %w", id, err)
	}
	return requireAffected(result.RowsAffected())
}

func (r *sqlxRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM pages WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete page %s: %w", id, err)
	}
	return requireAffected(result.RowsAffected())
}

func (r *sqlxRepository) Count(ctx context.Context, f Filter) (int64, error) {
	where, args := whereClause(f)
	var n int64
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM pages`+where), args...); err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return n, nil
}

func requireAffected(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
