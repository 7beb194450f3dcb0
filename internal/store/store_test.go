package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/portfoliocms/internal/db"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(time.Minute)
	return c.now
}

type backend struct {
	name string
	open func(t *testing.T, clock *fakeClock) Repository
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:store-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

var backends = []backend{
	{
		name: "gorm",
		open: func(t *testing.T, clock *fakeClock) Repository {
			return NewGorm(openTestDB(t), WithClock(clock.Now))
		},
	},
	{
		name: "sqlx",
		open: func(t *testing.T, clock *fakeClock) Repository {
			gdb := openTestDB(t)
			sqlDB, err := gdb.DB()
			require.NoError(t, err)
			return NewSQLX(sqlx.NewDb(sqlDB, "sqlite3"), WithClock(clock.Now))
		},
	},
}

func eachBackend(t *testing.T, fn func(t *testing.T, repo Repository, clock *fakeClock)) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
			fn(t, b.open(t, clock), clock)
		})
	}
}

func slugsOf(pages []db.Page) []string {
	out := make([]string, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.Slug)
	}
	return out
}

func TestInsertAndSelect(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo Repository, _ *fakeClock) {
		ctx := context.Background()
		page, err := repo.Insert(ctx, &db.Page{
			Title:           "About",
			Slug:            "about",
			Content:         "<p>Hi</p>",
			MetaDescription: "About us",
			UserID:          7,
		})
		require.NoError(t, err)
		assert.Len(t, page.ID, 36)
		assert.False(t, page.CreatedAt.IsZero())
		assert.Equal(t, page.CreatedAt, page.UpdatedAt)

		got, err := repo.Select(ctx, Query{Filter: Filter{Slug: "about"}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, page.ID, got[0].ID)
		assert.Equal(t, "About us", got[0].MetaDescription)
		assert.Equal(t, uint(7), got[0].UserID)
		assert.False(t, got[0].Published)
		assert.True(t, page.CreatedAt.Equal(got[0].CreatedAt))
	})
}

func TestSelectFiltersAndOrders(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo Repository, _ *fakeClock) {
		ctx := context.Background()
		for _, p := range []db.Page{
			{Title: "First", Slug: "first", Published: true},
			{Title: "Second", Slug: "second"},
			{Title: "Third", Slug: "third", Published: true},
		} {
			p := p
			_, err := repo.Insert(ctx, &p)
			require.NoError(t, err)
		}

		first, err := repo.Select(ctx, Query{Filter: Filter{Slug: "first"}})
		require.NoError(t, err)
		require.NoError(t, repo.Update(ctx, first[0].ID, Patch{Title: String("First again")}))

		published, err := repo.Select(ctx, Query{Filter: Filter{Published: Bool(true)}, Order: OrderCreatedDesc})
		require.NoError(t, err)
		if diff := cmp.Diff([]string{"third", "first"}, slugsOf(published)); diff != "" {
			t.Errorf("created desc mismatch (-want +got):\n%s", diff)
		}

		recent, err := repo.Select(ctx, Query{Order: OrderUpdatedDesc, Limit: 2})
		require.NoError(t, err)
		if diff := cmp.Diff([]string{"first", "third"}, slugsOf(recent)); diff != "" {
			t.Errorf("updated desc mismatch (-want +got):\n%s", diff)
		}

		drafts, err := repo.Count(ctx, Filter{Published: Bool(false)})
		require.NoError(t, err)
		assert.Equal(t, int64(1), drafts)

		none, err := repo.Select(ctx, Query{Filter: Filter{Slug: "second", Published: Bool(true)}})
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestUpdateTouchesOnlyPatchedColumns(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo Repository, _ *fakeClock) {
		ctx := context.Background()
		page, err := repo.Insert(ctx, &db.Page{Title: "Draft", Slug: "draft", Content: "<p>x</p>", UserID: 3})
		require.NoError(t, err)

		require.NoError(t, repo.Update(ctx, page.ID, Patch{Published: Bool(true)}))

		got, err := repo.Select(ctx, Query{Filter: Filter{ID: page.ID}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].Published)
		assert.Equal(t, "Draft", got[0].Title)
		assert.Equal(t, "<p>x</p>", got[0].Content)
		assert.Equal(t, uint(3), got[0].UserID)
		assert.True(t, got[0].CreatedAt.Equal(page.CreatedAt))
		assert.True(t, got[0].UpdatedAt.After(page.UpdatedAt))
	})
}

func TestUniqueSlugBackstop(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo Repository, _ *fakeClock) {
		ctx := context.Background()
		_, err := repo.Insert(ctx, &db.Page{Title: "A", Slug: "about"})
		require.NoError(t, err)
		other, err := repo.Insert(ctx, &db.Page{Title: "B", Slug: "contact"})
		require.NoError(t, err)

		_, err = repo.Insert(ctx, &db.Page{Title: "C", Slug: "about"})
		assert.True(t, errors.Is(err, ErrConflict), "insert: got %v", err)

		err = repo.Update(ctx, other.ID, Patch{Slug: String("about")})
		assert.True(t, errors.Is(err, ErrConflict), "update: got %v", err)
	})
}

func TestMissingRows(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo Repository, _ *fakeClock) {
		ctx := context.Background()
		assert.ErrorIs(t, repo.Update(ctx, "missing", Patch{Published: Bool(true)}), ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, "missing"), ErrNotFound)
	})
}

func TestDeleteIsPermanent(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo Repository, _ *fakeClock) {
		ctx := context.Background()
		page, err := repo.Insert(ctx, &db.Page{Title: "Gone", Slug: "gone"})
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, page.ID))

		n, err := repo.Count(ctx, Filter{Slug: "gone"})
		require.NoError(t, err)
		assert.Zero(t, n)

		_, err = repo.Insert(ctx, &db.Page{Title: "Back", Slug: "gone"})
		assert.NoError(t, err, "slug is free again after delete")
	})
}
