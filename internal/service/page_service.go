package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/portfoliocms/internal/content"
	"github.com/portfoliocms/internal/db"
	"github.com/portfoliocms/internal/store"
)

var (
	ErrPageNotFound    = errors.New("page not found")
	ErrSlugConflict    = errors.New("another page was saved with this slug")
	ErrUnauthenticated = errors.New("an authenticated editor is required")
)

const dashboardRecentLimit = 5

// Editor identifies the signed-in user performing a write.
type Editor struct {
	ID    uint
	Email string
}

// Valid reports whether e refers to a stored user.
func (e Editor) Valid() bool {
	return e.ID != 0
}

// FeedSettings controls how public listings derive their cards.
type FeedSettings struct {
	DefaultImage string
	Rules        []content.CategoryRule
}

// DashboardStats is the admin landing page summary.
type DashboardStats struct {
	PublishedCount int64
	DraftCount     int64
	RecentPages    []db.Page
}

// PageService runs the page lifecycle: validation, slug uniqueness,
// persistence and the publish flag.
type PageService struct {
	store store.Repository
	feed  FeedSettings
}

// NewPageService returns a PageService writing through repo.
func NewPageService(repo store.Repository, feed FeedSettings) *PageService {
	return &PageService{store: repo, feed: feed}
}

// Get fetches a page by id regardless of its published state.
func (s *PageService) Get(ctx context.Context, id string) (*db.Page, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrPageNotFound
	}
	return s.first(ctx, store.Filter{ID: id})
}

// Create validates input and inserts a new page owned by editor.
func (s *PageService) Create(ctx context.Context, editor Editor, input content.PageInput) (*db.Page, error) {
	if !editor.Valid() {
		return nil, ErrUnauthenticated
	}

	values, err := content.Validate(input)
	if err != nil {
		return nil, err
	}

	if err := s.ensureSlugAvailable(ctx, values.Slug, ""); err != nil {
		return nil, err
	}

	page := &db.Page{
		Title:           values.Title,
		Slug:            values.Slug,
		Content:         values.Content,
		MetaDescription: values.MetaDescription,
		FeaturedImage:   values.FeaturedImage,
		Published:       values.Published,
		UserID:          editor.ID,
	}

	created, err := s.store.Insert(ctx, page)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return created, nil
}

// Update replaces the editable fields of page id. The submitted published flag
// is authoritative for this save.
func (s *PageService) Update(ctx context.Context, editor Editor, id string, input content.PageInput) (*db.Page, error) {
	if !editor.Valid() {
		return nil, ErrUnauthenticated
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	values, err := content.Validate(input)
	if err != nil {
		return nil, err
	}

	if err := s.ensureSlugAvailable(ctx, values.Slug, current.Slug); err != nil {
		return nil, err
	}

	patch := store.Patch{
		Title:           store.String(values.Title),
		Slug:            store.String(values.Slug),
		Content:         store.String(values.Content),
		MetaDescription: store.String(values.MetaDescription),
		FeaturedImage:   store.String(values.FeaturedImage),
		Published:       store.Bool(values.Published),
	}
	if err := s.store.Update(ctx, id, patch); err != nil {
		return nil, mapStoreError(err)
	}

	return s.Get(ctx, id)
}

// SetPublished moves page id into the requested state with a single-field write.
func (s *PageService) SetPublished(ctx context.Context, editor Editor, id string, published bool) (*db.Page, error) {
	if !editor.Valid() {
		return nil, ErrUnauthenticated
	}

	state := content.StateOf(published)
	if err := s.store.Update(ctx, id, store.Patch{Published: store.Bool(state.Published())}); err != nil {
		return nil, mapStoreError(err)
	}
	return s.Get(ctx, id)
}

// TogglePublished flips the published flag of page id.
func (s *PageService) TogglePublished(ctx context.Context, editor Editor, id string) (*db.Page, error) {
	if !editor.Valid() {
		return nil, ErrUnauthenticated
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := content.StateOf(current.Published).Toggle()
	return s.SetPublished(ctx, editor, id, next.Published())
}

// Delete removes page id permanently.
func (s *PageService) Delete(ctx context.Context, editor Editor, id string) error {
	if !editor.Valid() {
		return ErrUnauthenticated
	}
	return mapStoreError(s.store.Delete(ctx, id))
}

// ListForAdmin returns every page, most recently updated first. A non-empty
// search keeps pages whose title or slug contains it, ignoring case.
func (s *PageService) ListForAdmin(ctx context.Context, search string) ([]db.Page, error) {
	pages, err := s.store.Select(ctx, store.Query{Order: store.OrderUpdatedDesc})
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return pages, nil
	}

	filtered := make([]db.Page, 0, len(pages))
	for _, page := range pages {
		if strings.Contains(strings.ToLower(page.Title), needle) ||
			strings.Contains(strings.ToLower(page.Slug), needle) {
			filtered = append(filtered, page)
		}
	}
	return filtered, nil
}

// Dashboard collects the admin summary. The three reads are independent.
func (s *PageService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.store.Count(gctx, store.Filter{Published: store.Bool(true)})
		stats.PublishedCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.store.Count(gctx, store.Filter{Published: store.Bool(false)})
		stats.DraftCount = n
		return err
	})
	g.Go(func() error {
		pages, err := s.store.Select(gctx, store.Query{Order: store.OrderUpdatedDesc, Limit: dashboardRecentLimit})
		stats.RecentPages = pages
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// ResolvePublished looks up the public page for slug. Unknown and unpublished
// slugs both yield ErrPageNotFound.
func (s *PageService) ResolvePublished(ctx context.Context, slug string) (*db.Page, error) {
	if !content.ValidSlug(slug) {
		return nil, ErrPageNotFound
	}
	return s.first(ctx, store.Filter{Slug: slug, Published: store.Bool(true)})
}

// ListPublished returns published pages, newest first.
func (s *PageService) ListPublished(ctx context.Context) ([]db.Page, error) {
	return s.store.Select(ctx, store.Query{
		Filter: store.Filter{Published: store.Bool(true)},
		Order:  store.OrderCreatedDesc,
	})
}

// BlogFeed derives the public blog listing, optionally filtered by category.
func (s *PageService) BlogFeed(ctx context.Context, category string) (content.Feed, error) {
	pages, err := s.ListPublished(ctx)
	if err != nil {
		return content.Feed{}, err
	}
	return content.BuildFeed(pages, content.FeedOptions{
		Category:     strings.TrimSpace(category),
		DefaultImage: s.feed.DefaultImage,
		Rules:        s.feed.Rules,
	}), nil
}

// Card derives the listing card of a single page.
func (s *PageService) Card(page db.Page) content.Card {
	return content.NewCard(page, s.feed.DefaultImage, s.feed.Rules)
}

// SuggestSlug proposes a slug for title.
func (s *PageService) SuggestSlug(title string) string {
	return content.Slugify(title)
}

// ensureSlugAvailable rejects candidate when another page already uses it.
// currentSlug is the persisted slug of the page being edited, "" on create.
func (s *PageService) ensureSlugAvailable(ctx context.Context, candidate, currentSlug string) error {
	if currentSlug != "" && candidate == currentSlug {
		return nil
	}

	n, err := s.store.Count(ctx, store.Filter{Slug: candidate})
	if err != nil {
		return err
	}
	if n > 0 {
		return content.FieldErr("slug", content.MsgSlugTaken)
	}
	return nil
}

func (s *PageService) first(ctx context.Context, f store.Filter) (*db.Page, error) {
	pages, err := s.store.Select(ctx, store.Query{Filter: f, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, ErrPageNotFound
	}
	return &pages[0], nil
}

func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrPageNotFound
	case errors.Is(err, store.ErrConflict):
		return ErrSlugConflict
	default:
		return err
	}
}
