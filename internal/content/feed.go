package content

import (
	"slices"
	"time"

	"github.com/portfoliocms/internal/db"
)

const (
	cardDateLayout = "January 2, 2006"
	cardAuthor     = "Admin"
	recentLimit    = 4
)

// Card is the listing view of a published page. Nothing on it is persisted.
type Card struct {
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	Excerpt    string    `json:"excerpt"`
	Date       string    `json:"date"`
	CreatedAt  time.Time `json:"created_at"`
	ReadTime   string    `json:"read_time"`
	Author     string    `json:"author"`
	Image      string    `json:"image"`
	Featured   bool      `json:"featured"`
	Categories []string  `json:"categories"`
}

// HasCategory reports whether name was inferred for the card.
func (c Card) HasCategory(name string) bool {
	return slices.Contains(c.Categories, name)
}

// CategoryCount is one sidebar entry.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// FeedOptions tunes BuildFeed.
type FeedOptions struct {
	Category     string
	DefaultImage string
	Rules        []CategoryRule
}

// Feed is everything the blog listing renders.
type Feed struct {
	Category   string          `json:"category,omitempty"`
	Featured   *Card           `json:"featured,omitempty"`
	Posts      []Card          `json:"posts"`
	Recent     []Card          `json:"recent"`
	Categories []CategoryCount `json:"categories"`
}

// NewCard derives the listing attributes of page.
func NewCard(page db.Page, defaultImage string, rules []CategoryRule) Card {
	return Card{
		Slug:       page.Slug,
		Title:      page.Title,
		Excerpt:    Excerpt(page.MetaDescription, page.Content),
		Date:       page.CreatedAt.Format(cardDateLayout),
		CreatedAt:  page.CreatedAt,
		ReadTime:   ReadTime(page.Content),
		Author:     cardAuthor,
		Image:      ImageFor(page.FeaturedImage, defaultImage),
		Categories: InferCategories(page.Title, rules),
	}
}

// BuildFeed derives the blog listing from published pages ordered by
// created_at descending. The first page is flagged as featured. With a
// category filter the hero is dropped and every matching card is listed.
func BuildFeed(pages []db.Page, opts FeedOptions) Feed {
	cards := make([]Card, 0, len(pages))
	for i, page := range pages {
		card := NewCard(page, opts.DefaultImage, opts.Rules)
		card.Featured = i == 0
		cards = append(cards, card)
	}

	feed := Feed{
		Category:   opts.Category,
		Posts:      []Card{},
		Recent:     cards[:min(recentLimit, len(cards))],
		Categories: countCategories(cards, opts.Rules),
	}

	for i := range cards {
		card := cards[i]
		if opts.Category != "" {
			if card.HasCategory(opts.Category) {
				feed.Posts = append(feed.Posts, card)
			}
			continue
		}
		if card.Featured {
			feed.Featured = &cards[i]
			continue
		}
		feed.Posts = append(feed.Posts, card)
	}

	return feed
}

func countCategories(cards []Card, rules []CategoryRule) []CategoryCount {
	if len(rules) == 0 {
		rules = DefaultCategoryRules
	}

	counts := make(map[string]int)
	for _, card := range cards {
		for _, name := range card.Categories {
			counts[name]++
		}
	}

	out := make([]CategoryCount, 0, len(rules))
	seen := make(map[string]bool)
	for _, rule := range rules {
		if seen[rule.Name] {
			continue
		}
		seen[rule.Name] = true
		out = append(out, CategoryCount{Name: rule.Name, Count: counts[rule.Name]})
	}
	if !seen[DefaultCategory] {
		out = append(out, CategoryCount{Name: DefaultCategory, Count: counts[DefaultCategory]})
	}
	return out
}
