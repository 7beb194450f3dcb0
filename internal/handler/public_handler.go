package handler

import (
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/portfoliocms/internal/content"
	"github.com/portfoliocms/internal/db"
	"github.com/portfoliocms/internal/service"
)

const homeRecentLimit = 3

// publicPage is the JSON shape of a published page. The owner is not exposed.
type publicPage struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Content         string    `json:"content"`
	MetaDescription string    `json:"meta_description"`
	FeaturedImage   string    `json:"featured_image"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func isNotFound(err error) bool {
	return errors.Is(err, service.ErrPageNotFound)
}

func (a *API) toPublicPage(page *db.Page) publicPage {
	return publicPage{
		ID:              page.ID,
		Title:           page.Title,
		Slug:            page.Slug,
		Content:         a.pageBody(page.Content),
		MetaDescription: page.MetaDescription,
		FeaturedImage:   page.FeaturedImage,
		CreatedAt:       page.CreatedAt,
		UpdatedAt:       page.UpdatedAt,
	}
}

// ShowHome renders the featured post and the latest posts.
func (a *API) ShowHome(c *gin.Context) {
	feed, err := a.pages.BlogFeed(c.Request.Context(), "")
	if err != nil {
		a.renderServerError(c, err)
		return
	}

	recent := feed.Posts[:min(homeRecentLimit, len(feed.Posts))]
	a.renderHTML(c, http.StatusOK, "home.html", gin.H{
		"title":    a.site.Name,
		"featured": feed.Featured,
		"posts":    recent,
	})
}

// ShowBlog renders the blog listing, optionally filtered by ?category=.
func (a *API) ShowBlog(c *gin.Context) {
	feed, err := a.pages.BlogFeed(c.Request.Context(), c.Query("category"))
	if err != nil {
		a.renderServerError(c, err)
		return
	}

	title := "Blog"
	if feed.Category != "" {
		title = feed.Category + " | Blog"
	}
	a.renderHTML(c, http.StatusOK, "blog.html", gin.H{
		"title": title,
		"feed":  feed,
	})
}

// ShowBlogDetail renders a published page as a blog post.
func (a *API) ShowBlogDetail(c *gin.Context) {
	page, ok := a.resolvePublished(c, c.Param("slug"))
	if !ok {
		return
	}

	card := a.pages.Card(*page)
	a.renderHTML(c, http.StatusOK, "blog_detail.html", gin.H{
		"title":       page.Title,
		"description": card.Excerpt,
		"card":        card,
		"heroImage":   strings.TrimSpace(page.FeaturedImage),
		"body":        template.HTML(a.pageBody(page.Content)),
	})
}

// ShowDynamicPage serves a published page at /<slug>. It is installed as the
// router's fallback so fixed routes always win.
func (a *API) ShowDynamicPage(c *gin.Context) {
	path := c.Request.URL.Path
	if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/admin/api/") {
		respondError(c, http.StatusNotFound, "Not found")
		return
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		a.renderNotFound(c)
		return
	}

	slug := strings.Trim(path, "/")
	if slug == "" || strings.Contains(slug, "/") {
		a.renderNotFound(c)
		return
	}

	page, ok := a.resolvePublished(c, slug)
	if !ok {
		return
	}

	a.renderHTML(c, http.StatusOK, "page.html", gin.H{
		"title":       page.Title,
		"description": page.MetaDescription,
		"page":        page,
		"body":        template.HTML(a.pageBody(page.Content)),
	})
}

// ListPublishedPages returns cards for every published page.
func (a *API) ListPublishedPages(c *gin.Context) {
	pages, err := a.pages.ListPublished(c.Request.Context())
	if err != nil {
		respondPageError(c, err, "")
		return
	}

	cards := make([]content.Card, 0, len(pages))
	for _, page := range pages {
		cards = append(cards, a.pages.Card(page))
	}
	c.JSON(http.StatusOK, gin.H{"pages": cards})
}

// GetPublishedPage returns a published page by slug.
func (a *API) GetPublishedPage(c *gin.Context) {
	slug := c.Param("slug")
	page, err := a.pages.ResolvePublished(c.Request.Context(), slug)
	if err != nil {
		respondPageError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": a.toPublicPage(page)})
}

// resolvePublished renders the not-found page itself when slug does not
// resolve, so callers only handle the success path.
func (a *API) resolvePublished(c *gin.Context, slug string) (*db.Page, bool) {
	page, err := a.pages.ResolvePublished(c.Request.Context(), slug)
	if err == nil {
		return page, true
	}
	if isNotFound(err) {
		a.renderNotFound(c)
	} else {
		a.renderServerError(c, err)
	}
	return nil, false
}

func (a *API) renderNotFound(c *gin.Context) {
	a.renderHTML(c, http.StatusNotFound, "not_found.html", gin.H{"title": "Page not found"})
}

func (a *API) renderServerError(c *gin.Context, err error) {
	c.Error(err)
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("public page failed")
	a.renderHTML(c, http.StatusInternalServerError, "not_found.html", gin.H{
		"title": "Something went wrong",
		"error": "This page could not be loaded. Please try again later.",
	})
}
