package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/portfoliocms/internal/content"
	"github.com/portfoliocms/internal/db"
)

// ShowPageList renders the admin page table.
func (a *API) ShowPageList(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))
	pages, err := a.pages.ListForAdmin(c.Request.Context(), search)
	if err != nil {
		c.Error(err)
		log.Error().Err(err).Msg("list pages")
		a.renderHTML(c, http.StatusInternalServerError, "pages.html", gin.H{
			"title": "Pages",
			"error": "Could not load pages",
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "pages.html", gin.H{
		"title":  "Pages",
		"pages":  pages,
		"search": search,
	})
}

// ShowPageEditor renders the form for a new or existing page.
func (a *API) ShowPageEditor(c *gin.Context) {
	id := pageIDParam(c)
	if id == "" {
		a.renderHTML(c, http.StatusOK, "page_edit.html", gin.H{
			"title": "New page",
			"page":  db.Page{},
			"isNew": true,
		})
		return
	}

	page, err := a.pages.Get(c.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if isNotFound(err) {
			status = http.StatusNotFound
		} else {
			c.Error(err)
		}
		a.renderHTML(c, status, "not_found.html", gin.H{"title": "Page not found"})
		return
	}

	a.renderHTML(c, http.StatusOK, "page_edit.html", gin.H{
		"title": "Edit " + page.Title,
		"page":  page,
		"isNew": false,
	})
}

// ListPages returns the admin page list as JSON.
func (a *API) ListPages(c *gin.Context) {
	pages, err := a.pages.ListForAdmin(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondPageError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": pages, "total": len(pages)})
}

// GetPage returns a single page regardless of its state.
func (a *API) GetPage(c *gin.Context) {
	id := pageIDParam(c)
	page, err := a.pages.Get(c.Request.Context(), id)
	if err != nil {
		respondPageError(c, err, id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

// CreatePage validates and stores a new page.
func (a *API) CreatePage(c *gin.Context) {
	var input content.PageInput
	if !bindJSON(c, &input, "Invalid page payload") {
		return
	}

	page, err := a.pages.Create(c.Request.Context(), CurrentEditor(c), input)
	if err != nil {
		respondPageError(c, err, "")
		return
	}

	log.Info().Str("page_id", page.ID).Str("slug", page.Slug).Msg("page created")
	c.JSON(http.StatusCreated, gin.H{"page": page, "message": "Page created"})
}

// UpdatePage replaces the editable fields of a page.
func (a *API) UpdatePage(c *gin.Context) {
	id := pageIDParam(c)
	var input content.PageInput
	if !bindJSON(c, &input, "Invalid page payload") {
		return
	}

	page, err := a.pages.Update(c.Request.Context(), CurrentEditor(c), id, input)
	if err != nil {
		respondPageError(c, err, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page, "message": "Page updated"})
}

type publishedRequest struct {
	Published *bool `json:"published"`
}

// SetPagePublished sets the published flag to the requested value.
func (a *API) SetPagePublished(c *gin.Context) {
	id := pageIDParam(c)
	var req publishedRequest
	if !bindJSON(c, &req, "Invalid publish payload") {
		return
	}
	if req.Published == nil {
		respondError(c, http.StatusBadRequest, "published is required")
		return
	}

	page, err := a.pages.SetPublished(c.Request.Context(), CurrentEditor(c), id, *req.Published)
	if err != nil {
		respondPageError(c, err, id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "message": publishMessage(page)})
}

// TogglePage flips the published flag.
func (a *API) TogglePage(c *gin.Context) {
	id := pageIDParam(c)
	page, err := a.pages.TogglePublished(c.Request.Context(), CurrentEditor(c), id)
	if err != nil {
		respondPageError(c, err, id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "message": publishMessage(page)})
}

// DeletePage removes a page once the caller confirmed the deletion.
func (a *API) DeletePage(c *gin.Context) {
	id := pageIDParam(c)
	if c.Query("confirm") != "true" {
		respondError(c, http.StatusBadRequest, "Deleting a page cannot be undone; repeat the request with confirm=true")
		return
	}

	if err := a.pages.Delete(c.Request.Context(), CurrentEditor(c), id); err != nil {
		respondPageError(c, err, id)
		return
	}

	log.Info().Str("page_id", id).Msg("page deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Page deleted"})
}

// SuggestSlug derives a slug from the title query parameter.
func (a *API) SuggestSlug(c *gin.Context) {
	title := c.Query("title")
	c.JSON(http.StatusOK, gin.H{"slug": a.pages.SuggestSlug(title)})
}

func publishMessage(page *db.Page) string {
	if content.StateOf(page.Published).Published() {
		return fmt.Sprintf("Page is now live. View it at /%s", page.Slug)
	}
	return "Page moved to drafts"
}
