package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/portfoliocms/internal/service"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	pages    *service.PageService
	users    *service.UserService
	uploads  *service.UploadService
	site     siteViewModel
	sanitize *bluemonday.Policy
}

// Options carries the site-wide settings handlers render with.
type Options struct {
	SiteName        string
	SiteBaseURL     string
	SanitizeContent bool
}

type siteViewModel struct {
	Name    string
	BaseURL string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(pages *service.PageService, users *service.UserService, uploads *service.UploadService, opts Options) *API {
	site := siteViewModel{
		Name:    strings.TrimSpace(opts.SiteName),
		BaseURL: strings.TrimRight(strings.TrimSpace(opts.SiteBaseURL), "/"),
	}
	if site.Name == "" {
		site.Name = "Portfolio"
	}

	api := &API{
		pages:   pages,
		users:   users,
		uploads: uploads,
		site:    site,
	}
	if opts.SanitizeContent {
		api.sanitize = bluemonday.UGCPolicy()
	}
	return api
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["site"]; !exists {
		payload["site"] = gin.H{
			"name":    a.site.Name,
			"baseUrl": a.site.BaseURL,
		}
	}
	if _, exists := payload["siteName"]; !exists {
		payload["siteName"] = a.site.Name
	}
	if email, ok := c.Get(contextEditorEmail); ok {
		payload["editorEmail"] = email
	}

	c.HTML(status, template, payload)
}

// pageBody returns the stored HTML of a page, sanitized when configured.
func (a *API) pageBody(raw string) string {
	if a.sanitize == nil {
		return raw
	}
	return a.sanitize.Sanitize(raw)
}
