package router

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"github.com/portfoliocms/internal/config"
	"github.com/portfoliocms/internal/content"
	"github.com/portfoliocms/internal/handler"
	"github.com/portfoliocms/internal/logging"
	"github.com/portfoliocms/internal/service"
	"github.com/portfoliocms/internal/store"
	"github.com/portfoliocms/web"
)

const sessionName = "portfolio_session"

// NewPageRepository returns the page store selected by cfg.PageStore. Both
// backends share the gorm connection pool.
func NewPageRepository(gdb *gorm.DB, backend string) (store.Repository, error) {
	switch backend {
	case "", config.StoreGorm:
		return store.NewGorm(gdb), nil
	case config.StoreSQLX:
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlx store: %w", err)
		}
		return store.NewSQLX(sqlx.NewDb(sqlDB, "sqlite3")), nil
	default:
		return nil, fmt.Errorf("unknown page store %q", backend)
	}
}

// CategoryRules converts configured rules; nil selects the built-in set.
func CategoryRules(rules []config.CategoryRule) []content.CategoryRule {
	if len(rules) == 0 {
		return nil
	}
	out := make([]content.CategoryRule, 0, len(rules))
	for _, rule := range rules {
		out = append(out, content.CategoryRule{Name: rule.Name, Keywords: rule.Keywords})
	}
	return out
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"join": strings.Join,
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006 15:04")
		},
	}
}

// SetupRouter builds the gin engine with every route.
func SetupRouter(gdb *gorm.DB, cfg config.AppConfig) (*gin.Engine, error) {
	repo, err := NewPageRepository(gdb, cfg.PageStore)
	if err != nil {
		return nil, err
	}

	tmpl, err := web.Templates(templateFuncs())
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	pages := service.NewPageService(repo, service.FeedSettings{
		DefaultImage: cfg.DefaultImageURL,
		Rules:        CategoryRules(cfg.Categories),
	})
	users := service.NewUserService(gdb)
	uploads := service.NewUploadService(service.NewLocalFileStore(cfg.UploadDir, cfg.UploadURLPath), cfg.MaxUploadBytes)
	api := handler.NewAPI(pages, users, uploads, handler.Options{
		SiteName:        cfg.SiteName,
		SiteBaseURL:     cfg.SiteBaseURL,
		SanitizeContent: cfg.SanitizeContent,
	})

	r := gin.New()
	r.Use(logging.AccessLog(), gin.Recovery())
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, sessionStore))

	r.SetHTMLTemplate(tmpl)

	uploadURL := "/" + strings.Trim(cfg.UploadURLPath, "/")
	r.Static(uploadURL, cfg.UploadDir)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := gdb.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// public
	r.GET("/", api.ShowHome)
	r.GET("/blog", api.ShowBlog)
	r.GET("/blog/:slug", api.ShowBlogDetail)
	r.GET("/api/pages", api.ListPublishedPages)
	r.GET("/api/pages/:slug", api.GetPublishedPage)

	// admin
	admin := r.Group("/admin")
	{
		admin.GET("/login", api.ShowLoginPage)
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		views := admin.Group("")
		views.Use(handler.AuthRequired())
		{
			views.GET("/dashboard", api.ShowDashboard)
			views.GET("/pages", api.ShowPageList)
			views.GET("/pages/new", api.ShowPageEditor)
			views.GET("/pages/:id/edit", api.ShowPageEditor)
		}

		apiGroup := admin.Group("/api")
		apiGroup.Use(handler.APIAuthRequired())
		{
			apiGroup.GET("/dashboard", api.GetDashboard)
			apiGroup.GET("/pages", api.ListPages)
			apiGroup.GET("/pages/:id", api.GetPage)
			apiGroup.POST("/pages", api.CreatePage)
			apiGroup.PUT("/pages/:id", api.UpdatePage)
			apiGroup.PATCH("/pages/:id/published", api.SetPagePublished)
			apiGroup.POST("/pages/:id/toggle", api.TogglePage)
			apiGroup.DELETE("/pages/:id", api.DeletePage)
			apiGroup.POST("/uploads", api.UploadImage)
			apiGroup.GET("/slug", api.SuggestSlug)
		}
	}

	// single-segment paths resolve to page slugs
	r.NoRoute(api.ShowDynamicPage)

	return r, nil
}
