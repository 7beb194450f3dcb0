package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/portfoliocms/internal/service"
)

const (
	sessionUserID      = "user_id"
	sessionEmail       = "email"
	contextEditorID    = "editor_id"
	contextEditorEmail = "editor_email"
)

// ShowLoginPage renders the sign-in form.
func (a *API) ShowLoginPage(c *gin.Context) {
	if CurrentEditor(c).Valid() {
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{"title": "Sign in"})
}

// Login checks the submitted credentials and starts a session.
func (a *API) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	user, err := a.users.SignIn(c.Request.Context(), email, password)
	if err != nil {
		status := http.StatusUnauthorized
		message := "Invalid email or password"
		if !errors.Is(err, service.ErrInvalidCredentials) {
			c.Error(err)
			log.Error().Err(err).Msg("sign in failed")
			status = http.StatusInternalServerError
			message = "Sign in is unavailable right now"
		}
		a.renderHTML(c, status, "login.html", gin.H{"title": "Sign in", "error": message, "email": email})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserID, user.ID)
	session.Set(sessionEmail, user.Email)
	if err := session.Save(); err != nil {
		c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "login.html", gin.H{"title": "Sign in", "error": "Could not start a session"})
		return
	}

	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// Logout clears the session.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		c.Error(err)
	}
	c.Redirect(http.StatusFound, "/admin/login")
}

// CurrentEditor reads the signed-in editor from the session. The zero Editor
// means nobody is signed in.
func CurrentEditor(c *gin.Context) service.Editor {
	if id, ok := c.Get(contextEditorID); ok {
		email, _ := c.Get(contextEditorEmail)
		editor := service.Editor{ID: id.(uint)}
		editor.Email, _ = email.(string)
		return editor
	}

	session := sessions.Default(c)
	id, ok := session.Get(sessionUserID).(uint)
	if !ok || id == 0 {
		return service.Editor{}
	}
	email, _ := session.Get(sessionEmail).(string)
	return service.Editor{ID: id, Email: email}
}

func requireEditor(onMissing func(*gin.Context)) gin.HandlerFunc {
	return func(c *gin.Context) {
		editor := CurrentEditor(c)
		if !editor.Valid() {
			onMissing(c)
			c.Abort()
			return
		}
		c.Set(contextEditorID, editor.ID)
		c.Set(contextEditorEmail, editor.Email)
		c.Next()
	}
}

// AuthRequired guards admin pages and redirects to the login page.
func AuthRequired() gin.HandlerFunc {
	return requireEditor(func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/admin/login")
	})
}

// APIAuthRequired guards the admin JSON API and answers 401.
func APIAuthRequired() gin.HandlerFunc {
	return requireEditor(func(c *gin.Context) {
		respondError(c, http.StatusUnauthorized, "Please sign in to continue")
	})
}

// ShowDashboard renders the admin landing page.
func (a *API) ShowDashboard(c *gin.Context) {
	stats, err := a.pages.Dashboard(c.Request.Context())
	if err != nil {
		c.Error(err)
		log.Error().Err(err).Msg("load dashboard")
		a.renderHTML(c, http.StatusInternalServerError, "dashboard.html", gin.H{
			"title": "Dashboard",
			"error": "Could not load the dashboard",
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "dashboard.html", gin.H{
		"title":          "Dashboard",
		"publishedCount": stats.PublishedCount,
		"draftCount":     stats.DraftCount,
		"recentPages":    stats.RecentPages,
	})
}

// GetDashboard returns the dashboard counters as JSON.
func (a *API) GetDashboard(c *gin.Context) {
	stats, err := a.pages.Dashboard(c.Request.Context())
	if err != nil {
		respondPageError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"published_count": stats.PublishedCount,
		"draft_count":     stats.DraftCount,
		"recent_pages":    stats.RecentPages,
	})
}
