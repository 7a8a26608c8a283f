// admin.go - token-protected editing of the animated headline
package main

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/typeanim"
)

const adminCookie = "admin_token"

// Initialize admin access. A configured token (admin-token or
// PORTFOLIO_ADMIN_TOKEN) is what production uses; without one a fresh
// random token is made per process and only shown in debug mode.
func (s *site) initAdminToken() {
	log.Printf("Admin access available at: /admin/login")
	if s.cfg.AdminToken != "" {
		s.adminToken = s.cfg.AdminToken
		log.Printf("Admin token loaded from config")
		return
	}

	s.adminToken = generateAdminToken()
	if gin.Mode() == gin.DebugMode {
		log.Printf("Admin token (dev only): %s", s.adminToken)
	} else {
		log.Printf("No admin token configured; set PORTFOLIO_ADMIN_TOKEN to enable admin login")
	}
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate admin token:", err)
	}
	return hex.EncodeToString(bytes)
}

func (s *site) validToken(token string) bool {
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) == 1
}

// Middleware to check admin authentication
func (s *site) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || !s.validToken(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin login required"})
			return
		}
		c.Next()
	}
}

func (s *site) adminRoutes(r *gin.Engine) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "login.html", gin.H{"title": "Admin Login"})
	})
	r.POST("/admin/login", s.handleLogin)

	api := r.Group("/admin/api", s.adminAuthMiddleware())
	api.GET("/phrases", s.handleGetPhrases)
	api.PUT("/phrases", s.handlePutPhrases)
	api.GET("/timings", s.handleGetTimings)
	api.PUT("/timings", s.handlePutTimings)
	api.POST("/animation/start", s.handleStart)
	api.POST("/animation/stop", s.handleStop)
}

func (s *site) handleLogin(c *gin.Context) {
	if !s.validToken(c.PostForm("token")) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(adminCookie, s.adminToken, 3600*12, "/admin", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// configError reports a rejected configuration value as a 400 with the
// error kind, so the admin page can point at the bad field.
func configError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": err.Error(),
		"kind":  typeanim.Kind(err),
	})
}

func (s *site) handleGetPhrases(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"phrases": s.anim.Phrases(), "index": s.anim.Index()})
}

// handlePutPhrases saves a new phrase list and restarts the headline from
// its first phrase.
func (s *site) handlePutPhrases(c *gin.Context) {
	var body struct {
		Phrases any `json:"phrases"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	phrases, err := typeanim.PhrasesFromValue(body.Phrases)
	if err != nil {
		configError(c, err)
		return
	}

	if err := s.db.ReplacePhrases(c.Request.Context(), phrases); err != nil {
		log.Printf("Error saving phrases: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save phrases"})
		return
	}
	if err := s.anim.SetPhrases(phrases); err != nil {
		configError(c, err)
		return
	}
	if err := s.anim.Start(); err != nil {
		configError(c, err)
		return
	}
	log.Printf("Admin: phrase list replaced (%d phrases)", len(phrases))
	c.JSON(http.StatusOK, gin.H{"phrases": phrases})
}

func (s *site) handleGetTimings(c *gin.Context) {
	c.JSON(http.StatusOK, timingsJSON(s.anim.Timings()))
}

// handlePutTimings accepts any subset of the four timings, as JSON
// numbers of milliseconds. They are saved first and apply from the next
// tick on, so a failed save leaves the running animation untouched.
func (s *site) handlePutTimings(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t := s.anim.Timings()
	fields := map[string]*time.Duration{
		"typing_speed":      &t.TypingSpeed,
		"erase_speed":       &t.EraseSpeed,
		"wait_before_erase": &t.WaitBeforeErase,
		"wait_before_next":  &t.WaitBeforeNext,
	}
	for key, raw := range body {
		f, ok := fields[key]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown timing " + key})
			return
		}
		d, err := typeanim.ParseMillis(raw)
		if err != nil {
			configError(c, err)
			return
		}
		*f = d
	}

	if err := t.Validate(); err != nil {
		configError(c, err)
		return
	}
	if err := s.db.SaveTimings(c.Request.Context(), t); err != nil {
		log.Printf("Error saving timings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save timings"})
		return
	}
	if err := s.anim.SetTimings(t); err != nil {
		configError(c, err)
		return
	}
	c.JSON(http.StatusOK, timingsJSON(t))
}

func (s *site) handleStart(c *gin.Context) {
	if err := s.anim.Start(); err != nil {
		configError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": s.anim.State().String()})
}

func (s *site) handleStop(c *gin.Context) {
	s.anim.Stop()
	c.JSON(http.StatusOK, gin.H{"state": s.anim.State().String(), "text": s.anim.Text()})
}
