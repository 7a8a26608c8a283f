package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/livetext"
	"github.com/Zachkp/portfolio/internal/store"
	"github.com/Zachkp/portfolio/internal/typeanim"
)

const heartbeatInterval = 30 * time.Second

// site wires the animated headline to the web server: the animator types
// into a live feed registered under the configured selector, and every
// visitor's browser follows that feed over SSE.
type site struct {
	cfg        config.Config
	db         *store.Store
	clk        clock.Clock
	feed       *livetext.Feed
	anim       *typeanim.Animator
	adminToken string
}

func newSite(ctx context.Context, cfg config.Config, db *store.Store, clk clock.Clock) (*site, error) {
	feed := livetext.NewFeed()
	doc := typeanim.NewDocument()
	doc.Register(cfg.Target, feed)

	anim := typeanim.New(
		typeanim.WithResolver(doc.Query),
		typeanim.WithClock(clk),
		typeanim.WithLogger(log.Default()),
	)

	// saved admin edits win over config
	phrases, err := db.Phrases(ctx)
	if err != nil {
		return nil, err
	}
	if len(phrases) == 0 {
		phrases = cfg.Phrases
	}
	timings, err := db.Timings(ctx, cfg.Timings)
	if err != nil {
		return nil, err
	}

	if err := anim.SetPhrases(phrases); err != nil {
		return nil, err
	}
	if err := anim.SetTargetSelector(cfg.Target); err != nil {
		return nil, err
	}
	if err := anim.SetTimings(timings); err != nil {
		return nil, err
	}
	if err := anim.Start(); err != nil {
		return nil, err
	}

	s := &site{
		cfg:  cfg,
		db:   db,
		clk:  clk,
		feed: feed,
		anim: anim,
	}
	s.initAdminToken()
	return s, nil
}

func (s *site) routes(r *gin.Engine) {
	r.GET("/", s.handleHome)
	r.GET("/typewriter/stream", s.handleStream)
	r.GET("/typewriter/state", s.handleState)
	s.adminRoutes(r)
}

// Home page route
func (s *site) handleHome(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"aboutMeContent": AboutMe,
		"headline":       Headline,
		"targetID":       s.cfg.Target[1:],
		"targetIsClass":  s.cfg.Target[0] == '.',
		"currentText":    s.feed.Text(),
		"phrases":        s.anim.Phrases(),
	})
}

// handleStream pushes the headline text to the browser on every change.
func (s *site) handleStream(c *gin.Context) {
	frames := s.feed.Subscribe(c.Request.Context())
	heartbeat := s.clk.Ticker(heartbeatInterval)
	defer heartbeat.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		select {
		case text, ok := <-frames:
			if !ok {
				return false
			}
			c.SSEvent("text", text)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", "")
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func (s *site) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state":   s.anim.State().String(),
		"index":   s.anim.Index(),
		"text":    s.anim.Text(),
		"phrases": len(s.anim.Phrases()),
		"timings": timingsJSON(s.anim.Timings()),
	})
}

// timingsJSON reports timings in milliseconds, keeping fractions.
func timingsJSON(t typeanim.Timings) gin.H {
	ms := func(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
	return gin.H{
		"typing_speed":      ms(t.TypingSpeed),
		"erase_speed":       ms(t.EraseSpeed),
		"wait_before_erase": ms(t.WaitBeforeErase),
		"wait_before_next":  ms(t.WaitBeforeNext),
	}
}
