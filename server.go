package main

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type server struct {
	cfg     Config
	content Content
	themes  *ThemeStore
	log     *slog.Logger

	// closing is closed when the HTTP server starts shutting down so that
	// long-lived streams end and let Shutdown finish.
	closing   chan struct{}
	closeOnce sync.Once
}

func newServer(cfg Config, content Content, themes *ThemeStore, log *slog.Logger) *server {
	return &server{
		cfg:     cfg,
		content: content,
		themes:  themes,
		log:     log,
		closing: make(chan struct{}),
	}
}

// httpServer wraps the router in an http.Server that ends open streams on Shutdown.
func (s *server) httpServer(addr, templateGlob string) *http.Server {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.routes(templateGlob),
	}
	srv.RegisterOnShutdown(s.closeStreams)
	return srv
}

func (s *server) closeStreams() {
	s.closeOnce.Do(func() { close(s.closing) })
}

// routes builds the router. templateGlob is relative to the working directory.
func (s *server) routes(templateGlob string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log))
	r.LoadHTMLGlob(templateGlob)

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	// Home page route
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"theme":    s.currentTheme(c),
			"aboutMe":  s.content.AboutMe,
			"projects": s.content.Projects,
			"animate":  len(s.cfg.Typed.Phrases) > 0,
		})
	})

	// HTMX about popup fragment
	r.GET("/about", func(c *gin.Context) {
		c.HTML(http.StatusOK, "about.html", gin.H{
			"aboutMe": s.content.AboutMe,
		})
	})

	r.GET("/typed-text", s.typedText)

	r.GET("/theme", s.getTheme)
	r.POST("/theme", s.setTheme)
	r.POST("/theme/toggle", s.toggleTheme)

	return r
}

// requestLogger logs one line per request, skipping static assets.
func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/images/") ||
			strings.HasPrefix(path, "/favicon") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
