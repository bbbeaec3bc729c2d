package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Theme is the one preference the site persists.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	// DefaultTheme applies to visitors who never toggled.
	DefaultTheme = ThemeDark

	visitorCookie = "visitor_id"
	themeCookie   = "theme"
	cookieMaxAge  = 365 * 24 * 60 * 60
)

var ErrInvalidTheme = errors.New("invalid theme")

// ParseTheme accepts exactly "light" or "dark".
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Icon is the toggle icon shown while the theme is active: a sun in dark
// mode, a moon in light mode.
func (t Theme) Icon() string {
	if t == ThemeDark {
		return "/static/icons/sun.svg"
	}
	return "/static/icons/moon.svg"
}

// Logo is the header logo variant for the theme.
func (t Theme) Logo() string {
	return "/static/images/" + string(t) + "-theme-logo.svg"
}

// ThemeStore keeps each visitor's theme in SQLite, keyed by an anonymous
// visitor id. Nothing else about the visitor is stored.
type ThemeStore struct {
	db *sql.DB
}

// OpenThemeStore opens (or creates) the database at path.
func OpenThemeStore(path string) (*ThemeStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open theme store: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS preferences (
		visitor_id TEXT PRIMARY KEY,
		theme TEXT NOT NULL CHECK (theme IN ('light', 'dark')),
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create preferences table: %w", err)
	}
	return &ThemeStore{db: db}, nil
}

// Get returns the visitor's theme, or DefaultTheme if none is stored.
func (s *ThemeStore) Get(ctx context.Context, visitorID string) (Theme, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT theme FROM preferences WHERE visitor_id = ?`, visitorID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultTheme, nil
	}
	if err != nil {
		return "", fmt.Errorf("load theme: %w", err)
	}
	return ParseTheme(raw)
}

// Set stores the visitor's theme.
func (s *ThemeStore) Set(ctx context.Context, visitorID string, theme Theme) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (visitor_id, theme, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(visitor_id) DO UPDATE SET
			theme = excluded.theme,
			updated_at = excluded.updated_at
	`, visitorID, string(theme), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

func (s *ThemeStore) Close() error {
	return s.db.Close()
}

// visitorID returns the visitor cookie, issuing a new one if absent.
func visitorID(c *gin.Context) string {
	if id, err := c.Cookie(visitorCookie); err == nil {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(visitorCookie, id, cookieMaxAge, "/", "", false, true)
	return id
}

// currentTheme resolves the theme for a page render. Store failures fall
// back to the default so the page still renders.
func (s *server) currentTheme(c *gin.Context) Theme {
	theme, err := s.themes.Get(c.Request.Context(), visitorID(c))
	if err != nil {
		s.log.Error("theme lookup failed", "error", err)
		return DefaultTheme
	}
	return theme
}

func (s *server) getTheme(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"theme": s.currentTheme(c)})
}

func (s *server) setTheme(c *gin.Context) {
	theme, err := ParseTheme(c.PostForm("theme"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.saveTheme(c, visitorID(c), theme)
}

func (s *server) toggleTheme(c *gin.Context) {
	id := visitorID(c)
	current, err := s.themes.Get(c.Request.Context(), id)
	if err != nil {
		s.log.Error("theme lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load theme"})
		return
	}
	s.saveTheme(c, id, current.Toggle())
}

func (s *server) saveTheme(c *gin.Context, id string, theme Theme) {
	if err := s.themes.Set(c.Request.Context(), id, theme); err != nil {
		s.log.Error("theme save failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save theme"})
		return
	}

	// Not HttpOnly: site.js reapplies it to pages restored from the back/forward cache.
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(themeCookie, string(theme), cookieMaxAge, "/", "", false, false)

	trigger, _ := json.Marshal(gin.H{"themeChanged": gin.H{
		"theme": theme,
		"icon":  theme.Icon(),
		"logo":  theme.Logo(),
	}})
	c.Header("HX-Trigger", string(trigger))
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}
