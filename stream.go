package main

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio-web/internal/typed"
)

// streamTarget hands rendered text to the SSE loop. It disappears when the
// client does.
type streamTarget struct {
	ctx    context.Context
	frames chan string
}

func newStreamTarget(ctx context.Context) *streamTarget {
	return &streamTarget{ctx: ctx, frames: make(chan string)}
}

func (t *streamTarget) Render(text string) error {
	select {
	case t.frames <- text:
		return nil
	case <-t.ctx.Done():
		return typed.ErrTargetGone
	}
}

// typedText streams the hero animation as server-sent events, one
// "typed" event per frame, with an animator owned by this connection.
// The stream ends when the client leaves or the server shuts down.
func (s *server) typedText(c *gin.Context) {
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	go func() {
		select {
		case <-s.closing:
			cancel()
		case <-ctx.Done():
		}
	}()

	target := newStreamTarget(ctx)
	anim := typed.New(s.cfg.Typed, target, typed.WithLogger(s.log))
	if err := anim.Start(); err != nil {
		s.log.Debug("typed text not started", "error", err)
		c.Status(http.StatusNoContent)
		return
	}
	defer anim.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		select {
		case text := <-target.frames:
			c.SSEvent("typed", text)
			return true
		case <-anim.Done():
			return false
		case <-ctx.Done():
			return false
		}
	})
}
