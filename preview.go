package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio-web/internal/logging"
	"github.com/Zachkp/portfolio-web/internal/typed"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play the typed-text hero in the terminal",
	RunE:  runPreview,
}

// lineTarget rewrites a single terminal line on every frame.
type lineTarget struct {
	w io.Writer
}

func (t lineTarget) Render(text string) error {
	if _, err := fmt.Fprintf(t.w, "\r\x1b[K%s", text); err != nil {
		return typed.ErrTargetGone
	}
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	content, err := LoadContent(cfg.ContentPath)
	if err != nil {
		return err
	}
	cfg.ApplyContent(content)

	out := cmd.OutOrStdout()
	anim := typed.New(cfg.Typed, lineTarget{w: out}, typed.WithLogger(logging.New(cfg.LogLevel)))
	if err := anim.Start(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
	case <-anim.Done():
	}
	anim.Stop()
	fmt.Fprintln(out)
	return nil
}
