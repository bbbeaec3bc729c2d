// Package typed drives the hero "typed text" effect: each phrase is typed
// one character at a time, held, erased, held again, and the animator moves
// on to the next phrase, wrapping around forever until stopped.
package typed

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Zachkp/portfolio-web/internal/logging"
)

var (
	// ErrMissingTarget is returned by Start when no render target is bound.
	ErrMissingTarget = errors.New("typed: missing render target")
	// ErrEmptyPhrases is returned by Start when there is nothing to type.
	ErrEmptyPhrases = errors.New("typed: empty phrase list")
	// ErrTargetGone is what a Target returns once it can no longer be written to.
	ErrTargetGone = errors.New("typed: render target gone")
)

// Target is the single text surface an animator owns.
// Render replaces the whole displayed text. It runs without the animator's
// lock held, so it may call Snapshot or Stop; no other tick runs until it returns.
type Target interface {
	Render(text string) error
}

// TargetFunc adapts a function to Target.
type TargetFunc func(text string) error

func (f TargetFunc) Render(text string) error { return f(text) }

// State is the animator's position in the type/erase cycle.
type State int

const (
	Idle State = iota
	Typing
	PausedAfterType
	Erasing
	PausedAfterErase
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Typing:
		return "typing"
	case PausedAfterType:
		return "paused-after-type"
	case Erasing:
		return "erasing"
	case PausedAfterErase:
		return "paused-after-erase"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Config holds the cycle timings and the ordered phrase list.
type Config struct {
	InitialDelay    time.Duration
	TypingInterval  time.Duration
	DwellAfterType  time.Duration
	ErasingInterval time.Duration
	DwellAfterErase time.Duration
	Phrases         []string
}

// DefaultConfig returns the timings used on the live site.
// Erasing is deliberately much faster than typing.
func DefaultConfig() Config {
	return Config{
		InitialDelay:    500 * time.Millisecond,
		TypingInterval:  300 * time.Millisecond,
		DwellAfterType:  500 * time.Millisecond,
		ErasingInterval: 50 * time.Millisecond,
		DwellAfterErase: 500 * time.Millisecond,
		Phrases:         []string{"Frontend Developer", "UI/UX Designer"},
	}
}

// Snapshot is a consistent read of the animator state.
type Snapshot struct {
	State State
	Index int
	Count int
	Text  string
}

// Option configures an Animator.
type Option func(*Animator)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c Clock) Option {
	return func(a *Animator) { a.clock = c }
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(a *Animator) { a.log = l }
}

// Animator cycles a Target through its phrases.
type Animator struct {
	cfg     Config
	phrases [][]rune
	target  Target
	clock   Clock
	log     *slog.Logger

	mu      sync.Mutex
	state   State
	started bool
	index   int
	count   int
	pending Timer
	gen     uint64
	done    chan struct{}
	once    sync.Once
}

// New builds an animator bound to target. Nothing is scheduled until Start.
func New(cfg Config, target Target, opts ...Option) *Animator {
	a := &Animator{
		cfg:    cfg,
		target: target,
		clock:  WallClock(),
		log:    logging.NewNop(),
		done:   make(chan struct{}),
	}
	for _, p := range cfg.Phrases {
		a.phrases = append(a.phrases, []rune(p))
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start schedules the first typing tick after the initial delay.
// Without a target or phrases it leaves the animator idle and returns the reason.
// Calling Start again is a no-op.
func (a *Animator) Start() error {
	if a.target == nil {
		return ErrMissingTarget
	}
	if len(a.phrases) == 0 {
		return ErrEmptyPhrases
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.started {
		return nil
	}
	a.started = true
	a.log.Debug("typed animator started", "phrases", len(a.phrases))
	a.schedule(a.cfg.InitialDelay, a.typeTick)
	return nil
}

// Stop cancels the pending tick. It is safe to call more than once and
// from any goroutine.
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.halt()
}

// Done is closed once the animator has stopped, either through Stop or
// because its target went away.
func (a *Animator) Done() <-chan struct{} {
	return a.done
}

// Snapshot returns the current state, phrase index and displayed text.
func (a *Animator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := Snapshot{State: a.state, Index: a.index, Count: a.count}
	if len(a.phrases) > 0 {
		s.Text = string(a.phrases[a.index][:a.count])
	}
	return s
}

// schedule must be called with mu held. The callback is dropped if the
// generation moved on (Stop) before it fired.
func (a *Animator) schedule(d time.Duration, step func()) {
	gen := a.gen
	a.pending = a.clock.AfterFunc(d, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.gen != gen || a.state == Stopped {
			return
		}
		step()
	})
}

func (a *Animator) typeTick() {
	a.state = Typing
	phrase := a.phrases[a.index]
	if a.count < len(phrase) {
		a.count++
		if !a.render(string(phrase[:a.count])) {
			return
		}
		a.schedule(a.cfg.TypingInterval, a.typeTick)
		return
	}
	a.state = PausedAfterType
	a.schedule(a.cfg.DwellAfterType, a.eraseTick)
}

func (a *Animator) eraseTick() {
	a.state = Erasing
	if a.count > 0 {
		a.count--
		if !a.render(string(a.phrases[a.index][:a.count])) {
			return
		}
		a.schedule(a.cfg.ErasingInterval, a.eraseTick)
		return
	}
	a.index = (a.index + 1) % len(a.phrases)
	a.state = PausedAfterErase
	a.schedule(a.cfg.DwellAfterErase, a.typeTick)
}

// render writes to the target; a failing target ends the cycle.
// It must be called with mu held and releases it around Target.Render.
// It reports false if the animator was stopped meanwhile.
func (a *Animator) render(text string) bool {
	gen := a.gen
	a.mu.Unlock()
	err := a.target.Render(text)
	a.mu.Lock()
	if a.gen != gen {
		return false
	}
	if err != nil {
		a.log.Debug("typed animator target gone", "error", err)
		a.halt()
		return false
	}
	return true
}

func (a *Animator) halt() {
	a.gen++
	if a.pending != nil {
		a.pending.Stop()
		a.pending = nil
	}
	a.state = Stopped
	a.once.Do(func() { close(a.done) })
}
