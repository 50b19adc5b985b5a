package playground

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/vango-dev/declarative/internal/demo"
	"github.com/vango-dev/declarative/internal/errors"
	"github.com/vango-dev/declarative/pkg/reactive"
	"github.com/vango-dev/declarative/pkg/render"
	"github.com/vango-dev/declarative/pkg/vdom"
)

// ErrSessionClosed is returned by Do after Close.
var ErrSessionClosed = stderrors.New("playground: session closed")

// Frame is one rendering of the dashboard.
type Frame struct {
	Version  uint64 `json:"version"`
	HTML     string `json:"html"`
	Selected string `json:"selected"`
}

// Renderer turns the dashboard view into HTML. *render.Renderer satisfies it.
type Renderer interface {
	RenderToString(node *vdom.VNode) (string, error)
}

// SessionOptions configures a Session.
type SessionOptions struct {
	Logger   *slog.Logger
	Renderer Renderer

	// OnRender is called on the session goroutine after every render.
	OnRender func(Frame)

	// OnError is called on the session goroutine when a render fails. The
	// previous frame stays current.
	OnError func(error)
}

// Session owns one dashboard and the goroutine that drives it. Every signal
// write and every render happens on that goroutine; other goroutines submit
// work through Do.
type Session struct {
	logger   *slog.Logger
	renderer Renderer
	onRender func(Frame)
	onError  func(error)

	cmds    chan func()
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once

	dash  *demo.Dashboard
	frame atomic.Pointer[Frame]
	seq   uint64
}

// NewSession starts the session goroutine and returns once the first frame
// has been rendered.
func NewSession(opts SessionOptions) *Session {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Renderer == nil {
		opts.Renderer = render.New(render.Config{})
	}
	s := &Session{
		logger:   opts.Logger,
		renderer: opts.Renderer,
		onRender: opts.OnRender,
		onError:  opts.OnError,
		cmds:     make(chan func()),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}

	ready := make(chan struct{})
	go s.loop(ready)
	<-ready
	return s
}

func (s *Session) loop(ready chan<- struct{}) {
	defer close(s.stopped)
	defer reactive.Release()

	root := reactive.NewOwner(nil)
	restore := reactive.Enter(root)
	defer restore()

	s.dash = demo.New()
	reactive.CreateEffect(func() reactive.Cleanup {
		s.render()
		return nil
	})
	close(ready)

	for {
		select {
		case fn := <-s.cmds:
			fn()
		case <-s.done:
			root.Dispose()
			s.logger.Debug("session stopped", "frames", s.seq)
			return
		}
	}
}

// render runs inside the root effect, so every region it reaches becomes a
// dependency.
func (s *Session) render() {
	html, err := s.renderer.RenderToString(s.dash.View())
	if err != nil {
		rerr := errors.New("E130").Wrap(err)
		s.logger.Error("render failed", "error", rerr)
		if s.onError != nil {
			s.onError(rerr)
		}
		return
	}

	s.seq++
	f := &Frame{Version: s.seq, HTML: html, Selected: s.dash.Selected()}
	s.frame.Store(f)
	s.logger.Debug("rendered", "version", f.Version, "selected", f.Selected, "bytes", len(html))

	if s.onRender != nil {
		s.onRender(*f)
	}
}

// Frame returns the latest rendering.
func (s *Session) Frame() Frame {
	if f := s.frame.Load(); f != nil {
		return *f
	}
	return Frame{}
}

// Do runs fn on the session goroutine and returns its error. A panic
// carrying an *errors.Error is returned as that error.
func (s *Session) Do(ctx context.Context, fn func(d *demo.Dashboard) error) error {
	res := make(chan error, 1)
	cmd := func() {
		defer func() {
			if r := recover(); r != nil {
				if e, ok := errors.FromPanic(r); ok {
					res <- e
					return
				}
				res <- fmt.Errorf("playground: panic: %v", r)
			}
		}()
		res <- fn(s.dash)
	}

	select {
	case s.cmds <- cmd:
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-res:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the session goroutine and disposes the dashboard.
func (s *Session) Close() {
	s.once.Do(func() { close(s.done) })
	<-s.stopped
}
