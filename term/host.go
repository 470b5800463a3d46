package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"hologlobe/v2/globe"
)

// Host serves globe.Host on top of a tcell screen. Frame callbacks and resize
// notifications are only ever delivered from the goroutine running Run.
type Host struct {
	screen  tcell.Screen
	surface *Surface
	frames  globe.FrameQueue
	resize  globe.ResizeHub
}

// NewHost wraps an initialised screen.
func NewHost(screen tcell.Screen) *Host {
	return &Host{screen: screen, surface: NewSurface(screen)}
}

// Surface returns the drawing surface bound to the screen.
func (h *Host) Surface() *Surface { return h.surface }

func (h *Host) RequestFrame(fn func()) globe.Subscription { return h.frames.RequestFrame(fn) }

func (h *Host) ViewportSize() (int, int) { return h.surface.Size() }

func (h *Host) SubscribeResize(fn func(width, height int)) globe.Subscription {
	return h.resize.Subscribe(fn)
}

// Options tune the terminal presentation.
type Options struct {
	HUD   bool
	Style int // glyph ramp; negative for half blocks
}

// Run draws the globe until ctx is done or the user quits; both return nil.
// The screen must already be initialised; the caller owns Fini.
func Run(ctx context.Context, screen tcell.Screen, cfg globe.Config, logger zerolog.Logger, opts Options) error {
	h := NewHost(screen)
	h.surface.SetStyle(opts.Style)

	loop, err := globe.NewRenderLoop(cfg, h, logger)
	if err != nil {
		return fmt.Errorf("render loop: %w", err)
	}
	loop.Attach(h.surface)
	if loop.State() != globe.Attached {
		return fmt.Errorf("attach failed: %s", loop.State())
	}
	defer loop.Stop()

	hud := opts.HUD
	h.surface.SetOverlay(func(s tcell.Screen) {
		if hud {
			drawStatus(s, loop.Stats(), h.surface.Style())
		}
	})

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)

	// Input handler
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	loop.Start()

	// Render loop
	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug().Err(ctx.Err()).Msg("terminal host cancelled")
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyEscape, tcell.KeyCtrlC:
					return nil
				case tcell.KeyRune:
					switch ev.Rune() {
					case 'q', 'Q':
						return nil
					case 'h', 'H':
						hud = !hud
					case 's', 'S':
						h.surface.SetStyle(nextStyle(h.surface.Style()))
					}
				}
			case *tcell.EventResize:
				screen.Sync()
				h.surface.Resize(screen.Size())
				w, hh := h.surface.Size()
				logger.Debug().Int("width", w).Int("height", hh).Msg("terminal resized")
				h.resize.Notify(w, hh)
			}
		case <-ticker.C:
			h.frames.Fire()
		}
	}
}

// nextStyle cycles half blocks followed by every glyph ramp.
func nextStyle(style int) int {
	style++
	if style >= StyleCount {
		return -1
	}
	return style
}

func drawStatus(s tcell.Screen, st globe.Stats, style int) {
	_, h := s.Size()
	info := fmt.Sprintf("hologlobe | points %d | edges %d/%d | theta %.3f | frame %d | style %d | q:quit h:hud s:style",
		st.Points, st.EdgesDrawn, st.Edges, st.Theta, st.Frames, style+1)
	drawText(s, 1, h-1, tcell.StyleDefault.Foreground(tcell.ColorDarkGray), info)
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for i, r := range []rune(str) {
		s.SetContent(x+i, y, r, nil, style)
	}
}
