//go:build cgo

package window

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"hologlobe/v2/globe"
)

// Run opens a desktop window and draws the globe until the window closes,
// the user presses Q or Escape, or ctx is done. It blocks.
func Run(ctx context.Context, cfg globe.Config, logger zerolog.Logger, width, height int) error {
	g := &game{ctx: ctx, log: logger, width: width, height: height, surface: newSurface(width, height)}

	loop, err := globe.NewRenderLoop(cfg, g, logger)
	if err != nil {
		return fmt.Errorf("render loop: %w", err)
	}
	g.loop = loop
	loop.Attach(g.surface)
	if loop.State() != globe.Attached {
		return fmt.Errorf("attach failed: %s", loop.State())
	}
	defer loop.Stop()
	loop.Start()

	ebiten.SetWindowTitle("hologlobe")
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// game adapts ebiten's Layout/Update/Draw cycle to globe.Host. ebiten calls
// the three serially, which gives the loop its single render thread.
type game struct {
	ctx     context.Context
	log     zerolog.Logger
	loop    *globe.RenderLoop
	surface *Surface
	frames  globe.FrameQueue
	resize  globe.ResizeHub

	width, height int
}

func (g *game) RequestFrame(fn func()) globe.Subscription { return g.frames.RequestFrame(fn) }

func (g *game) ViewportSize() (int, int) { return g.width, g.height }

func (g *game) SubscribeResize(fn func(width, height int)) globe.Subscription {
	return g.resize.Subscribe(fn)
}

func (g *game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.frames.Fire()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.surface.img == nil {
		return
	}
	screen.DrawImage(g.surface.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.surface.resize(outsideWidth, outsideHeight)
		g.log.Debug().Int("width", outsideWidth).Int("height", outsideHeight).Msg("window resized")
		g.resize.Notify(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
