package globe

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"
)

// State is the lifecycle position of a RenderLoop.
type State int

const (
	Uninitialized State = iota
	Attached
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Attached:
		return "attached"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// frameState is the only memory that changes between frames.
type frameState struct {
	theta         float64
	width, height int
	frames        uint64
	edgesDrawn    int
	degenerate    bool
}

// Stats is a snapshot of the loop for status displays.
type Stats struct {
	State      State
	Theta      float64
	Frames     uint64
	Points     int
	Edges      int
	EdgesDrawn int
	Width      int
	Height     int
}

// RenderLoop owns the globe: its point cloud, cached adjacency, rotation and
// viewport. All methods must be called from the host's single render
// goroutine, the same one that fires scheduled frames and resize callbacks.
type RenderLoop struct {
	cfg     Config
	palette Palette
	host    Host
	log     zerolog.Logger

	status  State
	surface Surface
	cloud   PointCloud
	mesh    *Mesh
	stars   StarField
	frame   frameState

	// per-frame scratch, reused to avoid allocation
	rotated PointCloud
	proj    []Projected

	pendingFrame Subscription
	resizeSub    Subscription
}

// NewRenderLoop validates cfg and returns an Uninitialized loop bound to host.
func NewRenderLoop(cfg Config, host Host, logger zerolog.Logger) (*RenderLoop, error) {
	if host == nil {
		return nil, errors.New("render loop needs a host")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}

	return &RenderLoop{
		cfg:     cfg,
		palette: palette,
		host:    host,
		log:     logger.With().Str("component", "globe").Logger(),
		stars: StarField{
			Count:  cfg.Stars,
			Scale:  cfg.StarScale,
			Alpha:  cfg.StarAlpha,
			SpeedX: cfg.StarSpeedX,
			SpeedY: cfg.StarSpeedY,
			Color:  palette.Star,
		},
	}, nil
}

// Attach binds the loop to a drawing surface and builds the globe geometry.
// A missing or unusable surface leaves the loop Uninitialized.
func (l *RenderLoop) Attach(s Surface) {
	if l.status != Uninitialized {
		l.log.Debug().Stringer("state", l.status).Msg("attach ignored")
		return
	}
	if !usable(s) {
		l.log.Debug().Msg("attach skipped: invalid surface")
		return
	}

	l.surface = s
	l.cloud = SamplePoints(l.cfg.Points, l.cfg.Radius)
	l.mesh = NewMesh(BuildAdjacency(l.cloud, l.cfg.Proximity), l.palette.Edge, l.cfg.EdgeAlpha, l.cfg.EdgeWidth)
	l.rotated = make(PointCloud, len(l.cloud))
	l.proj = make([]Projected, len(l.cloud))

	w, h := l.host.ViewportSize()
	l.frame = frameState{}
	l.setViewport(w, h)
	l.resizeSub = l.host.SubscribeResize(l.OnResize)
	l.status = Attached

	l.log.Debug().
		Int("points", len(l.cloud)).
		Int("edges", len(l.mesh.Edges())).
		Int("width", w).
		Int("height", h).
		Msg("globe attached")
}

// Start begins the per-frame sequence. Only valid from Attached.
func (l *RenderLoop) Start() {
	if l.status != Attached {
		l.log.Debug().Stringer("state", l.status).Msg("start ignored")
		return
	}
	l.status = Running
	l.schedule()
	l.log.Debug().Msg("globe running")
}

// OnResize records a new viewport size. Rotation and geometry are untouched.
func (l *RenderLoop) OnResize(width, height int) {
	if l.status != Attached && l.status != Running {
		return
	}
	l.setViewport(width, height)
}

// Stop cancels the pending frame and all subscriptions. It is terminal and
// safe to call in any state.
func (l *RenderLoop) Stop() {
	switch l.status {
	case Uninitialized, Stopped:
		return
	}
	l.status = Stopped
	if l.pendingFrame != nil {
		l.pendingFrame.Dispose()
		l.pendingFrame = nil
	}
	if l.resizeSub != nil {
		l.resizeSub.Dispose()
		l.resizeSub = nil
	}
	l.log.Debug().Uint64("frames", l.frame.frames).Float64("theta", l.frame.theta).Msg("globe stopped")
}

func (l *RenderLoop) setViewport(width, height int) {
	l.frame.width, l.frame.height = max(width, 0), max(height, 0)
}

func (l *RenderLoop) schedule() {
	l.pendingFrame = l.host.RequestFrame(l.onFrame)
}

func (l *RenderLoop) onFrame() {
	l.pendingFrame = nil
	// A callback queued before Stop can still fire on some hosts.
	if l.status != Running {
		return
	}
	l.frame = l.step(l.frame)
	if !l.frame.degenerate {
		l.present()
	}
	l.schedule()
}

// present flushes a drawn frame after its state is recorded, so overlays
// read the stats of the frame they sit on.
func (l *RenderLoop) present() {
	if p, ok := l.surface.(FramePresenter); ok {
		p.Present()
	}
}

// step renders one frame from st and returns the state for the next one.
func (l *RenderLoop) step(st frameState) frameState {
	degenerate := st.width == 0 || st.height == 0
	if degenerate != st.degenerate {
		l.log.Debug().Int("width", st.width).Int("height", st.height).Bool("skipping", degenerate).Msg("viewport changed")
		st.degenerate = degenerate
	}
	if !degenerate {
		st.edgesDrawn = l.draw(st)
	} else {
		st.edgesDrawn = 0
	}

	st.theta += l.cfg.RotationStep
	st.frames++
	return st
}

func (l *RenderLoop) draw(st frameState) int {
	s := l.surface
	cx := float64(st.width)/2 + l.cfg.OffsetX
	cy := float64(st.height)/2 + l.cfg.OffsetY

	s.SetGlobalAlpha(1)
	s.Clear(l.palette.Background)

	l.stars.Draw(s, st.theta, st.width, st.height)

	l.rotated = RotateCloud(l.rotated, l.cloud, st.theta)
	l.proj = ProjectCloud(l.proj, l.rotated, l.cfg.Focal, l.cfg.Radius)
	l.drawNodes(s, cx, cy)
	edges := l.mesh.Draw(s, l.proj, cx, cy)

	s.SetGlobalAlpha(1)
	return edges
}

func (l *RenderLoop) drawNodes(s Surface, cx, cy float64) {
	for _, p := range l.proj {
		if !p.Visible() {
			continue
		}
		s.SetGlobalAlpha(p.Opacity * l.cfg.NodeAlpha)
		s.FillCircle(cx+p.X, cy+p.Y, l.cfg.NodeRadius*p.Scale, l.palette.Node)
	}
}

// State returns the lifecycle state.
func (l *RenderLoop) State() State { return l.status }

// Theta returns the current rotation angle in radians.
func (l *RenderLoop) Theta() float64 { return l.frame.theta }

// Viewport returns the last known viewport size.
func (l *RenderLoop) Viewport() (width, height int) { return l.frame.width, l.frame.height }

// Cloud returns the sampled points. Callers must not modify it.
func (l *RenderLoop) Cloud() PointCloud { return l.cloud }

// Edges returns the cached adjacency, nil before Attach.
func (l *RenderLoop) Edges() []Edge {
	if l.mesh == nil {
		return nil
	}
	return l.mesh.Edges()
}

// Background returns the clear colour, for hosts that paint outside the surface.
func (l *RenderLoop) Background() colorful.Color { return l.palette.Background }

// Stats returns a snapshot for status displays.
func (l *RenderLoop) Stats() Stats {
	return Stats{
		State:      l.status,
		Theta:      l.frame.theta,
		Frames:     l.frame.frames,
		Points:     len(l.cloud),
		Edges:      len(l.Edges()),
		EdgesDrawn: l.frame.edgesDrawn,
		Width:      l.frame.width,
		Height:     l.frame.height,
	}
}
