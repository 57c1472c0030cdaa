package parallax

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-starfield/internal/core"
	"github.com/vovakirdan/tui-starfield/internal/texture"
)

// Layer is the runtime state of one layer. The texture is generated once at
// attach time and never modified afterwards.
type Layer struct {
	Config        LayerConfig
	Texture       *texture.PixelBuffer
	ScrollOffset  core.Vec2
	ParallaxScale float64
}

// Manager owns the layers of one starfield.
// It is driven from a single simulation loop and is not safe for concurrent use.
type Manager struct {
	settings    Settings
	configured  bool
	perspective Perspective
	layers      []Layer
	attached    bool
	logger      *log.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for attach/detach diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates an unconfigured manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Configure stores the settings. Nothing is generated until Attach.
func (m *Manager) Configure(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	m.settings = s
	m.configured = true
	return nil
}

// Settings returns the configured settings.
func (m *Manager) Settings() Settings {
	return m.settings
}

// Attach derives every layer for a camera at the given altitude and generates
// its texture from rng. Calling Attach while attached does nothing.
func (m *Manager) Attach(altitude float64, rng core.RandomSource) error {
	if m.attached {
		m.logger.Debug("starfield already attached")
		return nil
	}
	if !m.configured {
		return ErrNotConfigured
	}
	if rng == nil {
		return texture.ErrNilRandom
	}

	configs, p, err := DeriveLayers(m.settings, altitude)
	if err != nil {
		return err
	}

	layers := make([]Layer, 0, len(configs))
	for _, cfg := range configs {
		tex, err := texture.Generate(cfg.Spec(), rng)
		if err != nil {
			return fmt.Errorf("parallax: layer %d: %w", cfg.Index, err)
		}
		layers = append(layers, Layer{
			Config:        cfg,
			Texture:       tex,
			ParallaxScale: cfg.ParallaxScale,
		})
		m.logger.Debug("layer generated",
			"index", cfg.Index,
			"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
			"density", cfg.Density,
			"star_size", cfg.StarSize,
		)
	}

	m.perspective = p
	m.layers = layers
	m.attached = true
	m.logger.Info("starfield attached",
		"layers", len(layers),
		"altitude", altitude,
		"divider", p.Divider,
	)
	return nil
}

// Detach releases all layer state. It is safe to call when not attached.
func (m *Manager) Detach() {
	if !m.attached {
		return
	}
	m.layers = nil
	m.perspective = Perspective{}
	m.attached = false
	m.logger.Info("starfield detached")
}

// Attached reports whether layers are currently built.
func (m *Manager) Attached() bool {
	return m.attached
}

// Perspective returns the extents computed by the last Attach.
func (m *Manager) Perspective() Perspective {
	return m.perspective
}

// Tick updates every layer's scroll parameters from the focused position.
// Screen-space Y is world Z inverted. Without a position the previous values
// are kept, freezing the field.
func (m *Manager) Tick(pos core.Vec3, ok bool) {
	if !ok {
		return
	}
	n := len(m.layers)
	for i := range m.layers {
		m.layers[i].ScrollOffset = core.Vec2{X: pos.X, Y: -pos.Z}
		m.layers[i].ParallaxScale = float64(n-i) * m.settings.LayerBaseSpeed
	}
}

// Layers returns a snapshot of the layers for the renderer.
func (m *Manager) Layers() []Layer {
	out := make([]Layer, len(m.layers))
	copy(out, m.layers)
	return out
}
