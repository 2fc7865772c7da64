// Package overlay owns the visible state of the status panel: what is
// shown, where it is anchored, and when the native surface is told to
// reload or hide.
package overlay

import (
	"fmt"
	"log/slog"

	"github.com/TommyZ-7/ton-vr-overlay/internal/panel"
	"github.com/TommyZ-7/ton-vr-overlay/internal/protocol"
	"github.com/TommyZ-7/ton-vr-overlay/internal/transform"
	"github.com/TommyZ-7/ton-vr-overlay/internal/vr"
)

// Config wires an Overlay's collaborators.
type Config struct {
	Surface vr.Surface
	Tracker vr.Tracker

	// Renderer may be nil when the platform cannot raster text; the
	// overlay then tracks state but skips texture work.
	Renderer *panel.Renderer

	// TexturePath is the single reused raster file the surface reloads
	// from on every content change.
	TexturePath string

	Logger *slog.Logger
}

// Overlay is the process-wide state machine. It is owned by the
// foreground loop; nothing else mutates it.
type Overlay struct {
	surface  vr.Surface
	tracker  vr.Tracker
	renderer *panel.Renderer
	texture  string
	log      *slog.Logger

	placement  protocol.Placement
	context    panel.RoundContext
	visible    bool
	generation uint64
}

func New(cfg Config) *Overlay {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Overlay{
		surface:  cfg.Surface,
		tracker:  cfg.Tracker,
		renderer: cfg.Renderer,
		texture:  cfg.TexturePath,
		log:      log,
	}
}

// Visible reports whether the surface is currently shown.
func (o *Overlay) Visible() bool { return o.visible }

// Placement returns the active anchor mode.
func (o *Overlay) Placement() protocol.Placement { return o.placement }

// Context returns the round context currently bound to the surface.
func (o *Overlay) Context() panel.RoundContext { return o.context }

// Generation advances once per successful texture rebind.
func (o *Overlay) Generation() uint64 { return o.generation }

// Apply dispatches one decoded command. Quit is the caller's job (it
// terminates the process); here it is a no-op. Errors are soft: the
// state the command could not reach is left as it was.
func (o *Overlay) Apply(cmd protocol.Command) error {
	switch c := cmd.(type) {
	case protocol.UpdateTerrors:
		return o.update(c)
	case protocol.SetPosition:
		return o.SetPlacement(c.Placement)
	case protocol.Clear:
		return o.clear()
	case protocol.Quit:
		return nil
	case protocol.Unknown:
		o.log.Warn("unknown command type", "type", c.Type)
		return nil
	default:
		return fmt.Errorf("overlay: unhandled command %T", cmd)
	}
}

// update replaces the batch wholesale. A non-empty batch regenerates
// the texture and shows the surface (show is not re-issued when already
// visible); an empty batch hides it.
func (o *Overlay) update(c protocol.UpdateTerrors) error {
	if len(c.Terrors) == 0 {
		return o.clear()
	}
	next := panel.RoundContext{RoundType: c.RoundType, Terrors: c.Terrors}

	if o.renderer == nil {
		o.log.Warn("rendering unavailable, skipping panel update", "terrors", len(c.Terrors))
		return nil
	}
	img := o.renderer.Render(next)
	if err := panel.WriteTexture(o.texture, img); err != nil {
		return err
	}
	if err := o.surface.SetTexture(o.texture); err != nil {
		return fmt.Errorf("overlay: bind texture: %w", err)
	}
	o.context = next
	o.generation++

	if !o.visible {
		if err := o.surface.Show(); err != nil {
			return fmt.Errorf("overlay: show: %w", err)
		}
		o.visible = true
	}
	o.log.Info("panel updated",
		"terrors", len(next.Terrors),
		"round_type", next.RoundType,
		"generation", o.generation)
	return nil
}

// clear empties the batch and hides the surface. No-op when already
// hidden.
func (o *Overlay) clear() error {
	o.context = panel.RoundContext{}
	if !o.visible {
		return nil
	}
	if err := o.surface.Hide(); err != nil {
		return fmt.Errorf("overlay: hide: %w", err)
	}
	o.visible = false
	o.log.Info("panel hidden")
	return nil
}

// SetPlacement recomputes and rebinds the anchor transform. It applies
// immediately regardless of visibility so the pose is already correct
// the next time the surface shows.
func (o *Overlay) SetPlacement(p protocol.Placement) error {
	b := transform.ForPlacement(p, o.tracker)
	var err error
	if b.Absolute {
		err = o.surface.SetAbsoluteTransform(b.Matrix)
	} else {
		err = o.surface.SetDeviceTransform(b.Device, b.Matrix)
	}
	if err != nil {
		return fmt.Errorf("overlay: bind %s transform: %w", p, err)
	}
	o.placement = p
	o.log.Info("placement bound", "placement", p.String(), "absolute", b.Absolute, "device", b.Device)
	return nil
}
