package overlay

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/TommyZ-7/ton-vr-overlay/internal/mathutil"
	"github.com/TommyZ-7/ton-vr-overlay/internal/panel"
	"github.com/TommyZ-7/ton-vr-overlay/internal/protocol"
	"github.com/TommyZ-7/ton-vr-overlay/internal/vr"
)

// fakeSurface records every native-surface call so tests can assert on
// transition side effects and binding order.
type fakeSurface struct {
	shows, hides    int
	textures        []string
	deviceBinds     []uint32
	absoluteBinds   int
	lastMatrix      mathutil.Mat34
	lastWasAbsolute bool
	failTexture     error
}

func (s *fakeSurface) SetDeviceTransform(device uint32, m mathutil.Mat34) error {
	s.deviceBinds = append(s.deviceBinds, device)
	s.lastMatrix = m
	s.lastWasAbsolute = false
	return nil
}

func (s *fakeSurface) SetAbsoluteTransform(m mathutil.Mat34) error {
	s.absoluteBinds++
	s.lastMatrix = m
	s.lastWasAbsolute = true
	return nil
}

func (s *fakeSurface) SetTexture(path string) error {
	if s.failTexture != nil {
		return s.failTexture
	}
	s.textures = append(s.textures, path)
	return nil
}

func (s *fakeSurface) Show() error  { s.shows++; return nil }
func (s *fakeSurface) Hide() error  { s.hides++; return nil }
func (s *fakeSurface) Close() error { return nil }

type fakeTracker struct {
	rightOK, leftOK bool
}

func (f fakeTracker) ControllerIndex(role vr.HandRole) (uint32, bool) {
	if role == vr.HandLeft {
		return 4, f.leftOK
	}
	return 3, f.rightOK
}

func (fakeTracker) HMD() uint32 { return 0 }

func newTestOverlay(t *testing.T, surface *fakeSurface, tracker vr.Tracker) *Overlay {
	t.Helper()
	renderer, err := panel.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return New(Config{
		Surface:     surface,
		Tracker:     tracker,
		Renderer:    renderer,
		TexturePath: filepath.Join(t.TempDir(), "overlay.png"),
	})
}

func huggyUpdate() protocol.UpdateTerrors {
	return protocol.UpdateTerrors{
		RoundType: "Classic",
		Terrors: []protocol.Terror{{
			Name:      "Huggy",
			Color:     "40,114,255",
			Abilities: []protocol.Ability{{Label: "Speed", Value: "Fast"}},
		}},
	}
}

func TestUpdateShowsOverlay(t *testing.T) {
	surface := &fakeSurface{}
	o := newTestOverlay(t, surface, fakeTracker{})

	if err := o.Apply(huggyUpdate()); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !o.Visible() {
		t.Error("overlay should be visible after a non-empty update")
	}
	if surface.shows != 1 {
		t.Errorf("shows = %d, want 1", surface.shows)
	}
	if len(surface.textures) != 1 {
		t.Errorf("texture binds = %d, want 1", len(surface.textures))
	}
	if got := o.Context(); got.RoundType != "Classic" || len(got.Terrors) != 1 || got.Terrors[0].Name != "Huggy" {
		t.Errorf("context = %+v", got)
	}
}

func TestUpdateIsIdempotentShow(t *testing.T) {
	surface := &fakeSurface{}
	o := newTestOverlay(t, surface, fakeTracker{})

	for i := 0; i < 3; i++ {
		if err := o.Apply(huggyUpdate()); err != nil {
			t.Fatalf("Apply #%d: %v", i, err)
		}
	}
	if surface.shows != 1 {
		t.Errorf("show re-issued while visible: shows = %d", surface.shows)
	}
	if len(surface.textures) != 3 {
		t.Errorf("texture should rebind per update: %d", len(surface.textures))
	}
	if o.Generation() != 3 {
		t.Errorf("generation = %d, want 3", o.Generation())
	}
}

func TestEmptyUpdateHides(t *testing.T) {
	surface := &fakeSurface{}
	o := newTestOverlay(t, surface, fakeTracker{})

	o.Apply(huggyUpdate())
	if err := o.Apply(protocol.UpdateTerrors{}); err != nil {
		t.Fatalf("Apply empty: %v", err)
	}
	if o.Visible() {
		t.Error("overlay should hide on an empty batch")
	}
	if surface.hides != 1 {
		t.Errorf("hides = %d, want 1", surface.hides)
	}
	if len(o.Context().Terrors) != 0 || o.Context().RoundType != "" {
		t.Errorf("context not cleared: %+v", o.Context())
	}
}

func TestClearWhenHiddenIsNoOp(t *testing.T) {
	surface := &fakeSurface{}
	o := newTestOverlay(t, surface, fakeTracker{})

	if err := o.Apply(protocol.Clear{}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if surface.hides != 0 {
		t.Errorf("hide issued while already hidden: %d", surface.hides)
	}
}

func TestClearAfterUpdate(t *testing.T) {
	surface := &fakeSurface{}
	o := newTestOverlay(t, surface, fakeTracker{})

	o.Apply(huggyUpdate())
	if err := o.Apply(protocol.Clear{}); err != nil {
		t.Fatalf("Apply clear: %v", err)
	}
	if o.Visible() {
		t.Error("overlay visible after clear")
	}
	if surface.hides != 1 {
		t.Errorf("hides = %d, want 1", surface.hides)
	}
}

func TestSetPositionRebindsWhileHidden(t *testing.T) {
	surface := &fakeSurface{}
	o := newTestOverlay(t, surface, fakeTracker{rightOK: true, leftOK: true})

	if err := o.Apply(protocol.SetPosition{Placement: protocol.PlacementLeftHand}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if o.Visible() {
		t.Error("set_position must not change visibility")
	}
	if len(surface.deviceBinds) != 1 || surface.deviceBinds[0] != 4 {
		t.Errorf("device binds = %v, want [4]", surface.deviceBinds)
	}
	if o.Placement() != protocol.PlacementLeftHand {
		t.Errorf("placement = %v", o.Placement())
	}
}

func TestSetPositionRoundTripRestoresTransform(t *testing.T) {
	surface := &fakeSurface{}
	o := newTestOverlay(t, surface, fakeTracker{rightOK: true, leftOK: true})

	o.SetPlacement(protocol.PlacementRightHand)
	first := surface.lastMatrix
	o.SetPlacement(protocol.PlacementLeftHand)
	o.SetPlacement(protocol.PlacementRightHand)
	if !surface.lastMatrix.ApproxEqual(first, 1e-12) {
		t.Error("right-hand transform changed across a left/right round trip")
	}
}

func TestSetPositionFallsBackWhenUntracked(t *testing.T) {
	surface := &fakeSurface{}
	o := newTestOverlay(t, surface, fakeTracker{})

	if err := o.SetPlacement(protocol.PlacementRightHand); err != nil {
		t.Fatalf("SetPlacement: %v", err)
	}
	if surface.absoluteBinds != 1 || !surface.lastWasAbsolute {
		t.Errorf("expected one absolute bind, got %d device=%v", surface.absoluteBinds, surface.deviceBinds)
	}
}

func TestTextureBindFailureKeepsState(t *testing.T) {
	surface := &fakeSurface{failTexture: errors.New("surface gone")}
	o := newTestOverlay(t, surface, fakeTracker{})

	if err := o.Apply(huggyUpdate()); err == nil {
		t.Fatal("expected error from texture bind")
	}
	if o.Visible() {
		t.Error("overlay must stay hidden when the bind fails")
	}
	if len(o.Context().Terrors) != 0 {
		t.Error("context must not change when the bind fails")
	}
	if o.Generation() != 0 {
		t.Errorf("generation advanced on failure: %d", o.Generation())
	}
}

func TestNilRendererSkipsTextureWork(t *testing.T) {
	surface := &fakeSurface{}
	o := New(Config{
		Surface:     surface,
		Tracker:     fakeTracker{},
		Renderer:    nil,
		TexturePath: filepath.Join(t.TempDir(), "overlay.png"),
	})

	if err := o.Apply(huggyUpdate()); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(surface.textures) != 0 || surface.shows != 0 {
		t.Error("rendering disabled: no surface work expected")
	}
}

func TestUnknownCommandIsNoOp(t *testing.T) {
	surface := &fakeSurface{}
	o := newTestOverlay(t, surface, fakeTracker{})

	o.Apply(huggyUpdate())
	if err := o.Apply(protocol.Unknown{Type: "dance"}); err != nil {
		t.Fatalf("Apply unknown: %v", err)
	}
	if !o.Visible() || surface.hides != 0 {
		t.Error("unknown command must not disturb state")
	}
}
