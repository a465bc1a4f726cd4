package controls

import (
	"errors"
	"math"
	"testing"

	"github.com/Faultbox/surfacelab/internal/config"
	"github.com/Faultbox/surfacelab/pkg/surface"
)

func newState(t *testing.T) *State {
	t.Helper()
	s, err := NewState(config.Default())
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	return s
}

func nearly(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func nearly32(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-6
}

func TestNewState(t *testing.T) {
	s := newState(t)
	if s.Params != (surface.Params{A: 1, C: 0.5, Phi: 0.3}) {
		t.Errorf("unexpected params %v", s.Params)
	}
	if s.Variant != surface.VariantTextured {
		t.Errorf("expected textured, got %v", s.Variant)
	}
	if s.Point != [2]float32{0.5, 0.5} || s.Scale != [2]float32{1, 1} {
		t.Errorf("unexpected overlay state %v %v", s.Point, s.Scale)
	}

	cfg := config.Default()
	cfg.Surface.Variant = "nope"
	if _, err := NewState(cfg); err == nil {
		t.Error("expected error for unknown variant")
	}

	cfg = config.Default()
	cfg.Surface.ParamStep = 0
	cfg.UVOverlay.ScaleStep = -1
	s, err := NewState(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if s.ParamStep != 0.1 || s.ScaleStep != 0.1 {
		t.Errorf("expected default steps, got %v %v", s.ParamStep, s.ScaleStep)
	}
}

func TestApplyParams(t *testing.T) {
	tests := []struct {
		action Action
		check  func(surface.Params) bool
	}{
		{ActionIncreaseA, func(p surface.Params) bool { return nearly(p.A, 1.1) }},
		{ActionDecreaseA, func(p surface.Params) bool { return nearly(p.A, 0.9) }},
		{ActionIncreaseC, func(p surface.Params) bool { return nearly(p.C, 0.6) }},
		{ActionDecreaseC, func(p surface.Params) bool { return nearly(p.C, 0.4) }},
		{ActionIncreasePhi, func(p surface.Params) bool { return nearly(p.Phi, 0.4) }},
		{ActionDecreasePhi, func(p surface.Params) bool { return nearly(p.Phi, 0.2) }},
	}
	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			s := newState(t)
			if eff := s.Apply(tt.action); eff != EffectRebuild {
				t.Errorf("expected rebuild, got %v", eff)
			}
			if !tt.check(s.Params) {
				t.Errorf("unexpected params %v", s.Params)
			}
		})
	}
}

func TestApplyResetParams(t *testing.T) {
	s := newState(t)
	if eff := s.Apply(ActionResetParams); eff != EffectNone {
		t.Errorf("reset without change should be a no-op, got %v", eff)
	}
	s.Apply(ActionIncreaseA)
	s.Apply(ActionDecreasePhi)
	if eff := s.Apply(ActionResetParams); eff != EffectRebuild {
		t.Errorf("expected rebuild, got %v", eff)
	}
	if s.Params != (surface.Params{A: 1, C: 0.5, Phi: 0.3}) {
		t.Errorf("params not reset: %v", s.Params)
	}
}

func TestApplyVariantCycle(t *testing.T) {
	s := newState(t)
	want := []surface.Variant{surface.VariantWireframe, surface.VariantLit, surface.VariantTextured}
	for _, v := range want {
		if eff := s.Apply(ActionNextVariant); eff != EffectRebuild {
			t.Errorf("expected rebuild, got %v", eff)
		}
		if s.Variant != v {
			t.Errorf("expected %v, got %v", v, s.Variant)
		}
	}
}

func TestApplyScale(t *testing.T) {
	s := newState(t)

	if eff := s.Apply(ActionIncreaseScaleU); eff != EffectRedraw {
		t.Errorf("expected redraw, got %v", eff)
	}
	if !nearly32(s.Scale[0], 1.1) || s.Scale[1] != 1 {
		t.Errorf("unexpected scale %v", s.Scale)
	}
	s.Apply(ActionDecreaseScaleV)
	if !nearly32(s.Scale[1], 0.9) {
		t.Errorf("unexpected scale %v", s.Scale)
	}

	for i := 0; i < 50; i++ {
		s.Apply(ActionDecreaseScaleV)
	}
	if s.Scale[1] != MinScale {
		t.Errorf("scale should clamp at %v, got %v", MinScale, s.Scale[1])
	}
	if eff := s.Apply(ActionDecreaseScaleV); eff != EffectNone {
		t.Errorf("clamped scale should not redraw, got %v", eff)
	}
	if s.Params != (surface.Params{A: 1, C: 0.5, Phi: 0.3}) {
		t.Error("scaling must not touch shape params")
	}
}

func TestApplyOtherEffects(t *testing.T) {
	tests := []struct {
		action Action
		want   Effect
	}{
		{ActionToggleOverlay, EffectRedraw},
		{ActionResetView, EffectResetView},
		{ActionToggleFullscreen, EffectToggleFullscreen},
		{ActionSave, EffectSave},
		{ActionScreenshot, EffectScreenshot},
		{ActionQuit, EffectQuit},
		{ActionNone, EffectNone},
		{Action(99), EffectNone},
	}
	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			s := newState(t)
			if got := s.Apply(tt.action); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	s := newState(t)
	s.Apply(ActionToggleOverlay)
	if s.Overlay {
		t.Error("expected overlay off after toggle")
	}
}

func TestSetParams(t *testing.T) {
	s := newState(t)

	eff, err := s.SetParams(surface.Params{A: 2, C: 0, Phi: -1})
	if err != nil || eff != EffectRebuild {
		t.Fatalf("got %v, %v", eff, err)
	}
	eff, err = s.SetParams(surface.Params{A: 2, C: 0, Phi: -1})
	if err != nil || eff != EffectNone {
		t.Errorf("same params: got %v, %v", eff, err)
	}

	_, err = s.SetParams(surface.Params{A: math.Inf(-1)})
	if !errors.Is(err, surface.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
	if s.Params.A != 2 {
		t.Error("invalid params must not be applied")
	}
}

func TestSetPointAndStore(t *testing.T) {
	s := newState(t)
	if eff := s.SetPoint([2]float32{0.5, 0.5}); eff != EffectNone {
		t.Errorf("same point: got %v", eff)
	}
	if eff := s.SetPoint([2]float32{0.25, 0.75}); eff != EffectRedraw {
		t.Errorf("expected redraw, got %v", eff)
	}

	s.Apply(ActionNextVariant)
	s.Apply(ActionIncreaseC)

	cfg := config.Default()
	s.Store(cfg)
	if cfg.Surface.Variant != "wireframe" {
		t.Errorf("expected wireframe, got %s", cfg.Surface.Variant)
	}
	if !nearly(cfg.Surface.C, 0.6) {
		t.Errorf("expected c 0.6, got %v", cfg.Surface.C)
	}
	if cfg.UVOverlay.Point != [2]float32{0.25, 0.75} {
		t.Errorf("unexpected point %v", cfg.UVOverlay.Point)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("stored config should stay valid: %v", err)
	}
}

func TestOverlayPlacement(t *testing.T) {
	tests := []struct {
		name           string
		w, h, size, mg int32
		want           OverlayRect
	}{
		{"fits", 1024, 768, 256, 10, OverlayRect{X: 758, Y: 10, Size: 256}},
		{"shrinks to window", 200, 120, 256, 10, OverlayRect{X: 90, Y: 10, Size: 100}},
		{"no room", 10, 10, 256, 10, OverlayRect{X: 0, Y: 10, Size: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverlayPlacement(tt.w, tt.h, tt.size, tt.mg); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOverlayTexturePoint(t *testing.T) {
	r := OverlayRect{X: 100, Y: 20, Size: 100}

	tests := []struct {
		name   string
		x, y   int32
		want   [2]float32
		inside bool
	}{
		{"top-left pixel", 100, 20, [2]float32{0.005, 0.995}, true},
		{"bottom-right pixel", 199, 119, [2]float32{0.995, 0.005}, true},
		{"center", 150, 70, [2]float32{0.505, 0.495}, true},
		{"left of overlay", 99, 50, [2]float32{}, false},
		{"below overlay", 150, 120, [2]float32{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.TexturePoint(tt.x, tt.y)
			if ok != tt.inside {
				t.Fatalf("inside = %v, want %v", ok, tt.inside)
			}
			for i := range got {
				if !nearly32(got[i], tt.want[i]) {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}

	if (OverlayRect{}).Contains(0, 0) {
		t.Error("empty overlay should contain nothing")
	}
}
