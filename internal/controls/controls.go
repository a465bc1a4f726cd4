// Package controls holds the viewer's editable state and applies user
// actions to it, independent of the windowing layer.
package controls

import (
	"fmt"

	"github.com/Faultbox/surfacelab/internal/config"
	"github.com/Faultbox/surfacelab/pkg/surface"
)

// Action is a viewer command.
type Action int

const (
	ActionNone Action = iota
	ActionIncreaseA
	ActionDecreaseA
	ActionIncreaseC
	ActionDecreaseC
	ActionIncreasePhi
	ActionDecreasePhi
	ActionIncreaseScaleU
	ActionDecreaseScaleU
	ActionIncreaseScaleV
	ActionDecreaseScaleV
	ActionNextVariant
	ActionToggleOverlay
	ActionResetView
	ActionToggleFullscreen
	ActionResetParams
	ActionSave
	ActionScreenshot
	ActionQuit
)

var actionNames = map[Action]string{
	ActionNone:             "none",
	ActionIncreaseA:        "a+",
	ActionDecreaseA:        "a-",
	ActionIncreaseC:        "c+",
	ActionDecreaseC:        "c-",
	ActionIncreasePhi:      "phi+",
	ActionDecreasePhi:      "phi-",
	ActionIncreaseScaleU:   "su+",
	ActionDecreaseScaleU:   "su-",
	ActionIncreaseScaleV:   "sv+",
	ActionDecreaseScaleV:   "sv-",
	ActionNextVariant:      "next-variant",
	ActionToggleOverlay:    "toggle-overlay",
	ActionResetView:        "reset-view",
	ActionToggleFullscreen: "toggle-fullscreen",
	ActionResetParams:      "reset-params",
	ActionSave:             "save",
	ActionScreenshot:       "screenshot",
	ActionQuit:             "quit",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Effect tells the viewer what to do after an action. EffectRedraw means
// only uniforms changed; EffectRebuild means the mesh must be rebuilt.
type Effect int

const (
	EffectNone Effect = iota
	EffectRedraw
	EffectRebuild
	EffectResetView
	EffectToggleFullscreen
	EffectSave
	EffectScreenshot
	EffectQuit
)

// MinScale keeps texture scaling from collapsing the layout to a point.
const MinScale = 0.05

// State is everything the user can change at runtime.
type State struct {
	Params  surface.Params
	Variant surface.Variant

	Point   [2]float32
	Scale   [2]float32
	Overlay bool

	ParamStep float64
	ScaleStep float32

	initial surface.Params
}

// NewState creates the runtime state from a validated config.
func NewState(cfg *config.Config) (*State, error) {
	v, err := cfg.Variant()
	if err != nil {
		return nil, err
	}
	s := &State{
		Params:    cfg.Params(),
		Variant:   v,
		Point:     cfg.UVOverlay.Point,
		Scale:     cfg.UVOverlay.Scale,
		Overlay:   cfg.UVOverlay.Enabled,
		ParamStep: cfg.Surface.ParamStep,
		ScaleStep: cfg.UVOverlay.ScaleStep,
		initial:   cfg.Params(),
	}
	if s.ParamStep <= 0 {
		s.ParamStep = 0.1
	}
	if s.ScaleStep <= 0 {
		s.ScaleStep = 0.1
	}
	return s, nil
}

// Apply performs an action and reports its effect.
func (s *State) Apply(a Action) Effect {
	switch a {
	case ActionIncreaseA:
		s.Params.A += s.ParamStep
	case ActionDecreaseA:
		s.Params.A -= s.ParamStep
	case ActionIncreaseC:
		s.Params.C += s.ParamStep
	case ActionDecreaseC:
		s.Params.C -= s.ParamStep
	case ActionIncreasePhi:
		s.Params.Phi += s.ParamStep
	case ActionDecreasePhi:
		s.Params.Phi -= s.ParamStep
	case ActionResetParams:
		if s.Params == s.initial {
			return EffectNone
		}
		s.Params = s.initial
	case ActionNextVariant:
		s.Variant = s.Variant.Next()

	case ActionIncreaseScaleU:
		return s.scale(0, s.ScaleStep)
	case ActionDecreaseScaleU:
		return s.scale(0, -s.ScaleStep)
	case ActionIncreaseScaleV:
		return s.scale(1, s.ScaleStep)
	case ActionDecreaseScaleV:
		return s.scale(1, -s.ScaleStep)
	case ActionToggleOverlay:
		s.Overlay = !s.Overlay
		return EffectRedraw

	case ActionResetView:
		return EffectResetView
	case ActionToggleFullscreen:
		return EffectToggleFullscreen
	case ActionSave:
		return EffectSave
	case ActionScreenshot:
		return EffectScreenshot
	case ActionQuit:
		return EffectQuit
	default:
		return EffectNone
	}
	return EffectRebuild
}

func (s *State) scale(axis int, delta float32) Effect {
	next := max(s.Scale[axis]+delta, MinScale)
	if next == s.Scale[axis] {
		return EffectNone
	}
	s.Scale[axis] = next
	return EffectRedraw
}

// SetParams replaces the shape parameters, as the remote control does.
// It reports whether a rebuild is needed.
func (s *State) SetParams(p surface.Params) (Effect, error) {
	if err := p.Validate(); err != nil {
		return EffectNone, err
	}
	if p == s.Params {
		return EffectNone, nil
	}
	s.Params = p
	return EffectRebuild, nil
}

// SetPoint moves the texture scaling pivot.
func (s *State) SetPoint(p [2]float32) Effect {
	if p == s.Point {
		return EffectNone
	}
	s.Point = p
	return EffectRedraw
}

// Store writes the runtime state back into cfg for saving.
func (s *State) Store(cfg *config.Config) {
	cfg.Surface.A = s.Params.A
	cfg.Surface.C = s.Params.C
	cfg.Surface.Phi = s.Params.Phi
	cfg.Surface.Variant = s.Variant.String()
	cfg.UVOverlay.Point = s.Point
	cfg.UVOverlay.Scale = s.Scale
	cfg.UVOverlay.Enabled = s.Overlay
}
