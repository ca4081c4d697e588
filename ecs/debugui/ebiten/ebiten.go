// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// It is a component, so a World can own the backend alongside its panels.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

func (b *ImguiBackend) Update() {}

func (b *ImguiBackend) Clone(src *ImguiBackend) {
	b.EbitenBackend = src.EbitenBackend
}

// WithFrame runs fn between BeginFrame and EndFrame. Panels render while their
// World is swept, so fn is usually a Scheduler tick.
func (b *ImguiBackend) WithFrame(fn func() error) error {
	b.BeginFrame()
	defer b.EndFrame()
	return fn()
}
