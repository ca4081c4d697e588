// Package debugui provides Dear ImGui inspection panels for divvy worlds.
// Every panel is an ordinary component: it renders its window from Update,
// so a World swept between an ImGui backend's BeginFrame and EndFrame draws
// whatever panels it holds.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/divvy/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

func (i *ImguiItem) Update() {
	if i.Render != nil {
		i.Render()
	}
}

func (i *ImguiItem) Clone(src *ImguiItem) {
	i.Render = src.Render
}

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard
// input. It refreshes itself on every sweep.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

func (s *ImguiInputState) Update() {
	io := imgui.CurrentIO()
	s.WantCaptureMouse = io.WantCaptureMouse()
	s.WantCaptureKeyboard = io.WantCaptureKeyboard()
}

func (s *ImguiInputState) Clone(src *ImguiInputState) {
	*s = *src
}

// Selection is the state shared between panels that inspect the same World:
// the entity picked in the browser and the component type used to filter it.
type Selection struct {
	Entity    ecs.EntityID
	HasEntity bool
	Type      string
}

func (s *Selection) Select(id ecs.EntityID) {
	s.Entity = id
	s.HasEntity = true
}

func (s *Selection) Clear() {
	s.Entity = 0
	s.HasEntity = false
}
