// Package debugui provides immediate-mode debug panels for a running table
// using Dear ImGui. Panels read the table's public accessors and never
// mutate game state.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
)

// InputState tracks Dear ImGui's input capture state for the current frame.
// Use this to decide whether mouse or keyboard input belongs to the game or
// to the debug overlay.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Panel is one debug window rendered each frame between the backend's
// BeginFrame and EndFrame calls.
type Panel interface {
	Render()
}

// UI owns the set of registered panels and the shared input capture state.
type UI struct {
	panels []Panel
	input  InputState
}

func NewUI() *UI {
	return &UI{}
}

// Add registers a panel. Panels render in registration order.
func (u *UI) Add(p Panel) {
	u.panels = append(u.panels, p)
}

// Render updates the input capture state and draws every registered panel.
// Call once per frame inside an active ImGui frame.
func (u *UI) Render() {
	u.input.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	u.input.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for _, p := range u.panels {
		p.Render()
	}
}

// Input returns the capture state sampled by the last Render call.
func (u *UI) Input() InputState {
	return u.input
}
