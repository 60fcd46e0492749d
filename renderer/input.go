package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// Input is the user input seen this frame.
type Input struct {
	Pointer bool // left mouse button pressed
	Key     bool // space or enter pressed
	HUD     bool // debug overlay toggle

	Resized       bool
	Width, Height int
}

// PollInput reads input and window events for the current frame.
func PollInput() Input {
	in := Input{
		Pointer: rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		Key:     rl.IsKeyPressed(rl.KeySpace) || rl.IsKeyPressed(rl.KeyEnter),
		HUD:     rl.IsKeyPressed(rl.KeyF3),
	}
	if rl.IsWindowResized() {
		in.Resized = true
		in.Width = rl.GetScreenWidth()
		in.Height = rl.GetScreenHeight()
	}
	return in
}
