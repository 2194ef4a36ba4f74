package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window settings.
const (
	Title       = "Cosmic Playground"
	Width       = 1280
	Height      = 720
	TargetFPS   = 60
	clearColorR = 12
	clearColorG = 12
	clearColorB = 18
	clearColorA = 255
	windowFlags = rl.FlagWindowResizable | rl.FlagMsaa4xHint
)

// Run opens the window and runs the main loop. Each frame it calls update with the
// frame time in seconds (input and simulation), then clears the screen and calls draw.
// This keeps the graphics layer separate from the playground and the terminal.
// unload, if set, runs after the loop while the GL context still exists.
// ESC toggles the terminal; close via the window button.
func Run(update func(dt float32), draw func(), unload func()) {
	rl.SetConfigFlags(windowFlags)
	rl.InitWindow(Width, Height, Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull) // ESC is used to toggle terminal, not to quit; close via window button
	rl.SetTargetFPS(TargetFPS)
	background := rl.NewColor(clearColorR, clearColorG, clearColorB, clearColorA)

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(background)
		draw()
		rl.EndDrawing()
	}
	if unload != nil {
		unload()
	}
}
