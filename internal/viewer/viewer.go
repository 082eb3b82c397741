// Package viewer shows a rendered chart in a desktop window and blocks until
// the window is closed.
package viewer

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var ErrNoDisplay = errors.New("viewer: no display available")

const (
	maxWindowWidth  = 1280
	maxWindowHeight = 800
)

// Show opens path in a window titled title. It returns when the user closes
// the window or presses Esc or Q.
func Show(path, title string) error {
	if !displayAvailable() {
		return ErrNoDisplay
	}

	img, err := load(path)
	if err != nil {
		return err
	}

	w, h := fit(img.Bounds().Dx(), img.Bounds().Dy())
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(w), int32(h), title)
	if !rl.IsWindowReady() {
		return fmt.Errorf("viewer: %w", ErrNoDisplay)
	}
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	rlImg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rlImg)
	rl.UnloadImage(rlImg)
	defer rl.UnloadTexture(tex)

	src := rl.Rectangle{Width: float32(tex.Width), Height: float32(tex.Height)}
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			break
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.White)
		rl.DrawTexturePro(tex, src, letterbox(tex.Width, tex.Height), rl.Vector2{}, 0, rl.White)
		rl.EndDrawing()
	}
	return nil
}

// letterbox fits a texture into the current window keeping its aspect ratio.
func letterbox(tw, th int32) rl.Rectangle {
	sw, sh := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	scale := sw / float32(tw)
	if s := sh / float32(th); s < scale {
		scale = s
	}
	dw, dh := float32(tw)*scale, float32(th)*scale
	return rl.Rectangle{X: (sw - dw) / 2, Y: (sh - dh) / 2, Width: dw, Height: dh}
}

func load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("viewer: decode %s: %w", path, err)
	}
	return img, nil
}

func displayAvailable() bool {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
	}
	return true
}

// fit scales (w, h) down to the window limits keeping the aspect ratio.
func fit(w, h int) (int, int) {
	scale := 1.0
	if sx := float64(maxWindowWidth) / float64(w); sx < scale {
		scale = sx
	}
	if sy := float64(maxWindowHeight) / float64(h); sy < scale {
		scale = sy
	}
	return int(float64(w) * scale), int(float64(h) * scale)
}
