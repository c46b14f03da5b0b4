//go:build !headless
// +build !headless

package display

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"nespit/internal/input"
)

// EbitenBackend is the default windowed host: an ebiten.Game that steps
// the machine one frame per Update and blits its (currently blank)
// picture buffer to the screen.
type EbitenBackend struct {
	Scale int

	game *ebitenGame
}

// Run opens a window and blocks until it is closed.
func (e *EbitenBackend) Run(m Machine) error {
	scale := e.Scale
	if scale <= 0 {
		scale = 2
	}
	e.game = &ebitenGame{machine: m, image: ebiten.NewImage(256, 240)}

	ebiten.SetWindowSize(256*scale, 240*scale)
	ebiten.SetWindowTitle("nespit")
	if err := ebiten.RunGame(e.game); err != nil {
		return fmt.Errorf("display: ebiten backend exited: %w", err)
	}
	return nil
}

type ebitenGame struct {
	machine Machine
	image   *ebiten.Image
}

var keyMap = map[ebiten.Key]input.Button{
	ebiten.KeyZ:         input.ButtonA,
	ebiten.KeyX:         input.ButtonB,
	ebiten.KeyShift:     input.ButtonSelect,
	ebiten.KeyEnter:     input.ButtonStart,
	ebiten.KeyArrowUp:   input.ButtonUp,
	ebiten.KeyArrowDown: input.ButtonDown,
	ebiten.KeyArrowLeft: input.ButtonLeft,
	ebiten.KeyArrowRight: input.ButtonRight,
}

func (g *ebitenGame) Update() error {
	for key, button := range keyMap {
		g.machine.SetControllerButton(1, button, ebiten.IsKeyPressed(key))
	}
	g.machine.RunFrame()
	return nil
}

func (g *ebitenGame) Draw(screen *ebiten.Image) {
	buf := g.machine.FrameBuffer()
	img := image.NewRGBA(image.Rect(0, 0, 256, 240))
	for i, pixel := range buf {
		c := color.RGBA{
			R: uint8(pixel >> 16),
			G: uint8(pixel >> 8),
			B: uint8(pixel),
			A: 0xFF,
		}
		img.Set(i%256, i/256, c)
	}
	g.image.WritePixels(img.Pix)
	screen.DrawImage(g.image, nil)
}

func (g *ebitenGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 256, 240
}
