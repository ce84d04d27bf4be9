package assets

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/gamefeel/ecs/component"
)

// PlayerFrameSize is the cell size of the generated player sheet.
const PlayerFrameSize = 32

// rowColors tints each strip so the active animation is readable without
// art assets.
var rowColors = [component.SheetRows]color.RGBA{
	component.SheetRowIdle:   {R: 0x40, G: 0x60, B: 0xff, A: 0xff},
	component.SheetRowSprint: {R: 0x40, G: 0xc0, B: 0x60, A: 0xff},
	component.SheetRowJump:   {R: 0xff, G: 0xa0, B: 0x30, A: 0xff},
	component.SheetRowLand:   {R: 0xe0, G: 0x40, B: 0x60, A: 0xff},
}

var (
	eyeColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	barColor = color.RGBA{R: 0x10, G: 0x10, B: 0x20, A: 0xff}
)

// PlayerSheetImage draws the player sheet: SheetColumns x SheetRows cells
// of frameW x frameH. Each cell is a tinted body with an eye on the right
// (so horizontal flips show) and a bar whose height grows with the column.
func PlayerSheetImage(frameW, frameH int) *image.RGBA {
	if frameW <= 0 {
		frameW = PlayerFrameSize
	}
	if frameH <= 0 {
		frameH = PlayerFrameSize
	}
	img := image.NewRGBA(image.Rect(0, 0, frameW*component.SheetColumns, frameH*component.SheetRows))
	for row := 0; row < component.SheetRows; row++ {
		for col := 0; col < component.SheetColumns; col++ {
			drawCell(img, image.Rect(col*frameW, row*frameH, (col+1)*frameW, (row+1)*frameH), rowColors[row], col)
		}
	}
	return img
}

func drawCell(img *image.RGBA, cell image.Rectangle, body color.RGBA, col int) {
	w, h := cell.Dx(), cell.Dy()
	inset := w / 8
	fill(img, image.Rect(cell.Min.X+inset, cell.Min.Y+inset, cell.Max.X-inset, cell.Max.Y), body)

	eye := max(w/8, 1)
	ex := cell.Max.X - inset - 2*eye
	ey := cell.Min.Y + h/4
	fill(img, image.Rect(ex, ey, ex+eye, ey+eye), eyeColor)

	barH := (col + 1) * (h / 2) / component.SheetColumns
	bx := cell.Min.X + inset + eye
	fill(img, image.Rect(bx, cell.Max.Y-barH, bx+eye, cell.Max.Y), barColor)
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

var (
	imagesMu sync.Mutex
	images   = map[string]*ebiten.Image{}
)

// generators lists every image the sandbox can draw by name.
var generators = map[string]func() image.Image{
	"player_sheet": func() image.Image { return PlayerSheetImage(PlayerFrameSize, PlayerFrameSize) },
}

// LoadImage returns the named generated image, creating it on first use.
func LoadImage(name string) (*ebiten.Image, error) {
	imagesMu.Lock()
	defer imagesMu.Unlock()

	if img, ok := images[name]; ok {
		return img, nil
	}
	gen, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("assets: unknown image %q", name)
	}
	img := ebiten.NewImageFromImage(gen())
	images[name] = img
	return img, nil
}

// Known reports whether name is a loadable image.
func Known(name string) bool {
	_, ok := generators[name]
	return ok
}
