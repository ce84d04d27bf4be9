package assets

import (
	"image/color"
	"testing"

	"github.com/milk9111/gamefeel/ecs/component"
)

func TestPlayerSheetImage(t *testing.T) {
	tests := []struct {
		name         string
		frameW       int
		frameH       int
		wantW, wantH int
	}{
		{"default_size", 0, 0, PlayerFrameSize * component.SheetColumns, PlayerFrameSize * component.SheetRows},
		{"custom_size", 16, 24, 16 * component.SheetColumns, 24 * component.SheetRows},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			img := PlayerSheetImage(tc.frameW, tc.frameH)
			b := img.Bounds()
			if b.Dx() != tc.wantW || b.Dy() != tc.wantH {
				t.Fatalf("expected %dx%d, got %dx%d", tc.wantW, tc.wantH, b.Dx(), b.Dy())
			}
		})
	}
}

func TestPlayerSheetRowsAreTinted(t *testing.T) {
	img := PlayerSheetImage(32, 32)
	for row := 0; row < component.SheetRows; row++ {
		// Centre-left of the first cell in the row sits inside the body and
		// clear of the eye and the bar.
		got := img.RGBAAt(10, row*32+20)
		if got != rowColors[row] {
			t.Fatalf("row %d: expected %v, got %v", row, rowColors[row], got)
		}
	}
	if corner := img.RGBAAt(0, 0); corner != (color.RGBA{}) {
		t.Fatalf("expected transparent inset, got %v", corner)
	}
}

func TestKnown(t *testing.T) {
	if !Known("player_sheet") {
		t.Fatalf("player_sheet should be known")
	}
	if Known("missing") {
		t.Fatalf("missing should not be known")
	}
}
