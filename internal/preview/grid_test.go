package preview

import (
	"image"
	"image/color"
	"testing"
)

func TestDrawGrid_GridLines(t *testing.T) {
	buf := uniformBuffer(100, 100, 0, 0, 0)
	g, err := Compute(100, 100, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	img := Render(buf, g, nil)

	DrawGrid(img, g, Grid{Spacing: 25, Color: color.NRGBA{255, 0, 0, 255}})

	if got := img.NRGBAAt(25, 50); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("grid line color at (25,50): got %v, want red", got)
	}
	if got := img.NRGBAAt(50, 75); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("grid line color at (50,75): got %v, want red", got)
	}
	if got := img.NRGBAAt(15, 15); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("non-grid position at (15,15): got %v, want black", got)
	}
}

func TestDrawGrid_SourceCoordinates(t *testing.T) {
	// 200x100 into 100x100: scale 0.5, content rows 25..75
	buf := uniformBuffer(200, 100, 0, 0, 0)
	g, err := Compute(200, 100, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	img := Render(buf, g, nil)
	DrawGrid(img, g, Grid{Spacing: 50, Color: color.NRGBA{0, 255, 0, 255}})

	// source x=50 lands at viewport x=25
	if got := img.NRGBAAt(25, 40); got.G != 255 {
		t.Errorf("vertical line at source x=50: got %v", got)
	}
	// lines stay inside the content area
	if got := img.NRGBAAt(25, 10); got != BackgroundColor {
		t.Errorf("grid drawn in margin: got %v", got)
	}
}

func TestDrawGrid_DefaultColorBlends(t *testing.T) {
	buf := uniformBuffer(40, 40, 0, 0, 255)
	g, _ := Compute(40, 40, 40, 40)
	img := Render(buf, g, nil)

	DrawGrid(img, g, Grid{Spacing: 10})

	got := img.NRGBAAt(10, 5)
	if got.R != 128 || got.B != 127 || got.A != 255 {
		t.Errorf("blended grid pixel: got %v, want (128,0,127,255)", got)
	}
}

func TestDrawGrid_Degenerate(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	// must not panic or loop forever
	DrawGrid(img, Geometry{}, Grid{Spacing: 5})
	g, _ := Compute(1000, 1000, 10, 10)
	DrawGrid(img, g, Grid{Spacing: 1, Labels: true})
	DrawGrid(img, g, Grid{Spacing: 0})
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		hex     string
		wantR   uint8
		wantG   uint8
		wantB   uint8
		wantA   uint8
		wantErr bool
	}{
		{"#FF0000", 255, 0, 0, 255, false},
		{"#00FF00", 0, 255, 0, 255, false},
		{"#0000FF", 0, 0, 255, 255, false},
		{"FF0000", 255, 0, 0, 255, false},    // without #
		{"#FF000080", 255, 0, 0, 128, false}, // with alpha
		{"", 0, 0, 0, 0, true},               // empty
		{"#FFF", 0, 0, 0, 0, true},           // invalid length
		{"#GGGGGG", 0, 0, 0, 0, true},        // invalid hex
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			c, err := ParseHexColor(tt.hex)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if c.R != tt.wantR || c.G != tt.wantG || c.B != tt.wantB || c.A != tt.wantA {
				t.Errorf("got (%d,%d,%d,%d), want (%d,%d,%d,%d)",
					c.R, c.G, c.B, c.A, tt.wantR, tt.wantG, tt.wantB, tt.wantA)
			}
		})
	}
}

func TestDrawLabel(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for i := range img.Pix {
		img.Pix[i] = 128
	}

	drawLabel(img, 10, 10, "50,50", color.NRGBA{255, 255, 255, 255}, color.NRGBA{0, 0, 0, 255})

	hasWhite, hasBlack := false, false
	for y := 9; y < 20; y++ {
		for x := 9; x < 40; x++ {
			c := img.NRGBAAt(x, y)
			if c.R == 255 {
				hasWhite = true
			}
			if c.R == 0 {
				hasBlack = true
			}
		}
	}

	if !hasWhite {
		t.Error("label should have white pixels (text)")
	}
	if !hasBlack {
		t.Error("label should have dark pixels (background)")
	}
}

func TestDrawLabel_BoundsCheck(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	fg := color.NRGBA{255, 255, 255, 255}
	bg := color.NRGBA{0, 0, 0, 180}

	// These should not panic even if label extends past bounds
	drawLabel(img, 15, 15, "100,100", fg, bg)
	drawLabel(img, 0, 0, "0,0", fg, bg)
	drawLabel(img, -5, -5, "test", fg, bg)
	drawLabel(img, 10, 10, "", fg, bg)
}
