package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createTestImage creates a simple test image file and returns its path.
// The file lives in a per-test temp directory.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "test-image.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}

	return path
}

func TestDecode(t *testing.T) {
	path := createTestImage(t, 100, 60, color.RGBA{255, 0, 0, 255})

	buf, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if buf.Width != 100 || buf.Height != 60 {
		t.Errorf("dimensions: got %dx%d, want 100x60", buf.Width, buf.Height)
	}
	if got := buf.RGBAt(50, 30); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("pixel: got %v, want red", got)
	}
}

func TestDecode_NonExistent(t *testing.T) {
	_, err := Decode("/nonexistent/path/to/image.png")
	if !errors.Is(err, ErrDecode) {
		t.Errorf("Decode error: got %v, want ErrDecode", err)
	}
}

func TestDecode_InvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid-image.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := Decode(path)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("Decode error: got %v, want ErrDecode", err)
	}
}

func TestEncode_PNGRoundTrip(t *testing.T) {
	buf := gradientBuffer(32, 24)
	path := filepath.Join(t.TempDir(), "out.png")

	if err := Encode(buf, path, 0); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	back, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !back.Equal(buf) {
		t.Error("PNG round trip should be lossless")
	}
}

func TestEncode_JPEG(t *testing.T) {
	buf := uniformBuffer(16, 16, 120, 60, 30)
	path := filepath.Join(t.TempDir(), "out.jpg")

	if err := Encode(buf, path, 90); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	back, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if back.Width != 16 || back.Height != 16 {
		t.Errorf("dimensions: got %dx%d, want 16x16", back.Width, back.Height)
	}
}

func TestEncode_Errors(t *testing.T) {
	dir := t.TempDir()

	if err := Encode(NewBuffer(0, 0), filepath.Join(dir, "empty.png"), 0); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("empty buffer: got %v, want ErrEmptyImage", err)
	}
	if err := Encode(uniformBuffer(2, 2, 0, 0, 0), filepath.Join(dir, "out.xyz"), 0); err == nil {
		t.Error("Encode should fail for an unknown extension")
	}
}

func TestLoadImageInfo(t *testing.T) {
	path := createTestImage(t, 200, 150, color.RGBA{0, 255, 0, 255})

	buf, info, err := LoadImageInfo(path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if buf == nil {
		t.Fatal("LoadImageInfo returned nil buffer")
	}
	if info.Width != 200 || info.Height != 150 {
		t.Errorf("dimensions: got %dx%d, want 200x150", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("file size: got %d, want > 0", info.FileSizeBytes)
	}
}

func TestFormatFromExt(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.png", "png"},
		{"a.JPG", "jpeg"},
		{"a.jpeg", "jpeg"},
		{"a.webp", "webp"},
		{"a.gif", "gif"},
		{"a.bmp", "bmp"},
		{"a.tif", "tiff"},
		{"a.raw", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := formatFromExt(tt.path); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
