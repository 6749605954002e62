package imaging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// DefaultJPEGQuality is the quality used by Encode when none is given.
const DefaultJPEGQuality = 95

// Decode reads and decodes the image at path into an RGB Buffer.
//
// Supported formats are those registered with the image package: JPEG, PNG,
// GIF, TIFF and BMP through disintegration/imaging, plus WebP. EXIF
// orientation is applied so the buffer is upright. The channel order of the
// file does not matter; the result is always R,G,B.
//
// # Errors
//
// Any failure to open or decode the file is returned wrapped in ErrDecode.
func Decode(path string) (*Buffer, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", ErrDecode, path, err)
	}
	buf := FromImage(img)
	if buf.Empty() {
		return nil, fmt.Errorf("%w: %s has no pixels", ErrDecode, path)
	}
	return buf, nil
}

// Encode writes buf to path. The format is chosen from the file extension
// (".jpg", ".jpeg", ".png", ".gif", ".tif", ".tiff", ".bmp").
//
// quality applies to JPEG output only; values outside 1-100 fall back to
// DefaultJPEGQuality.
func Encode(buf *Buffer, path string, quality int) error {
	if buf.Empty() {
		return fmt.Errorf("failed to encode %s: %w", path, ErrEmptyImage)
	}
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	if err := imaging.Save(buf.Image(), path, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// ImageInfo contains metadata about an image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format implied by the file extension, or "unknown".
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo decodes the image at path and returns it along with its
// metadata.
//
// Format detection is based on the file extension:
//   - ".png" -> "png"
//   - ".jpg", ".jpeg" -> "jpeg"
//   - ".webp" -> "webp"
//   - ".gif", ".bmp", ".tif", ".tiff" -> their own names
//   - Other extensions -> "unknown"
func LoadImageInfo(path string) (*Buffer, *ImageInfo, error) {
	buf, err := Decode(path)
	if err != nil {
		return nil, nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return buf, &ImageInfo{
		Width:         buf.Width,
		Height:        buf.Height,
		Format:        formatFromExt(path),
		FileSizeBytes: stat.Size(),
	}, nil
}

func formatFromExt(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".webp":
		return "webp"
	case ".gif", ".bmp":
		return ext[1:]
	case ".tif", ".tiff":
		return "tiff"
	default:
		return "unknown"
	}
}
