package preview

import (
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/phototuner/internal/imaging"
)

// Geometry describes how a source image is fitted into a fixed viewport.
//
// The image is scaled uniformly by Scale (so its aspect ratio never
// changes) to ScaledWidth x ScaledHeight and centered; OffsetX and OffsetY
// are the margins left over on the left and top.
type Geometry struct {
	Scale          float64 `json:"scale"`
	OffsetX        int     `json:"offset_x"`
	OffsetY        int     `json:"offset_y"`
	ScaledWidth    int     `json:"scaled_width"`
	ScaledHeight   int     `json:"scaled_height"`
	ViewportWidth  int     `json:"viewport_width"`
	ViewportHeight int     `json:"viewport_height"`
	SourceWidth    int     `json:"source_width"`
	SourceHeight   int     `json:"source_height"`
}

// Compute fits a sourceWidth x sourceHeight image into the viewport.
//
//	scale   = min(viewportWidth/sourceWidth, viewportHeight/sourceHeight)
//	offsetX = (viewportWidth  - int(sourceWidth*scale))  / 2
//	offsetY = (viewportHeight - int(sourceHeight*scale)) / 2
//
// The scale may be above 1: small images are enlarged to fill the viewport.
//
// # Errors
//
// Returns imaging.ErrEmptyImage if any dimension is zero or negative.
func Compute(sourceWidth, sourceHeight, viewportWidth, viewportHeight int) (Geometry, error) {
	if sourceWidth <= 0 || sourceHeight <= 0 {
		return Geometry{}, fmt.Errorf("source %dx%d: %w", sourceWidth, sourceHeight, imaging.ErrEmptyImage)
	}
	if viewportWidth <= 0 || viewportHeight <= 0 {
		return Geometry{}, fmt.Errorf("viewport %dx%d: %w", viewportWidth, viewportHeight, imaging.ErrEmptyImage)
	}

	scale := math.Min(
		float64(viewportWidth)/float64(sourceWidth),
		float64(viewportHeight)/float64(sourceHeight),
	)
	scaledW := int(float64(sourceWidth) * scale)
	scaledH := int(float64(sourceHeight) * scale)

	return Geometry{
		Scale:          scale,
		OffsetX:        (viewportWidth - scaledW) / 2,
		OffsetY:        (viewportHeight - scaledH) / 2,
		ScaledWidth:    scaledW,
		ScaledHeight:   scaledH,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		SourceWidth:    sourceWidth,
		SourceHeight:   sourceHeight,
	}, nil
}

// ToPreview maps a source pixel to its viewport position.
func (g Geometry) ToPreview(p image.Point) image.Point {
	return image.Point{
		X: int(float64(p.X)*g.Scale) + g.OffsetX,
		Y: int(float64(p.Y)*g.Scale) + g.OffsetY,
	}
}

// ToSource maps a viewport position back to a source pixel, truncating
// toward zero. Points in the letterbox margins map outside the source
// bounds; use InSource to check.
func (g Geometry) ToSource(p image.Point) image.Point {
	if g.Scale <= 0 {
		return image.Point{}
	}
	return image.Point{
		X: int(float64(p.X-g.OffsetX) / g.Scale),
		Y: int(float64(p.Y-g.OffsetY) / g.Scale),
	}
}

// InSource reports whether a source point lies inside the source image.
func (g Geometry) InSource(p image.Point) bool {
	return p.In(image.Rect(0, 0, g.SourceWidth, g.SourceHeight))
}

// Content returns the viewport rectangle covered by the scaled image.
func (g Geometry) Content() image.Rectangle {
	return image.Rect(g.OffsetX, g.OffsetY, g.OffsetX+g.ScaledWidth, g.OffsetY+g.ScaledHeight)
}
