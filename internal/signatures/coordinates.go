package signatures

import "fmt"

// Origin declares the coordinate convention of caller-supplied positions.
// The convention is always explicit per request; it is never inferred from
// the values themselves, which silently misplaces marks when guessed wrong.
type Origin string

// Coordinate origin conventions.
const (
	// OriginTopLeft is the browser convention: y grows downward from the
	// top-left corner of the page.
	OriginTopLeft Origin = "top-left"

	// OriginBottomLeft is the native PDF convention: y grows upward from
	// the bottom-left corner, units in points (1/72 inch).
	OriginBottomLeft Origin = "bottom-left"
)

// Validate checks that the origin is a known convention.
func (o Origin) Validate() error {
	switch o {
	case OriginTopLeft, OriginBottomLeft:
		return nil
	default:
		return fmt.Errorf("invalid origin: %q (must be top-left or bottom-left)", string(o))
	}
}

// PageGeometry holds the bounding box of a single page in PDF points.
type PageGeometry struct {
	WidthPts  float64
	HeightPts float64
}

// ToPDFSpace maps caller coordinates into PDF point space for the given page.
//
// For a top-left origin the y axis is flipped and adjusted by the drawable
// height so the mark's visual anchor lands where the caller saw it:
// pdfY = pageHeight - y - drawableHeight. The x axis needs no flip in either
// convention. Bottom-left input passes through unchanged.
//
// The transform never fails; out-of-range results are clamped to the page by
// the stamper, not here.
func ToPDFSpace(x, y float64, geo PageGeometry, origin Origin, drawableHeight float64) (float64, float64) {
	if origin == OriginTopLeft {
		return x, geo.HeightPts - y - drawableHeight
	}
	return x, y
}
