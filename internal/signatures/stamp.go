package signatures

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"strconv"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Default mark footprints, in PDF points. Used when the caller supplies no
// explicit size. An explicit size hint is the preferred path; the fixed image
// footprint ignores aspect ratio and exists as a fallback only.
const (
	DefaultImageWidth  = 100.0
	DefaultImageHeight = 50.0

	DefaultTextFont = "Helvetica-Bold"
	DefaultTextSize = 14.0
)

// SizeHint is the requested footprint of a signature mark in PDF points.
type SizeHint struct {
	Width  float64
	Height float64
}

// ResolveSize returns the effective mark footprint: the caller's hint when
// fully specified, otherwise the documented default for the drawable kind.
// Text marks have no intrinsic width; their height is the font size.
func ResolveSize(d Drawable, hint *SizeHint) SizeHint {
	if hint != nil && hint.Width > 0 && hint.Height > 0 {
		return *hint
	}
	if d.Kind == PayloadImage {
		return SizeHint{Width: DefaultImageWidth, Height: DefaultImageHeight}
	}
	return SizeHint{Height: DefaultTextSize}
}

// Stamper appends signature marks to PDF page content streams. It is pure
// over its inputs, holds no shared state, and is safe for concurrent use
// across documents.
type Stamper struct {
	conf *model.Configuration
}

// NewStamper creates a stamper with default PDF processing configuration.
func NewStamper() *Stamper {
	return &Stamper{conf: model.NewDefaultConfiguration()}
}

// Inspect parses the PDF and returns its page count and per-page geometry.
// Returns ErrUnreadablePDF if the bytes are not a well-formed PDF.
func (s *Stamper) Inspect(data []byte) (int, []PageGeometry, error) {
	ctx, err := api.ReadContext(bytes.NewReader(data), s.conf)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}

	geos := make([]PageGeometry, len(dims))
	for i, dim := range dims {
		geos[i] = PageGeometry{WidthPts: dim.Width, HeightPts: dim.Height}
	}
	return ctx.PageCount, geos, nil
}

// Apply appends the drawable to the target page's content at (x, y) in PDF
// point space and returns the serialized result. Existing page content is
// preserved, including marks from earlier sign operations; repeated signs
// are cumulative. Coordinates outside the page are clamped to its bounds.
//
// The source bytes are never modified; Apply does not touch storage.
func (s *Stamper) Apply(data []byte, page int, d Drawable, x, y float64, size SizeHint) ([]byte, error) {
	count, geos, err := s.Inspect(data)
	if err != nil {
		return nil, err
	}
	if page < 1 || page > count {
		return nil, fmt.Errorf("%w: page %d of %d", ErrInvalidPage, page, count)
	}

	geo := geos[page-1]
	x = clamp(x, 0, geo.WidthPts)
	y = clamp(y, 0, geo.HeightPts)

	wm, cleanup, err := s.watermark(d, size)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return nil, err
	}
	wm.Dx = x
	wm.Dy = y

	var buf bytes.Buffer
	pages := []string{strconv.Itoa(page)}
	if err := api.AddWatermarks(bytes.NewReader(data), &buf, pages, wm, s.conf); err != nil {
		return nil, fmt.Errorf("%w: page %d: %v", ErrCorruptDocument, page, err)
	}

	return buf.Bytes(), nil
}

// watermark builds a pdfcpu stamp anchored at the page's bottom-left corner;
// the caller positions it through the Dx/Dy offsets. Image stamps go through
// a temp file because pdfcpu's image watermark parser is path-based.
func (s *Stamper) watermark(d Drawable, size SizeHint) (*model.Watermark, func(), error) {
	if d.Kind == PayloadText {
		desc := fmt.Sprintf(
			"fontname:%s, points:%d, pos:bl, rot:0, op:1, scalefactor:1 abs",
			DefaultTextFont, int(DefaultTextSize),
		)
		wm, err := pdfcpu.ParseTextWatermarkDetails(d.Text, desc, true, types.POINTS)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
		}
		return wm, nil, nil
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(d.Image))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: decode image: %v", ErrRenderFailure, err)
	}

	ext, ok := stampExts[format]
	if !ok {
		return nil, nil, fmt.Errorf("%w: unsupported image format %q", ErrRenderFailure, format)
	}

	// Images render at one point per pixel at scale 1; fit the requested
	// footprint while preserving the image's aspect ratio.
	scale := size.Width / float64(cfg.Width)
	if h := size.Height / float64(cfg.Height); h < scale {
		scale = h
	}

	tmp, err := os.CreateTemp("", "signdoc-mark-*"+ext)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: temp file: %v", ErrRenderFailure, err)
	}
	cleanup := func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}

	if _, err := tmp.Write(d.Image); err != nil {
		return nil, cleanup, fmt.Errorf("%w: write temp file: %v", ErrRenderFailure, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, cleanup, fmt.Errorf("%w: close temp file: %v", ErrRenderFailure, err)
	}

	desc := fmt.Sprintf("pos:bl, rot:0, op:1, scalefactor:%.4f abs", scale)
	wm, err := pdfcpu.ParseImageWatermarkDetails(tmp.Name(), desc, true, types.POINTS)
	if err != nil {
		return nil, cleanup, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}
	return wm, cleanup, nil
}

// stampExts maps decoded image formats to the file extensions pdfcpu resolves
// its stamp codec from. GIF decodes for dimension probing but cannot be
// stamped.
var stampExts = map[string]string{
	"png":  ".png",
	"jpeg": ".jpg",
	"tiff": ".tif",
	"webp": ".webp",
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
