package signatures

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/Ponnanna-Pranav/SignDoc/internal/pdftest"
)

func testImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 20, G: 20, B: 120, A: 255})
		}
	}
	return img
}

// pngDrawable renders a small opaque PNG at runtime and returns it as a
// decoded image drawable.
func pngDrawable(t *testing.T, width, height int) Drawable {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(width, height)); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	d, err := DecodePayload(payload)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return d
}

func TestResolveSize(t *testing.T) {
	text := Drawable{Kind: PayloadText, Text: "x"}
	img := Drawable{Kind: PayloadImage}

	tests := []struct {
		name string
		d    Drawable
		hint *SizeHint
		want SizeHint
	}{
		{"explicit hint wins", img, &SizeHint{Width: 200, Height: 80}, SizeHint{Width: 200, Height: 80}},
		{"partial hint ignored", img, &SizeHint{Width: 200}, SizeHint{Width: DefaultImageWidth, Height: DefaultImageHeight}},
		{"image default", img, nil, SizeHint{Width: DefaultImageWidth, Height: DefaultImageHeight}},
		{"text default", text, nil, SizeHint{Height: DefaultTextSize}},
		{"text hint wins", text, &SizeHint{Width: 120, Height: 30}, SizeHint{Width: 120, Height: 30}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveSize(tc.d, tc.hint); got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestStamperInspect(t *testing.T) {
	s := NewStamper()
	data := pdftest.Document(3, 612, 792)

	count, geos, err := s.Inspect(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 pages, got %d", count)
	}
	if len(geos) != 3 {
		t.Fatalf("expected 3 geometries, got %d", len(geos))
	}
	for i, geo := range geos {
		if geo.WidthPts != 612 || geo.HeightPts != 792 {
			t.Errorf("page %d: got %+v, want 612x792", i+1, geo)
		}
	}
}

func TestStamperInspectUnreadable(t *testing.T) {
	s := NewStamper()

	if _, _, err := s.Inspect([]byte("this is not a pdf")); !errors.Is(err, ErrUnreadablePDF) {
		t.Errorf("expected ErrUnreadablePDF, got %v", err)
	}
}

func TestStamperApplyText(t *testing.T) {
	s := NewStamper()
	data := pdftest.Document(2, 612, 792)
	d := Drawable{Kind: PayloadText, Text: "Approved"}

	out, err := s.Apply(data, 2, d, 100, 100, SizeHint{Height: DefaultTextSize})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bytes.Equal(out, data) {
		t.Error("output identical to input; mark was not applied")
	}

	count, _, err := s.Inspect(out)
	if err != nil {
		t.Fatalf("stamped output unreadable: %v", err)
	}
	if count != 2 {
		t.Errorf("expected page count preserved, got %d", count)
	}
}

func TestStamperApplyImage(t *testing.T) {
	s := NewStamper()
	data := pdftest.Document(1, 612, 792)
	d := pngDrawable(t, 40, 20)

	out, err := s.Apply(data, 1, d, 50, 50, SizeHint{Width: 100, Height: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if count, _, err := s.Inspect(out); err != nil || count != 1 {
		t.Fatalf("stamped output unreadable: count=%d err=%v", count, err)
	}
}

func TestStamperApplyJPEG(t *testing.T) {
	s := NewStamper()
	data := pdftest.Document(1, 612, 792)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, testImage(40, 20), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	d := Drawable{Kind: PayloadImage, Image: buf.Bytes(), MIME: "image/jpeg"}

	out, err := s.Apply(data, 1, d, 50, 50, SizeHint{Width: 100, Height: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := s.Inspect(out); err != nil {
		t.Fatalf("stamped output unreadable: %v", err)
	}
}

func TestStamperApplyUnsupportedImage(t *testing.T) {
	s := NewStamper()
	data := pdftest.Document(1, 612, 792)

	var buf bytes.Buffer
	if err := gif.Encode(&buf, testImage(40, 20), nil); err != nil {
		t.Fatalf("encode gif: %v", err)
	}
	d := Drawable{Kind: PayloadImage, Image: buf.Bytes(), MIME: "image/gif"}

	if _, err := s.Apply(data, 1, d, 0, 0, SizeHint{Width: 100, Height: 50}); !errors.Is(err, ErrRenderFailure) {
		t.Errorf("expected ErrRenderFailure for gif payload, got %v", err)
	}
}

func TestStamperApplyCumulative(t *testing.T) {
	s := NewStamper()
	data := pdftest.Document(1, 612, 792)
	d := Drawable{Kind: PayloadText, Text: "first"}

	first, err := s.Apply(data, 1, d, 50, 50, SizeHint{Height: DefaultTextSize})
	if err != nil {
		t.Fatalf("first apply: %v", err)
	}

	d.Text = "second"
	second, err := s.Apply(first, 1, d, 200, 200, SizeHint{Height: DefaultTextSize})
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}

	if count, _, err := s.Inspect(second); err != nil || count != 1 {
		t.Fatalf("twice-stamped output unreadable: count=%d err=%v", count, err)
	}
}

func TestStamperApplyInvalidPage(t *testing.T) {
	s := NewStamper()
	data := pdftest.Document(3, 612, 792)
	d := Drawable{Kind: PayloadText, Text: "x"}

	for _, page := range []int{0, -1, 4} {
		if _, err := s.Apply(data, page, d, 0, 0, SizeHint{Height: DefaultTextSize}); !errors.Is(err, ErrInvalidPage) {
			t.Errorf("page %d: expected ErrInvalidPage, got %v", page, err)
		}
	}
}

func TestStamperApplyClampsCoordinates(t *testing.T) {
	s := NewStamper()
	data := pdftest.Document(1, 612, 792)
	d := Drawable{Kind: PayloadText, Text: "x"}

	out, err := s.Apply(data, 1, d, -500, 99999, SizeHint{Height: DefaultTextSize})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := s.Inspect(out); err != nil {
		t.Fatalf("clamped output unreadable: %v", err)
	}
}

func TestStamperApplyBadImage(t *testing.T) {
	s := NewStamper()
	data := pdftest.Document(1, 612, 792)
	d := Drawable{Kind: PayloadImage, Image: []byte("not an image"), MIME: "image/png"}

	if _, err := s.Apply(data, 1, d, 0, 0, SizeHint{Width: 100, Height: 50}); !errors.Is(err, ErrRenderFailure) {
		t.Errorf("expected ErrRenderFailure, got %v", err)
	}
}
