package signatures

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// PayloadKind identifies the drawable variant produced from a raw payload.
type PayloadKind string

// Payload kinds.
const (
	PayloadImage PayloadKind = "image"
	PayloadText  PayloadKind = "text"
)

// dataURLPrefix marks an image payload encoded as a data URL.
const dataURLPrefix = "data:image"

// Drawable is the in-memory representation of signature content to be placed
// on a page: either decoded image bytes with their MIME type, or a literal
// text run. It is produced once by DecodePayload and consumed once by the
// stamper; it is never persisted.
type Drawable struct {
	Kind  PayloadKind
	Image []byte
	MIME  string
	Text  string
}

// DecodePayload parses a raw signature payload into a Drawable.
//
// Payloads beginning with "data:image" are treated as data URLs of the form
// data:<mime>;base64,<payload>: the base64 segment is decoded into image
// bytes. Any other non-empty payload is treated as literal text. Returns
// ErrInvalidPayload for empty input or a malformed data URL.
func DecodePayload(raw string) (Drawable, error) {
	if raw == "" {
		return Drawable{}, fmt.Errorf("%w: empty payload", ErrInvalidPayload)
	}

	if !strings.HasPrefix(raw, dataURLPrefix) {
		return Drawable{Kind: PayloadText, Text: raw}, nil
	}

	header, encoded, found := strings.Cut(raw, ",")
	if !found || encoded == "" {
		return Drawable{}, fmt.Errorf("%w: data url missing base64 segment", ErrInvalidPayload)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Drawable{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	return Drawable{
		Kind:  PayloadImage,
		Image: data,
		MIME:  mimeFromHeader(header),
	}, nil
}

// mimeFromHeader extracts the MIME type from a data URL header such as
// "data:image/png;base64".
func mimeFromHeader(header string) string {
	mime := strings.TrimPrefix(header, "data:")
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	return mime
}
