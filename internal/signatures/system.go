// Package signatures implements the document signing engine: decoding
// signature payloads, mapping caller coordinates into PDF space, stamping
// marks onto page content, versioning the resulting files, and recording an
// append-only ledger of signature events.
package signatures

import (
	"context"

	"github.com/google/uuid"

	"github.com/Ponnanna-Pranav/SignDoc/internal/documents"
)

// SignCommand contains everything required to place one signature mark.
// The acting user is always explicit; there is no ambient identity.
type SignCommand struct {
	DocumentID uuid.UUID
	UserID     uuid.UUID
	Page       int
	X          float64
	Y          float64
	Origin     Origin
	Payload    string
	Size       *SizeHint
}

// SignResult reports a committed signing operation: the updated document and
// the ledger event it produced.
type SignResult struct {
	Document *documents.Document `json:"document"`
	Event    *Event              `json:"event"`
}

// System defines the signing operations.
type System interface {
	// Sign places a signature mark on the document's target page, writes
	// the result as a new immutable file version, advances the document
	// state to signed, and appends a ledger event. Concurrent calls for
	// the same document serialize; calls for different documents proceed
	// in parallel.
	Sign(ctx context.Context, cmd SignCommand) (*SignResult, error)

	// Events returns the document's signature events ordered by creation
	// time ascending.
	Events(ctx context.Context, documentID uuid.UUID) ([]Event, error)
}
