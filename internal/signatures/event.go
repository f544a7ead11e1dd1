package signatures

import (
	"time"

	"github.com/google/uuid"
)

// Event is one append-only audit record of a signature placement. Events are
// immutable once created and ordered by creation time per document. X and Y
// are in PDF points with a bottom-left origin. StorageKey references the file
// version the signing produced, so version lineage is inspectable from the
// ledger alone.
type Event struct {
	ID          uuid.UUID   `json:"id"`
	DocumentID  uuid.UUID   `json:"document_id"`
	UserID      uuid.UUID   `json:"user_id"`
	Page        int         `json:"page"`
	X           float64     `json:"x"`
	Y           float64     `json:"y"`
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	PayloadKind PayloadKind `json:"payload_kind"`
	StorageKey  string      `json:"storage_key"`
	CreatedAt   time.Time   `json:"created_at"`
}
