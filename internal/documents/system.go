package documents

import (
	"context"

	"github.com/google/uuid"
)

// System defines the document management operations.
// Implementations handle blob storage and database persistence.
type System interface {
	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Document, error)
	Create(ctx context.Context, cmd CreateCommand) (*Document, error)

	// Content returns the document metadata alongside the bytes of its
	// current version.
	Content(ctx context.Context, id uuid.UUID) (*Document, []byte, error)
}
