// Package documents provides document upload, storage, and lifecycle management.
// It supports PDF metadata extraction and integrates with blob storage for file
// persistence. Document state advances from pending to signed through the
// signatures package; it never reverts.
package documents

import (
	"time"

	"github.com/google/uuid"
)

// State represents the document lifecycle state.
type State string

// Document lifecycle states. The transition is monotonic: once signed, a
// document never returns to pending. Re-signing keeps the signed state and
// only swaps the storage key.
const (
	StatePending State = "pending"
	StateSigned  State = "signed"
)

// Document represents one uploaded PDF under signature workflow.
// StorageKey references the authoritative current file bytes: the original
// upload until signed, then the most recent signed version.
type Document struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Name        string     `json:"name"`
	Filename    string     `json:"filename"`
	ContentType string     `json:"content_type"`
	SizeBytes   int64      `json:"size_bytes"`
	PageCount   *int       `json:"page_count,omitempty"`
	StorageKey  string     `json:"storage_key"`
	State       State      `json:"state"`
	Version     int        `json:"version"`
	UploadedAt  time.Time  `json:"uploaded_at"`
	SignedAt    *time.Time `json:"signed_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateCommand contains the data required to register a new document.
// Data holds the raw file bytes to be stored.
type CreateCommand struct {
	UserID      uuid.UUID
	Name        string
	Filename    string
	ContentType string
	SizeBytes   int64
	PageCount   *int
	Data        []byte
}
