package signatures

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Ponnanna-Pranav/SignDoc/internal/documents"
	"github.com/Ponnanna-Pranav/SignDoc/internal/storage"
)

type service struct {
	docs    documents.System
	storage storage.System
	ledger  Ledger
	stamper *Stamper
	locks   *lockTable
	logger  *slog.Logger
}

// NewSystem creates the signing system. It owns the per-document lock table
// for the life of the process.
func NewSystem(docs documents.System, store storage.System, ledger Ledger, logger *slog.Logger) System {
	return &service{
		docs:    docs,
		storage: store,
		ledger:  ledger,
		stamper: NewStamper(),
		locks:   newLockTable(),
		logger:  logger.With("system", "signatures"),
	}
}

// Sign holds the document's exclusive section for the full
// load-stamp-store-commit sequence. Any failure before the ledger commit
// leaves the document row and the ledger untouched; an already-written blob
// for a failed attempt is deleted on a best-effort basis.
func (s *service) Sign(ctx context.Context, cmd SignCommand) (*SignResult, error) {
	drawable, err := DecodePayload(cmd.Payload)
	if err != nil {
		return nil, err
	}
	if err := cmd.Origin.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	lock := s.locks.get(cmd.DocumentID)
	lock.Lock()
	defer lock.Unlock()

	doc, err := s.docs.Find(ctx, cmd.DocumentID)
	if err != nil {
		return nil, err
	}

	// Cheap rejection against the cached page count before touching storage.
	if doc.PageCount != nil && (cmd.Page < 1 || cmd.Page > *doc.PageCount) {
		return nil, fmt.Errorf("%w: page %d of %d", ErrInvalidPage, cmd.Page, *doc.PageCount)
	}

	data, err := s.storage.Retrieve(ctx, doc.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: current version missing from storage", ErrUnreadablePDF)
		}
		return nil, fmt.Errorf("retrieve document: %w", err)
	}

	count, geos, err := s.stamper.Inspect(data)
	if err != nil {
		return nil, err
	}
	if cmd.Page < 1 || cmd.Page > count {
		return nil, fmt.Errorf("%w: page %d of %d", ErrInvalidPage, cmd.Page, count)
	}

	size := ResolveSize(drawable, cmd.Size)
	geo := geos[cmd.Page-1]
	pdfX, pdfY := ToPDFSpace(cmd.X, cmd.Y, geo, cmd.Origin, size.Height)

	// The ledger must record the position the mark actually renders at.
	pdfX = clamp(pdfX, 0, geo.WidthPts)
	pdfY = clamp(pdfY, 0, geo.HeightPts)

	out, err := s.stamper.Apply(data, cmd.Page, drawable, pdfX, pdfY, size)
	if err != nil {
		return nil, err
	}

	newKey := versionKey(doc.StorageKey, doc.Version+1)
	if err := s.storage.Store(ctx, newKey, out); err != nil {
		return nil, fmt.Errorf("store signed version: %w", err)
	}

	now := time.Now().UTC()

	updated := *doc
	updated.StorageKey = newKey
	updated.State = documents.StateSigned
	updated.Version = doc.Version + 1
	updated.SignedAt = &now
	updated.UpdatedAt = now
	if count > 0 {
		updated.PageCount = &count
	}

	event := &Event{
		ID:          uuid.New(),
		DocumentID:  cmd.DocumentID,
		UserID:      cmd.UserID,
		Page:        cmd.Page,
		X:           pdfX,
		Y:           pdfY,
		Width:       size.Width,
		Height:      size.Height,
		PayloadKind: drawable.Kind,
		StorageKey:  newKey,
		CreatedAt:   now,
	}

	if err := s.ledger.Commit(ctx, &updated, event); err != nil {
		if delErr := s.storage.Delete(ctx, newKey); delErr != nil {
			s.logger.Error("cleanup failed after commit error", "storage_key", newKey, "error", delErr)
		}
		return nil, fmt.Errorf("commit signature: %w", err)
	}

	s.logger.Info("document signed",
		"document_id", cmd.DocumentID,
		"user_id", cmd.UserID,
		"page", cmd.Page,
		"kind", drawable.Kind,
		"version", updated.Version,
		"storage_key", newKey,
	)

	return &SignResult{Document: &updated, Event: event}, nil
}

func (s *service) Events(ctx context.Context, documentID uuid.UUID) ([]Event, error) {
	return s.ledger.Events(ctx, documentID)
}

// versionKey derives the storage key for the next file version from the
// current key and the per-document version counter, preserving the file
// extension so version lineage stays inspectable without the ledger:
// documents/<id>/scan.pdf -> documents/<id>/scan_v1.pdf -> ..._v2.pdf.
func versionKey(key string, version int) string {
	ext := ""
	if i := strings.LastIndex(key, "."); i >= 0 && !strings.Contains(key[i:], "/") {
		ext = key[i:]
		key = key[:i]
	}

	// Strip the previous version suffix so counters do not stack.
	if i := strings.LastIndex(key, "_v"); i >= 0 && isDigits(key[i+2:]) {
		key = key[:i]
	}

	return fmt.Sprintf("%s_v%d%s", key, version, ext)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
