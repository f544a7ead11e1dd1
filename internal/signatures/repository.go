package signatures

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Ponnanna-Pranav/SignDoc/internal/documents"
)

// Ledger persists signature events and the document version transition they
// belong to. The ledger is append-only: no update or delete is exposed.
type Ledger interface {
	// Commit atomically records the document's new version pointer and
	// state alongside the signature event. Either both are durable or
	// neither is.
	Commit(ctx context.Context, doc *documents.Document, event *Event) error

	// Events returns all events for a document ordered by creation time
	// ascending.
	Events(ctx context.Context, documentID uuid.UUID) ([]Event, error)
}

type sqlLedger struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewLedger creates a database-backed signature ledger.
func NewLedger(db *sql.DB, logger *slog.Logger) Ledger {
	return &sqlLedger{
		db:     db,
		logger: logger.With("system", "ledger"),
	}
}

func (l *sqlLedger) Commit(ctx context.Context, doc *documents.Document, event *Event) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	update := `UPDATE documents
		SET storage_key = $1, state = $2, version = $3, signed_at = $4, updated_at = $5
		WHERE id = $6`

	res, err := tx.ExecContext(ctx, update,
		doc.StorageKey, doc.State, doc.Version, doc.SignedAt, doc.UpdatedAt, doc.ID,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return documents.ErrNotFound
	}

	insert := `INSERT INTO signature_events
			(id, document_id, user_id, page, x, y, width, height, payload_kind, storage_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	if _, err := tx.ExecContext(ctx, insert,
		event.ID, event.DocumentID, event.UserID, event.Page,
		event.X, event.Y, event.Width, event.Height,
		event.PayloadKind, event.StorageKey, event.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (l *sqlLedger) Events(ctx context.Context, documentID uuid.UUID) ([]Event, error) {
	// seq is a commit-order serial, so ordering is exact even when two
	// events share a created_at timestamp.
	q := `SELECT id, document_id, user_id, page, x, y, width, height, payload_kind, storage_key, created_at
		FROM signature_events
		WHERE document_id = $1
		ORDER BY seq`

	rows, err := l.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var e Event
		if err := rows.Scan(
			&e.ID, &e.DocumentID, &e.UserID, &e.Page,
			&e.X, &e.Y, &e.Width, &e.Height,
			&e.PayloadKind, &e.StorageKey, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}
