package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Ponnanna-Pranav/SignDoc/internal/storage"
)

const documentColumns = `id, user_id, name, filename, content_type, size_bytes,
	page_count, storage_key, state, version, uploaded_at, signed_at, updated_at`

type repo struct {
	db      *sql.DB
	storage storage.System
	logger  *slog.Logger
}

// New creates a document repository with database and blob storage integration.
func New(db *sql.DB, store storage.System, logger *slog.Logger) System {
	return &repo{
		db:      db,
		storage: store,
		logger:  logger.With("system", "documents"),
	}
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Document, error) {
	q := fmt.Sprintf(`SELECT %s FROM documents WHERE id = $1`, documentColumns)

	doc, err := scanDocument(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query document: %w", err)
	}
	return &doc, nil
}

func (r *repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]Document, error) {
	q := fmt.Sprintf(`SELECT %s FROM documents WHERE user_id = $1 ORDER BY uploaded_at DESC`, documentColumns)

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Document, error) {
	now := time.Now().UTC()

	doc := Document{
		ID:          uuid.New(),
		UserID:      cmd.UserID,
		Name:        cmd.Name,
		Filename:    cmd.Filename,
		ContentType: cmd.ContentType,
		SizeBytes:   cmd.SizeBytes,
		PageCount:   cmd.PageCount,
		State:       StatePending,
		UploadedAt:  now,
		UpdatedAt:   now,
	}
	doc.StorageKey = BuildStorageKey(doc.ID, cmd.Filename)

	if err := r.storage.Store(ctx, doc.StorageKey, cmd.Data); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	q := `INSERT INTO documents (id, user_id, name, filename, content_type, size_bytes,
			page_count, storage_key, state, version, uploaded_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, q,
		doc.ID, doc.UserID, doc.Name, doc.Filename, doc.ContentType, doc.SizeBytes,
		doc.PageCount, doc.StorageKey, doc.State, doc.Version, doc.UploadedAt, doc.UpdatedAt,
	)
	if err != nil {
		if delErr := r.storage.Delete(ctx, doc.StorageKey); delErr != nil {
			r.logger.Error("cleanup failed after db error", "storage_key", doc.StorageKey, "error", delErr)
		}
		return nil, fmt.Errorf("insert document: %w", err)
	}

	r.logger.Info("document created", "id", doc.ID, "name", doc.Name, "storage_key", doc.StorageKey)
	return &doc, nil
}

func (r *repo) Content(ctx context.Context, id uuid.UUID) (*Document, []byte, error) {
	doc, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	data, err := r.storage.Retrieve(ctx, doc.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: stored file missing", ErrNotFound)
		}
		return nil, nil, fmt.Errorf("retrieve file: %w", err)
	}

	return doc, data, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	err := row.Scan(
		&doc.ID, &doc.UserID, &doc.Name, &doc.Filename, &doc.ContentType, &doc.SizeBytes,
		&doc.PageCount, &doc.StorageKey, &doc.State, &doc.Version,
		&doc.UploadedAt, &doc.SignedAt, &doc.UpdatedAt,
	)
	return doc, err
}

// BuildStorageKey derives the blob storage key for an uploaded document.
func BuildStorageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("documents/%s/%s", id.String(), SanitizeFilename(filename))
}

// SanitizeFilename strips path components and replaces characters that are
// unsafe in storage keys.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	replacer := strings.NewReplacer(
		" ", "_",
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(name)
}
