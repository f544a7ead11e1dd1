package signatures

import (
	"errors"
	"net/http"

	"github.com/Ponnanna-Pranav/SignDoc/internal/documents"
)

// Domain errors for signature operations. All failures surface to the caller
// with their original kind; none are retried internally.
var (
	// ErrInvalidPayload indicates a malformed or empty signature payload.
	// Recoverable by the caller correcting the input.
	ErrInvalidPayload = errors.New("invalid signature payload")

	// ErrInvalidPage indicates a page number outside [1, pageCount].
	ErrInvalidPage = errors.New("page number out of range")

	// ErrUnreadablePDF indicates the source bytes are not a parseable PDF.
	// Treated as fatal for that document version; it signals possible
	// upstream storage corruption.
	ErrUnreadablePDF = errors.New("document is not a readable pdf")

	// ErrRenderFailure indicates image or text embedding failed, typically
	// because of corrupt image bytes. Recoverable with a corrected payload.
	ErrRenderFailure = errors.New("failed to render signature mark")

	// ErrCorruptDocument indicates serialization of the mutated document
	// failed. Fatal; not worth retrying with the same input.
	ErrCorruptDocument = errors.New("failed to write mutated document")
)

// MapHTTPStatus converts signature domain errors to HTTP status codes,
// delegating document errors to the documents package.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidPayload), errors.Is(err, ErrInvalidPage):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnreadablePDF), errors.Is(err, ErrRenderFailure):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrCorruptDocument):
		return http.StatusInternalServerError
	default:
		return documents.MapHTTPStatus(err)
	}
}
