package documents

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "scan.pdf", "scan.pdf"},
		{"spaces", "my contract final.pdf", "my_contract_final.pdf"},
		{"path stripped", "/tmp/uploads/scan.pdf", "scan.pdf"},
		{"unsafe characters", `a:b*c?d"e<f>g|h.pdf`, "a_b_c_d_e_f_g_h.pdf"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeFilename(tc.in); got != tc.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestBuildStorageKey(t *testing.T) {
	id := uuid.New()
	want := fmt.Sprintf("documents/%s/my_scan.pdf", id)

	if got := BuildStorageKey(id, "my scan.pdf"); got != want {
		t.Errorf("BuildStorageKey = %q, want %q", got, want)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", ErrNotFound), http.StatusNotFound},
		{ErrDuplicate, http.StatusConflict},
		{ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{ErrInvalidFile, http.StatusBadRequest},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		if got := MapHTTPStatus(tc.err); got != tc.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
