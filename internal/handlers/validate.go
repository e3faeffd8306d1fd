package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"terolib/internal/auth"
	"terolib/internal/catalog"
	"terolib/internal/library"
	"terolib/internal/portal"
	"terolib/internal/theme"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("malformed request")

// validate checks request structs after decoding.
var validate = validator.New()

// decodeJSON reads the request body into dst. An empty body leaves dst
// at its zero value.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// bindJSON decodes the body into a request struct declared in this
// package and checks its validate tags. Domain types are validated by
// the packages that own them.
func bindJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := decodeJSON(w, r, dst); err != nil {
		return err
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", portal.ErrInvalidInput, err)
	}
	return nil
}

// intParam parses a numeric chi URL parameter. A non-numeric value is
// reported as an out-of-range index.
func intParam(r *http.Request, name string) (int, error) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", catalog.ErrInvalidIndex, name, chi.URLParam(r, name))
	}
	return n, nil
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidPassword):
		return http.StatusUnauthorized
	case errors.Is(err, portal.ErrForbidden), errors.Is(err, auth.ErrNotAuthenticated):
		return http.StatusForbidden
	case errors.Is(err, portal.ErrUnknownCategory),
		errors.Is(err, portal.ErrUnknownScope),
		errors.Is(err, library.ErrFileNotFound),
		errors.Is(err, catalog.ErrInvalidIndex):
		return http.StatusNotFound
	case errors.Is(err, library.ErrNotConfirmed), errors.Is(err, portal.ErrNoDraft):
		return http.StatusConflict
	case errors.Is(err, portal.ErrInvalidInput),
		errors.Is(err, library.ErrInvalidDraft),
		errors.Is(err, auth.ErrEmptyPassword),
		errors.Is(err, theme.ErrInvalidPalette),
		errors.Is(err, theme.ErrUnknownPreset),
		errors.Is(err, catalog.ErrDuplicateID),
		errors.Is(err, catalog.ErrReservedID),
		errors.Is(err, catalog.ErrInvalidNode):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError answers with the status mapped from err. Server-side
// failures are logged and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err, "method", r.Method, "path", r.URL.Path)
		msg = "internal server error"
	}
	writeJSON(w, status, map[string]string{"error": msg})
}
