package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/diewo77/go-artisans/internal/apperr"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindAuthProvider:
		return http.StatusBadRequest
	case apperr.KindInvalidCredentials, apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders err as {"error": message}. Validation errors also list
// their offending fields under "details".
func WriteError(w http.ResponseWriter, err error) {
	var e *apperr.Error
	if errors.As(err, &e) && len(e.Fields) > 0 {
		JSONError(w, StatusFor(err), err.Error(), e.Fields)
		return
	}
	JSONError(w, StatusFor(err), err.Error(), nil)
}

// MaxBodyBytes caps every JSON request body.
const MaxBodyBytes = 1 << 20

// ReadBody returns at most MaxBodyBytes of the request body. An oversized
// body is a validation error.
func ReadBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, apperr.Validation("Invalid JSON body")
	}
	return body, nil
}

// DecodeJSON reads the request body into dst. A malformed or oversized body
// is a validation error.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(dst); err != nil {
		return apperr.Validation("Invalid JSON body")
	}
	return nil
}
