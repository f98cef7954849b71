package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

// Error kinds returned in the "kind" field of an error body.
const (
	KindNotFound            = "not_found"
	KindTransactionConflict = "transaction_conflict"
	KindGrantFailure        = "grant_failure"
	KindClassification      = "classification_lookup_failure"
	KindValidation          = "validation"
	KindUnauthorized        = "unauthorized"
	KindForbidden           = "forbidden"
	KindConflict            = "conflict"
	KindAlreadyShared       = "already_shared"
	KindInternal            = "internal"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string       `json:"kind"`
	Message string       `json:"message"`
	Fields  []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Kind: kind, Message: message}})
}

// handleError maps a service error to a status code and error kind.
// Unexpected errors are logged and reported without detail.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		fields := make([]fieldError, len(ve.Errors))
		for i, fe := range ve.Errors {
			fields[i] = fieldError{Field: fe.Field, Message: fe.Message}
		}
		writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{
			Kind: KindValidation, Message: ve.Error(), Fields: fields,
		}})
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, KindValidation, err.Error())
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidToken):
		writeError(w, http.StatusNotFound, KindNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, KindUnauthorized, "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, KindForbidden, "forbidden")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, KindAlreadyShared, "resource is already shared with the target domain")
	case errors.Is(err, domain.ErrTransactionConflict):
		writeError(w, http.StatusConflict, KindTransactionConflict, "concurrent update, retry the request")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, KindConflict, err.Error())
	case errors.Is(err, domain.ErrGrantFailure):
		log.WarnContext(r.Context(), "grant failure", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, KindGrantFailure, "authorization grant failed")
	case errors.Is(err, domain.ErrClassificationLookup):
		log.WarnContext(r.Context(), "classification lookup failure", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, KindClassification, "classification lookup failed")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, KindInternal, "internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	return nil
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return n, nil
}

// NotFound answers requests for unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, KindNotFound, "route not found")
}

// MethodNotAllowed answers requests with a method the route does not serve.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, KindValidation, "method not allowed")
}
