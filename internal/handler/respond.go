package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// writeJSON encodes v with the given status. Encoding errors are ignored
// because the header has already been sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errEmptyBody is returned by decodeJSON when the request has no body.
var errEmptyBody = errors.New("request body is required")

// decodeJSON reads a single JSON document into dst.
// An *http.MaxBytesError from the body limit is returned unchanged.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	var tooLarge *http.MaxBytesError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return errEmptyBody
	case errors.As(err, &tooLarge):
		return err
	default:
		return fmt.Errorf("invalid JSON body: %w", err)
	}
}

// pathID binds the {id} URL parameter as a UUID.
func pathID(r *http.Request) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, fmt.Errorf("invalid format for parameter id: %w", err)
	}
	return id, nil
}

// queryParam binds an optional form-style query parameter into dst.
func queryParam(r *http.Request, name string, dst any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dst); err != nil {
		return fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return nil
}

// requireQueryParam binds a required form-style query parameter into dst.
func requireQueryParam(r *http.Request, name string, dst any) error {
	if err := runtime.BindQueryParameter("form", true, true, name, r.URL.Query(), dst); err != nil {
		return fmt.Errorf("invalid or missing parameter %s: %w", name, err)
	}
	return nil
}

// decodeFailure answers a decodeJSON error with 413 or 400.
func decodeFailure(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, codeTooLarge, "request body too large")
		return
	}
	badRequest(w, err.Error())
}
