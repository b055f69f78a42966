package utils

import (
	"mdtcare-service/internal/pkg/exceptions"
	"net/http"

	"github.com/goccy/go-json"
)

// ParseAndValidateBody decodes the JSON request body into dst and runs the
// struct validators. dst must be a pointer.
func ParseAndValidateBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	if err := ValidateStruct(dst); err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}
