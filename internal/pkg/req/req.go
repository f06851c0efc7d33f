/*
Package req provides helpers for HTTP request parsing and data binding.

It encapsulates JSON body decoding with strict field checking so handlers
receive either a fully bound struct or a classified request error.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"youapp/internal/pkg/errs"
)

// BindJSON binds the JSON request body to the destination struct dst.
func BindJSON(r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
