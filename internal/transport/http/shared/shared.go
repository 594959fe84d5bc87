// Package shared holds the JSON response helpers every handler uses, keeping
// error envelopes and status mapping consistent across domains.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "parlo/pkg/domain-errors"
)

// WriteJSON writes a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError translates a domain error into the standard JSON error envelope.
// Uncoded errors map to 500 with code "internal"; internal error messages are
// never exposed to the caller.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)

	message := "internal server error"
	var de *dErrors.Error
	if code != dErrors.CodeInternal && errors.As(err, &de) {
		message = de.Message
	}
	WriteJSON(w, status, map[string]string{
		"error":   string(code),
		"message": message,
	})
}
