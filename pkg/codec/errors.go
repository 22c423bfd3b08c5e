// Package codec renders runtime API error envelopes.
package codec

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
)

const contentTypeJSON = "application/json"

// ErrorBody is the JSON payload of a failed runtime API call.
type ErrorBody struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorType    string `json:"errorType"`
}

// marshal encodes v without HTML escaping or a trailing newline, so
// handler messages reach the caller verbatim.
func marshal(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WriteError writes an ErrorBody with status.
func WriteError(w http.ResponseWriter, status int, errType, msg string) {
	b, err := marshal(ErrorBody{ErrorMessage: msg, ErrorType: errType})
	if err != nil {
		http.Error(w, msg, status)
		return
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
