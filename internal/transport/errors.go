package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FieldError is one entry of the server's validation error map. The
// entries keep the order the server sent them in, which a plain
// map[string][]string would lose.
type FieldError struct {
	Field    string
	Messages []string
}

// APIError is any non-2xx response, decoded.
type APIError struct {
	Status  int
	Message string
	Fields  []FieldError
}

func (e *APIError) Error() string {
	if flat := e.Flatten(); flat != "" && flat != e.Message {
		return fmt.Sprintf("api error %d: %s (%s)", e.Status, e.Message, flat)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Flatten joins every field message into one line for inline display,
// e.g. {email:["invalid"], password:["too short"]} -> "invalid, too short".
func (e *APIError) Flatten() string {
	var parts []string
	for _, fe := range e.Fields {
		parts = append(parts, fe.Messages...)
	}
	return strings.Join(parts, ", ")
}

func (e *APIError) NotFound() bool { return e.Status == 404 }

// decodeAPIError builds an APIError from a response body. Bodies look
// like {"message": "...", "errors": {"field": ["msg", ...]}} with
// "error" accepted as a message key too. Unparseable bodies fall back
// to the raw text.
func decodeAPIError(status int, body []byte) *APIError {
	out := &APIError{Status: status}

	var envelope struct {
		Message string          `json:"message"`
		Error   string          `json:"error"`
		Errors  json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		out.Message = strings.TrimSpace(string(body))
		if out.Message == "" {
			out.Message = "request failed"
		}
		return out
	}

	out.Message = envelope.Message
	if out.Message == "" {
		out.Message = envelope.Error
	}
	if out.Message == "" {
		out.Message = "request failed"
	}
	if len(envelope.Errors) > 0 {
		out.Fields = parseFieldErrors(envelope.Errors)
	}
	return out
}

// parseFieldErrors walks the errors object token by token so the field
// order of the payload is preserved.
func parseFieldErrors(raw json.RawMessage) []FieldError {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}

	var fields []FieldError
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fields
		}
		key, _ := keyTok.(string)

		var msgs []string
		if err := dec.Decode(&msgs); err != nil {
			// Some backends send a single string instead of a list.
			var one string
			if err := dec.Decode(&one); err != nil {
				return fields
			}
			msgs = []string{one}
		}
		fields = append(fields, FieldError{Field: key, Messages: msgs})
	}
	return fields
}
