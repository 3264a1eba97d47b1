// ABOUTME: Normalized response envelope for all backend calls
// ABOUTME: Unwraps inconsistent payload shapes and tags failures by kind

package api

import (
	"encoding/json"
	"net/http"

	"github.com/tidwall/gjson"
)

// ErrorKind classifies a failed call so callers can branch exhaustively
// instead of string-matching messages.
type ErrorKind int

const (
	// KindTransport covers network errors: unreachable backend, timeouts,
	// canceled requests, unreadable responses.
	KindTransport ErrorKind = iota
	// KindAuthRequired means the call needs a bearer token and none was
	// available; no network request was made.
	KindAuthRequired
	// KindBusiness means the backend responded but signaled a failure
	// (validation error, not found, insufficient balance, ...).
	KindBusiness
	// KindSessionInvalid means a previously valid token was rejected.
	KindSessionInvalid
	// KindDecode means the backend payload could not be decoded into the
	// expected type.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuthRequired:
		return "auth_required"
	case KindBusiness:
		return "business"
	case KindSessionInvalid:
		return "session_invalid"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// CallError is the tagged failure attached to an unsuccessful envelope.
type CallError struct {
	Kind    ErrorKind
	Message string
	Raw     json.RawMessage // raw error body when the backend provided one
}

func (e *CallError) Error() string {
	return e.Kind.String() + ": " + e.Message
}

// Envelope is the uniform result of every backend call. Success is true iff
// the request completed and the backend did not signal a business failure.
// Data holds the unwrapped payload regardless of how the backend nested it.
// Message is always non-empty. Status carries the backend HTTP status (0 when
// no response was received) so callers can tell "not found yet" apart from
// generic failure.
type Envelope struct {
	Success bool
	Data    gjson.Result
	Message string
	Status  int
	Err     *CallError
}

// NotFound reports whether the backend answered 404 for this call. This is
// the one convention for "resource legitimately does not exist yet" (e.g. a
// wallet that was never created).
func (e Envelope) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// Kind returns the failure kind, or -1 for a successful envelope.
func (e Envelope) Kind() ErrorKind {
	if e.Err == nil {
		return -1
	}
	return e.Err.Kind
}

// unwrap extracts the payload from a backend body. The backend is
// inconsistent about casing and nesting, so the chain is: capitalized Data
// field, lowercase data field, then the raw body itself. Unrecognized or
// invalid bodies degrade to an empty result.
func unwrap(body []byte) gjson.Result {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}
	}
	if v := gjson.GetBytes(body, "Data"); v.Exists() {
		return v
	}
	if v := gjson.GetBytes(body, "data"); v.Exists() {
		return v
	}
	return gjson.ParseBytes(body)
}

// extractMessage pulls a human-readable message from a backend body,
// falling back to the supplied default when the body carries none.
func extractMessage(body []byte, fallback string) string {
	if gjson.ValidBytes(body) {
		if v := gjson.GetBytes(body, "Message"); v.Exists() && v.String() != "" {
			return v.String()
		}
		if v := gjson.GetBytes(body, "message"); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return fallback
}

// businessFailure reports whether a 2xx body still signals failure. Some
// endpoints answer 200 with {Success:false} or a Status field carrying an
// error code.
func businessFailure(body []byte) bool {
	if !gjson.ValidBytes(body) {
		return false
	}
	for _, key := range []string{"Success", "success"} {
		if v := gjson.GetBytes(body, key); v.Exists() && v.Type == gjson.False {
			return true
		}
	}
	for _, key := range []string{"Status", "status"} {
		v := gjson.GetBytes(body, key)
		if v.Exists() && v.Type == gjson.Number && v.Int() >= 400 {
			return true
		}
	}
	return false
}

// successEnvelope builds the envelope for a completed, successful call.
func successEnvelope(status int, body []byte, fallbackMsg string) Envelope {
	return Envelope{
		Success: true,
		Data:    unwrap(body),
		Message: extractMessage(body, fallbackMsg),
		Status:  status,
	}
}

// failureEnvelope builds the envelope for a failed call. The message falls
// back through: backend message, the supplied message, then a generic
// default, so it is never empty.
func failureEnvelope(kind ErrorKind, status int, message string, body []byte) Envelope {
	msg := extractMessage(body, message)
	if msg == "" {
		msg = msgGenericFailure
	}
	var raw json.RawMessage
	if len(body) > 0 {
		raw = json.RawMessage(body)
	}
	return Envelope{
		Success: false,
		Message: msg,
		Status:  status,
		Err: &CallError{
			Kind:    kind,
			Message: msg,
			Raw:     raw,
		},
	}
}

// decodeInto unmarshals the envelope payload into v. A payload that does not
// match the expected type converts the envelope into a decode failure so the
// caller still sees a normalized result.
func decodeInto(env Envelope, v any) Envelope {
	if !env.Success {
		return env
	}
	if !env.Data.Exists() {
		// Tolerated: endpoints such as delete return no payload.
		return env
	}
	if err := json.Unmarshal([]byte(env.Data.Raw), v); err != nil {
		return failureEnvelope(KindDecode, env.Status, msgInvalidResponse, nil)
	}
	return env
}
