package hopsworks

import (
	"encoding/json"
	"fmt"
)

// RESTError is the error envelope the platform returns on unsuccessful
// requests. Missing fields carry their documented defaults: code -1 and
// empty messages.
type RESTError struct {
	// Code is the platform error code, -1 when absent.
	Code int
	// Message is the technical error message.
	Message string
	// UserMessage is the message intended for end users.
	UserMessage string
}

// Error implements the error interface.
func (e RESTError) Error() string {
	if e.UserMessage != "" {
		return fmt.Sprintf("hopsworks error %d: %s (%s)", e.Code, e.Message, e.UserMessage)
	}
	return fmt.Sprintf("hopsworks error %d: %s", e.Code, e.Message)
}

// ParseRESTError extracts the error envelope from a decoded JSON response.
// It is total over any map: unknown keys are ignored and missing or
// wrongly-typed values leave the defaults in place. JSON numbers arrive as
// float64 after generic decoding and are truncated to int.
func ParseRESTError(body map[string]interface{}) RESTError {
	e := RESTError{Code: -1}
	switch code := body[jsonErrorCode].(type) {
	case float64:
		e.Code = int(code)
	case int:
		e.Code = code
	case json.Number:
		if n, err := code.Int64(); err == nil {
			e.Code = int(n)
		}
	}
	if msg, ok := body[jsonErrorMsg].(string); ok {
		e.Message = msg
	}
	if msg, ok := body[jsonUserMsg].(string); ok {
		e.UserMessage = msg
	}
	return e
}

// DecodeRESTError decodes a raw JSON response body and parses its error
// envelope. Like ParseRESTError it never fails: a body that is not a JSON
// object yields the default envelope.
func DecodeRESTError(body []byte) RESTError {
	var m map[string]interface{}
	if err := json.Unmarshal(body, &m); err != nil {
		return RESTError{Code: -1}
	}
	return ParseRESTError(m)
}
