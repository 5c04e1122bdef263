package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// BodyKind tells how a response payload was interpreted.
type BodyKind int

const (
	BodyEmpty BodyKind = iota
	BodyJSON
	BodyText
)

func (k BodyKind) String() string {
	switch k {
	case BodyJSON:
		return "json"
	case BodyText:
		return "text"
	default:
		return "empty"
	}
}

var ErrNotJSON = errors.New("body is not json")

// Body is a response payload: parsed JSON when it is valid JSON, the raw
// text otherwise (error pages, plain-text proxies).
type Body struct {
	Kind BodyKind
	JSON json.RawMessage
	Text string
}

// ParseBody classifies raw bytes read from a response.
func ParseBody(raw []byte) Body {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Body{Kind: BodyEmpty}
	}
	if json.Valid(trimmed) {
		return Body{Kind: BodyJSON, JSON: json.RawMessage(trimmed)}
	}
	return Body{Kind: BodyText, Text: string(raw)}
}

// Decode unmarshals a JSON body into v.
func (b Body) Decode(v any) error {
	if b.Kind != BodyJSON {
		return fmt.Errorf("%w: %s", ErrNotJSON, b.Kind)
	}
	return json.Unmarshal(b.JSON, v)
}

// Field returns a top-level field of a JSON object body.
func (b Body) Field(name string) (json.RawMessage, bool) {
	if b.Kind != BodyJSON {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b.JSON, &obj); err != nil {
		return nil, false
	}
	v, ok := obj[name]
	return v, ok
}

// String renders the body for display; JSON is indented.
func (b Body) String() string {
	switch b.Kind {
	case BodyJSON:
		var out bytes.Buffer
		if err := json.Indent(&out, b.JSON, "", "  "); err != nil {
			return string(b.JSON)
		}
		return out.String()
	case BodyText:
		return b.Text
	default:
		return ""
	}
}

// Envelope wraps every HTTP response so callers branch on one shape.
type Envelope struct {
	OK     bool
	Status int
	Body   Body
}

// Err returns nil for a 2xx envelope and a *RequestFailedError otherwise.
func (e *Envelope) Err() error {
	if e.OK {
		return nil
	}
	return &RequestFailedError{Status: e.Status, Message: ExtractMessage(e.Body), Data: e.Body}
}

// ExtractMessage picks the user-facing message of a failed response:
// the "detail" field, then "message", then DefaultFailureMessage.
// Null, empty, false and zero values count as absent. A non-string value,
// such as a list of validation errors, is returned as compact JSON.
func ExtractMessage(b Body) string {
	for _, field := range []string{"detail", "message"} {
		raw, ok := b.Field(field)
		if !ok {
			continue
		}
		if msg := messageValue(raw); msg != "" {
			return msg
		}
	}
	return DefaultFailureMessage
}

func messageValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	switch string(raw) {
	case "null", "false", "0":
		return ""
	}
	var out bytes.Buffer
	if err := json.Compact(&out, raw); err != nil {
		return string(raw)
	}
	return out.String()
}
