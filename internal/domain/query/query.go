// Package query classifies raw panel input into the payload sent to the collaborator.
package query

import (
	"encoding/json"
	"strings"
)

// URLPrefix marks input that is forwarded as a link instead of free text.
const URLPrefix = "http"

// Kind is the shape a query takes on the wire.
type Kind string

// Query kinds.
const (
	Text Kind = "text"
	URL  Kind = "url"
)

// Payload is the request body for POST /recommend.
type Payload struct {
	kind Kind
	raw  string
}

// IsBlank reports whether raw is empty after trimming whitespace.
func IsBlank(raw string) bool {
	return strings.TrimSpace(raw) == ""
}

// Classify builds the payload for raw. The raw string is kept verbatim.
func Classify(raw string) Payload {
	if strings.HasPrefix(raw, URLPrefix) {
		return Payload{kind: URL, raw: raw}
	}
	return Payload{kind: Text, raw: raw}
}

// Kind returns the payload shape.
func (p Payload) Kind() Kind { return p.kind }

// Raw returns the original input.
func (p Payload) Raw() string { return p.raw }

// Query returns the value of the "query" field.
func (p Payload) Query() string {
	if p.kind == URL {
		return ""
	}
	return p.raw
}

// URL returns the value of the "url" field, empty for text queries.
func (p Payload) URL() string {
	if p.kind == URL {
		return p.raw
	}
	return ""
}

type wirePayload struct {
	Query string  `json:"query"`
	URL   *string `json:"url,omitempty"`
}

// MarshalJSON encodes {"query": raw} or {"query": "", "url": raw}.
func (p Payload) MarshalJSON() ([]byte, error) {
	w := wirePayload{Query: p.Query()}
	if p.kind == URL {
		u := p.raw
		w.URL = &u
	}
	return json.Marshal(w)
}
