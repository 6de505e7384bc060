package domain

import (
	"encoding/json"
	"time"
)

// EmptyResults returns a fresh empty result sequence.
func EmptyResults() json.RawMessage {
	return json.RawMessage(`[]`)
}

// PlaceCandidates is the /places response body, passed through as received.
type PlaceCandidates = json.RawMessage

// JourneyResults is a journeys endpoint response body, passed through as received.
type JourneyResults = json.RawMessage

// PlaceOptions narrows a place search. Zero values mean "use the default".
type PlaceOptions struct {
	Types string
	Count int
}

// JourneyParams addresses /journeys with already-resolved place ids.
type JourneyParams struct {
	From     string
	To       string
	Count    int
	Datetime *time.Time
	Realtime *bool
}

// QueryParams addresses the free-text journey endpoints.
type QueryParams struct {
	FromQ    string `validate:"notblank"`
	ToQ      string `validate:"notblank"`
	Count    int    `validate:"gte=0"`
	Datetime *time.Time
	Realtime *bool
}

// SearchOptions selects which journey search the store runs.
type SearchOptions struct {
	LastOfDay bool
}

// SearchState is what the journey store exposes to its observers.
type SearchState struct {
	FromQ   string          `json:"from_q"`
	ToQ     string          `json:"to_q"`
	Results json.RawMessage `json:"results"`
	Loading bool            `json:"loading"`
	// Error is nil, the upstream error payload (json.RawMessage) or a message string.
	Error interface{} `json:"error"`
}

// PayloadError is a failure that may carry a structured body from the backend.
type PayloadError interface {
	error
	Payload() (json.RawMessage, bool)
}

// Bool returns a pointer to b, for the optional Realtime fields.
func Bool(b bool) *bool {
	return &b
}
