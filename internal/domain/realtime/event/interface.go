package event

import (
	"encoding/json"
	"time"
)

type Event interface {
	Op() string
}

// Metadata selects the sessions an event is delivered to.
type Metadata struct {
	// HuntID restricts delivery to the sessions in the hunt room. Empty means
	// every session.
	HuntID string `json:"hunt_id,omitempty"`

	// Except is the id of a session which must not receive the event.
	Except string `json:"except,omitempty"`
}

// EventRequest is an encoded event on its way to one or more sessions.
type EventRequest struct {
	Op       string          `json:"o"`
	Data     json.RawMessage `json:"d"`
	Metadata Metadata        `json:"m"`
}

type EventResponse struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func New(ev Event, metadata Metadata) (*EventRequest, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}

	return &EventRequest{
		Op:       ev.Op(),
		Data:     data,
		Metadata: metadata,
	}, nil
}

// Format returns the bytes written to the websocket for req.
func Format(req *EventRequest) ([]byte, error) {
	return json.Marshal(EventResponse{Event: req.Op, Data: req.Data})
}

func Now() time.Time {
	return time.Now().UTC()
}
