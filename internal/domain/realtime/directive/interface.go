package directive

import (
	"encoding/json"

	"github.com/scavhunt/backend/pkg/errorx"
)

const (
	JoinHuntDirectiveOp           = "join-hunt"
	LeaveHuntDirectiveOp          = "leave-hunt"
	RequestLeaderboardDirectiveOp = "request-leaderboard"
	ProgressUpdateDirectiveOp     = "progress-update"
	ChatMessageDirectiveOp        = "chat-message"
	RequestHintDirectiveOp        = "request-hint"
	LocationUpdateDirectiveOp     = "location-update"
	MessageDirectiveOp            = "message"
)

type Directive interface {
	Op() string

	// Validate rejects malformed input before anything touches storage.
	Validate() error
}

// ClientDirective is the envelope of every message sent by a client.
type ClientDirective struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Parse decodes and validates a client message.
func Parse(b []byte) (Directive, error) {
	var cd ClientDirective
	if err := json.Unmarshal(b, &cd); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid message format")
	}

	var d Directive
	switch cd.Event {
	case JoinHuntDirectiveOp:
		d = &JoinHuntDirective{}
	case LeaveHuntDirectiveOp:
		d = &LeaveHuntDirective{}
	case RequestLeaderboardDirectiveOp:
		d = &RequestLeaderboardDirective{}
	case ProgressUpdateDirectiveOp:
		d = &ProgressUpdateDirective{}
	case ChatMessageDirectiveOp:
		d = &ChatMessageDirective{}
	case RequestHintDirectiveOp:
		d = &RequestHintDirective{}
	case LocationUpdateDirectiveOp:
		d = &LocationUpdateDirective{}
	case MessageDirectiveOp:
		d = &MessageDirective{}
	default:
		return nil, errorx.New(errorx.BadRequest, "Unknown event %q", cd.Event)
	}

	if len(cd.Data) == 0 || string(cd.Data) == "null" {
		return nil, errorx.New(errorx.BadRequest, "Invalid %s: missing data", cd.Event)
	}

	if err := json.Unmarshal(cd.Data, d); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid %s: %v", cd.Event, err)
	}

	if err := d.Validate(); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid %s: %v", cd.Event, err)
	}

	return d, nil
}

// huntRef accepts both {"huntId": "..."} and a bare JSON string.
type huntRef struct {
	HuntID string `json:"huntId"`
}

func (r *huntRef) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err == nil {
		r.HuntID = id
		return nil
	}

	type plain huntRef
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}

	*r = huntRef(p)
	return nil
}
