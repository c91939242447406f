package directive

import "errors"

// CHAT MESSAGE
type ChatMessageDirective struct {
	HuntID   string `json:"huntId"`
	Message  string `json:"message"`
	UserName string `json:"userName"`
}

func (*ChatMessageDirective) Op() string { return ChatMessageDirectiveOp }

func (d *ChatMessageDirective) Validate() error {
	if d.HuntID == "" {
		return errMissingHuntID
	}

	if d.Message == "" {
		return errors.New("message is required")
	}

	return nil
}

// MESSAGE
type MessageDirective struct {
	Text     string `json:"text"`
	SenderID string `json:"senderId"`
}

func (*MessageDirective) Op() string { return MessageDirectiveOp }

func (d *MessageDirective) Validate() error {
	return nil
}
