package services

import (
	"errors"

	"github.com/dmitrijs2005/gliphic/internal/token"
)

var (
	ErrWrongPassphrase = errors.New("the passphrase does not open this share")
	ErrShareNotFound   = errors.New("share not found")
	ErrNoImage         = errors.New("group has no custom image")
	ErrNoGroupSelected = errors.New("no group is selected")
)

// MessageStatusError reports a reveal the server refused, for example an
// expired message.
type MessageStatusError struct {
	Status token.MessageStatus
}

func (e *MessageStatusError) Error() string { return e.Status.Describe() }
