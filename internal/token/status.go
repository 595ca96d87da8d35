package token

import "fmt"

// MessageStatus is the server's verdict on a token it was asked to reveal.
type MessageStatus int

const (
	StatusSuccess MessageStatus = iota
	StatusInactiveAndDenied
	StatusInactive
	StatusDenied
	StatusMalformed
	StatusExpired
)

// MessageStatusFromCode converts a wire code.
func MessageStatusFromCode(code int) (MessageStatus, error) {
	s := MessageStatus(code)
	if s < StatusSuccess || s > StatusExpired {
		return 0, fmt.Errorf("unknown message status code %d", code)
	}
	return s, nil
}

func (s MessageStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusInactiveAndDenied:
		return "inactive and denied"
	case StatusInactive:
		return "inactive"
	case StatusDenied:
		return "denied"
	case StatusMalformed:
		return "malformed"
	case StatusExpired:
		return "expired"
	}
	return fmt.Sprintf("MessageStatus(%d)", int(s))
}

// Describe returns a sentence suitable for showing to the user.
func (s MessageStatus) Describe() string {
	switch s {
	case StatusSuccess:
		return "The message was decrypted."
	case StatusInactiveAndDenied:
		return "You are not an active member of this group and your access to it has been denied."
	case StatusInactive:
		return "You are not an active member of this group."
	case StatusDenied:
		return "Your access to this group has been denied."
	case StatusMalformed:
		return "The message is malformed."
	case StatusExpired:
		return "The message has expired."
	}
	return s.String()
}
