package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable           = errors.New("server unavailable")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrLocalDataNotAvailable = errors.New("local data unavailable")
	ErrUnknownGroup          = errors.New("unknown group")
	ErrForbidden             = errors.New("not allowed")
	ErrRejected              = errors.New("request rejected")
)

// UnknownGroupError is returned when the server has no group with Number for
// the current user. It matches ErrUnknownGroup.
type UnknownGroupError struct {
	Number int64
}

func (e *UnknownGroupError) Error() string {
	return fmt.Sprintf("unknown group number %d", e.Number)
}

func (e *UnknownGroupError) Is(target error) bool { return target == ErrUnknownGroup }
