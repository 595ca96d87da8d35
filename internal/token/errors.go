package token

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPlainText = errors.New("cannot compose a token with an empty plain text message")
	ErrInvalidTimeOut = errors.New("invalid time-out")
	ErrNotComposed    = errors.New("token has no raw cipher text to publish")
	ErrEmptyBlob      = errors.New("server blob is empty")

	ErrEmptyText         = errors.New("empty published text")
	ErrTooShort          = errors.New("too-little published text length")
	ErrBadStartTag       = errors.New("incorrect start tag")
	ErrBadEndTag         = errors.New("incorrect end tag")
	ErrInvalidGroupID    = errors.New("invalid group ID")
	ErrMalformedBody     = errors.New("malformed cipher message")
	ErrMessageTooShort   = errors.New("too few decoded cipher message bytes")
	ErrInactiveAndDenied = errors.New("inactive and access denied group")
	ErrInactive          = errors.New("inactive group")
	ErrDenied            = errors.New("access denied group")

	// ErrDecryption covers every failure of Token.Decrypt. It never carries
	// key material or library detail.
	ErrDecryption = errors.New("message could not be decrypted")
)

// ParseError is returned by Parse. Err is one of the parse sentinels and
// Detail the offending value, if any.
type ParseError struct {
	Err    error
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return "cannot parse published text: " + e.Err.Error()
	}
	return fmt.Sprintf("cannot parse published text: %s: %s", e.Err, e.Detail)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseError(err error, format string, args ...any) error {
	return &ParseError{Err: err, Detail: fmt.Sprintf(format, args...)}
}
