package directory

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotLoaded is returned when a list or singleton has never been loaded
	// in this session, as opposed to being loaded and empty.
	ErrNotLoaded = errors.New("not loaded")

	ErrContactNotFound = errors.New("contact not found")
	ErrGroupNotFound   = errors.New("group not found")

	ErrDuplicateID          = errors.New("duplicate id")
	ErrDuplicateDescription = errors.New("duplicate description")

	ErrCurrentContactOverwrite = errors.New("current contact overwrite")
	ErrCurrentContactInList    = errors.New("current contact found in a target list")
	ErrImmutableContactType    = errors.New("immutable contact type")
	ErrNotTargetContact        = errors.New("contact is not a known or extended contact")
	ErrInvalidContactType      = errors.New("invalid contact type")

	ErrNoGroupKey = errors.New("group key is not loaded")
	ErrKeyLoaded  = errors.New("group key is already loaded")
	ErrInvalidKey = errors.New("invalid group key")
)

// NotLoadedError names the list or value that has not been loaded yet.
type NotLoadedError struct {
	What string
}

func (e *NotLoadedError) Error() string { return e.What + ": not loaded" }

func (e *NotLoadedError) Unwrap() error { return ErrNotLoaded }

func notLoaded(what string) error { return &NotLoadedError{What: what} }

// ConsistencyError is raised for uniqueness and singleton violations. Msg is
// suitable for showing to the user.
type ConsistencyError struct {
	Err error
	Msg string
}

func (e *ConsistencyError) Error() string { return e.Msg }

func (e *ConsistencyError) Unwrap() error { return e.Err }

func consistencyError(err error, format string, args ...any) error {
	return &ConsistencyError{Err: err, Msg: fmt.Sprintf(format, args...)}
}

// BulkError aggregates the failures of a bulk operation. Elements that did
// not fail have already been applied.
type BulkError struct {
	Failed int
	Total  int
	Noun   string
	Action string
	Errs   []error
}

func (e *BulkError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("The following errors prevented %d out of %d %s from being %s: %s",
		e.Failed, e.Total, e.Noun, e.Action, strings.Join(msgs, "; "))
}

func (e *BulkError) Unwrap() []error { return e.Errs }

func bulkError(noun, action string, total int, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &BulkError{Failed: len(errs), Total: total, Noun: noun, Action: action, Errs: errs}
}
