// Package permissions describes a user's standing inside a group.
package permissions

import (
	"errors"
	"fmt"
)

// ErrInvalidPermissions is returned for a code that maps to no State.
var ErrInvalidPermissions = errors.New("permissions object cannot be null or invalid")

// State combines an active/inactive axis with a role. The integer value is
// the code exchanged with the server.
type State int

const (
	ActiveOwner State = iota
	ActiveMember
	ActiveDistributor
	ActiveRevoker
	ActiveDenied
	InactiveOwner
	InactiveMember
	InactiveDistributor
	InactiveRevoker
	InactiveDenied
)

// roles is the number of roles on each axis.
const roles = 5

var names = [...]string{
	"active-owner",
	"active-member",
	"active-distributor",
	"active-revoker",
	"active-denied",
	"inactive-owner",
	"inactive-member",
	"inactive-distributor",
	"inactive-revoker",
	"inactive-denied",
}

// FromCode returns the State for a server supplied code.
func FromCode(code int) (State, error) {
	s := State(code)
	if !s.valid() {
		return 0, fmt.Errorf("%w: code %d", ErrInvalidPermissions, code)
	}
	return s, nil
}

// Parse returns the State named name, as printed by String.
func Parse(name string) (State, error) {
	for i, n := range names {
		if n == name {
			return State(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPermissions, name)
}

func (s State) valid() bool { return s >= ActiveOwner && s <= InactiveDenied }

// Code returns the wire code of s.
func (s State) Code() int { return int(s) }

// IsActive reports whether s is any of the active values.
func (s State) IsActive() bool { return s.valid() && s < InactiveOwner }

// IsDenied reports whether s is ActiveDenied or InactiveDenied.
func (s State) IsDenied() bool { return s == ActiveDenied || s == InactiveDenied }

// Deactivate returns the inactive value with the same role.
func (s State) Deactivate() State {
	if s.IsActive() {
		return s + roles
	}
	return s
}

// Activate returns the active value with the same role.
func (s State) Activate() State {
	if s.valid() && !s.IsActive() {
		return s - roles
	}
	return s
}

func (s State) String() string {
	if !s.valid() {
		return fmt.Sprintf("invalid(%d)", int(s))
	}
	return names[s]
}
