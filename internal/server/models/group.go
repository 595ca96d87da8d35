package models

import "time"

// Group is the shared part of a group. Per-user state lives in Membership.
type Group struct {
	ID          string
	RawID       []byte
	Name        string
	Description string
	ImageBase64 string
	// ImageKey is the object storage key of a custom image, empty if none.
	ImageKey  string
	Open      bool
	CreatedAt time.Time
}

// Membership links a user to a group under the user's own group number.
type Membership struct {
	UserID            string
	GroupID           string
	Number            int64
	Permissions       int
	EncryptedGroupKey []byte
	GroupKeyIV        []byte
}

// MemberGroup is a membership joined with its group.
type MemberGroup struct {
	Membership
	Group Group
}
