// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account together with its public contact identity.
type User struct {
	ID       string
	UserName string
	Salt     []byte
	Verifier []byte
	// ContactNumber is the number other users see this user under.
	ContactNumber int64
	// ContactID is the 12-character base64 id users exchange to become
	// known contacts.
	ContactID string
	CreatedAt time.Time
}
