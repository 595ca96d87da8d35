package models

import "time"

// Share is a group key sealed by one user for another, waiting to be
// accepted.
type Share struct {
	ID         string
	GroupID    string
	FromUserID string
	ToUserID   string
	SealedKey  []byte
	SealNonce  []byte
	CreatedAt  time.Time
}
