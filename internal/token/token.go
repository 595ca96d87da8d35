// Package token implements the published text format: a tagged, printable
// string carrying a group id, an IV and the server-wrapped cipher text.
//
// Encrypting is Compose (local encryption under the group key), a server
// round trip that wraps the cipher text together with its time-out, then
// Finalize. Decrypting is Parse, a server round trip that validates and
// reveals the cipher text, then Decrypt.
package token

import (
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/gliphic/internal/base256"
	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/cryptox"
	"github.com/dmitrijs2005/gliphic/internal/directory"
	"github.com/dmitrijs2005/gliphic/internal/validation"
)

const (
	StartTag = "|~"
	EndTag   = "~|"

	// IVLen is the size of the per message IV.
	IVLen = cryptox.NonceLen

	// NoTimeOut marks a message that never expires.
	NoTimeOut int64 = 0

	// MaxTimeOutHorizon is how far in the future, in seconds, a time-out may
	// be set: 1000 Julian years.
	MaxTimeOutHorizon int64 = 31_557_600_000
)

// minTextLen is the shortest text that can hold both tags, a group id and at
// least one body symbol.
var minTextLen = len([]rune(StartTag)) + validation.GroupIDLen + len([]rune(EndTag)) + 1

// Token is one message in either direction. Fields are filled in as the
// protocol progresses; see the getters.
type Token struct {
	group             *directory.Group
	iv                []byte
	plainText         []byte
	rawCipherText     []byte
	timeOutCipherText []byte
	publishedText     string
	timeOut           int64
}

func (t *Token) Group() *directory.Group { return t.group }
func (t *Token) IV() []byte              { return t.iv }

// PlainText is set by Compose and by a successful Decrypt.
func (t *Token) PlainText() []byte { return t.plainText }

// RawCipherText is the message encrypted under the group key only.
func (t *Token) RawCipherText() []byte { return t.rawCipherText }

// TimeOutCipherText is the opaque server blob.
func (t *Token) TimeOutCipherText() []byte { return t.timeOutCipherText }

// PublishedText is set once Finalize ran or when the token was parsed.
func (t *Token) PublishedText() string { return t.publishedText }

// TimeOut is the expiry in Unix seconds, or NoTimeOut.
func (t *Token) TimeOut() int64 { return t.timeOut }

// CheckTimeOut reports whether timeOut is NoTimeOut or lies strictly after
// now and no further than MaxTimeOutHorizon ahead.
func CheckTimeOut(timeOut int64, now time.Time) error {
	if timeOut == NoTimeOut {
		return nil
	}
	current := now.Unix()
	if timeOut <= current || timeOut > current+MaxTimeOutHorizon {
		return fmt.Errorf("%w: %d", ErrInvalidTimeOut, timeOut)
	}
	return nil
}

// Compose encrypts plainText under the key currently loaded on g with a
// fresh IV. The key is read, not retained; the caller closes its key scope
// as soon as Compose returns.
func Compose(plainText string, timeOut int64, g *directory.Group, now time.Time) (*Token, error) {
	if plainText == "" {
		return nil, ErrEmptyPlainText
	}
	if err := CheckTimeOut(timeOut, now); err != nil {
		return nil, err
	}
	key, err := g.Key()
	if err != nil {
		return nil, err
	}

	iv := cryptox.NewNonce()
	pt := []byte(plainText)
	ct, err := cryptox.Seal(key, iv, pt, nil)
	if err != nil {
		return nil, fmt.Errorf("encrypting message: %w", err)
	}

	return &Token{
		group:         g,
		iv:            iv,
		plainText:     pt,
		rawCipherText: ct,
		timeOut:       timeOut,
	}, nil
}

// Finalize stores the server blob and builds the published text.
func (t *Token) Finalize(serverBlob []byte) error {
	if t.rawCipherText == nil || t.group == nil {
		return ErrNotComposed
	}
	if len(serverBlob) == 0 {
		return ErrEmptyBlob
	}
	t.timeOutCipherText = slices.Clone(serverBlob)

	body := make([]byte, 0, len(t.iv)+len(serverBlob))
	body = append(body, t.iv...)
	body = append(body, serverBlob...)
	t.publishedText = StartTag + t.group.ID() + base256.Encode(body) + EndTag
	return nil
}

// ParseResult is what Parse found. Exactly one of Token and UnknownGroupID
// is set. UnknownGroupID means the group is not known locally yet: fetch it
// and parse again.
type ParseResult struct {
	Token          *Token
	UnknownGroupID string
}

// NeedsFetch reports whether the text names a group that must be loaded
// before the token can be used.
func (r ParseResult) NeedsFetch() bool { return r.Token == nil && r.UnknownGroupID != "" }

// Parse checks the structure of text and resolves its group through dir.
// Format problems and unusable groups come back as a *ParseError; a group
// that is simply not loaded is reported through ParseResult.
func Parse(dir *directory.Directory, text string) (ParseResult, error) {
	if text == "" {
		return ParseResult{}, &ParseError{Err: ErrEmptyText}
	}
	runes := []rune(text)
	if len(runes) < minTextLen {
		return ParseResult{}, parseError(ErrTooShort, "%d", len(runes))
	}

	startLen, endLen := len([]rune(StartTag)), len([]rune(EndTag))
	if start := string(runes[:startLen]); start != StartTag {
		return ParseResult{}, parseError(ErrBadStartTag, "%s", start)
	}
	if end := string(runes[len(runes)-endLen:]); end != EndTag {
		return ParseResult{}, parseError(ErrBadEndTag, "%s", end)
	}

	inner := runes[startLen : len(runes)-endLen]
	groupID := string(inner[:validation.GroupIDLen])
	cipherMsg := string(inner[validation.GroupIDLen:])

	if err := validation.CheckGroupID(groupID); err != nil {
		return ParseResult{}, &ParseError{Err: ErrInvalidGroupID}
	}

	body, err := base256.Decode(cipherMsg)
	if err != nil {
		return ParseResult{}, parseError(ErrMalformedBody, "%v", err)
	}
	if len(body) <= IVLen {
		return ParseResult{}, parseError(ErrMessageTooShort, "%d", len(body))
	}

	g, err := dir.GroupByID(groupID)
	if err != nil {
		return ParseResult{UnknownGroupID: groupID}, nil
	}

	perms := g.Permissions()
	switch {
	case !perms.IsActive() && perms.IsDenied():
		return ParseResult{}, parseError(ErrInactiveAndDenied, "group ID %s", groupID)
	case !perms.IsActive():
		return ParseResult{}, parseError(ErrInactive, "group ID %s", groupID)
	case perms.IsDenied():
		return ParseResult{}, parseError(ErrDenied, "group ID %s", groupID)
	}

	return ParseResult{Token: &Token{
		group:             g,
		iv:                slices.Clone(body[:IVLen]),
		timeOutCipherText: slices.Clone(body[IVLen:]),
		publishedText:     text,
	}}, nil
}

// Decrypt recovers the plain text of a parsed token from the server's reveal
// response. The group key is decrypted with dataKey and groupKeyIV, used
// once, then wiped. On failure the token has no plain text and the error is
// ErrDecryption.
func (t *Token) Decrypt(timeOut int64, rawCipherText, encryptedGroupKey, groupKeyIV, dataKey []byte) error {
	t.plainText = nil
	if t.iv == nil || len(rawCipherText) == 0 || len(encryptedGroupKey) == 0 ||
		len(groupKeyIV) == 0 || len(dataKey) == 0 {
		return ErrDecryption
	}

	groupKey, err := cryptox.Open(dataKey, groupKeyIV, encryptedGroupKey, nil)
	if err != nil {
		return ErrDecryption
	}
	defer common.WipeByteArray(groupKey)

	pt, err := cryptox.Open(groupKey, t.iv, rawCipherText, nil)
	if err != nil {
		return ErrDecryption
	}

	t.timeOut = timeOut
	t.rawCipherText = slices.Clone(rawCipherText)
	t.plainText = pt
	return nil
}
