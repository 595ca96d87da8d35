// Package validation checks the user-editable fields shared by contacts and
// groups. Every failure is a *FieldError whose message can be shown to the
// user as is and whose sentinel can be matched with errors.Is.
package validation

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/gliphic/internal/base256"
)

const (
	ContactNameMinLen = 2
	ContactNameMaxLen = 32

	GroupNameMinLen = 2
	GroupNameMaxLen = 32

	GroupDescriptionMinLen = 1
	GroupDescriptionMaxLen = 200

	// GroupIDLen is measured in base256 symbols.
	GroupIDLen = 12
	// ContactIDLen is measured in base64 characters.
	ContactIDLen = 12
)

// PunctuationAndSymbols lists the non alphanumeric characters, besides the
// space, allowed in names and descriptions.
const PunctuationAndSymbols = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var (
	ErrEmpty            = errors.New("empty value")
	ErrNotPrintable     = errors.New("illegal characters")
	ErrEndSpace         = errors.New("leading or trailing space")
	ErrConsecutiveChars = errors.New("consecutive punctuation or symbols")
	ErrAdjacentMarks    = errors.New("adjacent quotation mark and apostrophe")
	ErrLength           = errors.New("invalid length")
	ErrIDLength         = errors.New("invalid id length")
	ErrIDCharacters     = errors.New("invalid id characters")
	ErrNegativeNumber   = errors.New("negative number")
	ErrImage            = errors.New("invalid image")
)

// FieldError describes a rejected field value.
type FieldError struct {
	Field string
	Err   error
	Msg   string
}

func (e *FieldError) Error() string { return e.Msg }

func (e *FieldError) Unwrap() error { return e.Err }

func fieldError(field string, err error, format string, args ...any) error {
	return &FieldError{Field: field, Err: err, Msg: fmt.Sprintf(format, args...)}
}

// Kind selects the wording and limits used for a name.
type Kind int

const (
	Contact Kind = iota
	Group
)

func (k Kind) String() string {
	if k == Group {
		return "group"
	}
	return "contact"
}

func (k Kind) subject() string {
	if k == Group {
		return "A group name"
	}
	return "Your chosen contact name"
}

func (k Kind) nameLimits() (int, int) {
	if k == Group {
		return GroupNameMinLen, GroupNameMaxLen
	}
	return ContactNameMinLen, ContactNameMaxLen
}

func isPunctuationOrSymbol(r rune) bool {
	return r == ' ' || strings.ContainsRune(PunctuationAndSymbols, r)
}

func isLegal(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return isPunctuationOrSymbol(r)
}

// IsPrintable reports whether s only holds English letters, digits, the
// space and PunctuationAndSymbols.
func IsPrintable(s string) bool {
	for _, r := range s {
		if !isLegal(r) {
			return false
		}
	}
	return true
}

func hasConsecutive(s string) bool {
	var prev rune
	for i, r := range s {
		if i > 0 && r == prev && isPunctuationOrSymbol(r) {
			return true
		}
		prev = r
	}
	return false
}

func hasAdjacentMarks(s string) bool {
	return strings.Contains(s, `"'`) || strings.Contains(s, `'"`)
}

func illegalCharsMsg(subject string) string {
	return subject + " cannot contain any illegal characters. Legal characters are uppercase and lowercase " +
		"English letters, the digits 0 to 9, the space character and the following characters:\n" +
		PunctuationAndSymbols
}

// CheckName validates a contact or group name.
func CheckName(kind Kind, name string) error {
	subject := kind.subject()
	field := kind.String() + " name"
	minLen, maxLen := kind.nameLimits()

	switch {
	case name == "":
		return fieldError(field, ErrEmpty, "You must choose a %s name.", kind)
	case !IsPrintable(name):
		return fieldError(field, ErrNotPrintable, "%s", illegalCharsMsg(subject))
	case strings.HasPrefix(name, " ") || strings.HasSuffix(name, " "):
		return fieldError(field, ErrEndSpace, "%s cannot start or end with a space.", subject)
	case hasConsecutive(name):
		return fieldError(field, ErrConsecutiveChars,
			"%s cannot contain the same space, punctuation or symbol character twice in a row.", subject)
	case hasAdjacentMarks(name):
		return fieldError(field, ErrAdjacentMarks,
			"%s cannot contain adjacent quotation marks and apostrophes.", subject)
	}

	if n := utf8.RuneCountInString(name); n < minLen || n > maxLen {
		return fieldError(field, ErrLength, "%s must be between %d and %d characters (inclusive).",
			subject, minLen, maxLen)
	}
	return nil
}

// CheckDescription validates a group description. Uniqueness among known
// groups is enforced by the directory, not here.
func CheckDescription(description string) error {
	const field = "group description"
	switch {
	case description == "":
		return fieldError(field, ErrEmpty, "You must choose a group description.")
	case !IsPrintable(description):
		return fieldError(field, ErrNotPrintable, "%s", illegalCharsMsg("A group description"))
	}
	if n := utf8.RuneCountInString(description); n < GroupDescriptionMinLen || n > GroupDescriptionMaxLen {
		return fieldError(field, ErrLength, "A group description must be between %d and %d characters (inclusive).",
			GroupDescriptionMinLen, GroupDescriptionMaxLen)
	}
	return nil
}

// CheckGroupID validates the base256 form of a group id.
func CheckGroupID(id string) error {
	if base256.Len(id) != GroupIDLen {
		return fieldError("group id", ErrIDLength, "The group ID must have %d characters.", GroupIDLen)
	}
	if !base256.IsValidString(id) {
		return fieldError("group id", ErrIDCharacters, "The group ID contains invalid character(s).")
	}
	return nil
}

// CheckContactID validates a contact id, which is kept in base64 form.
func CheckContactID(id string) error {
	if len(id) != ContactIDLen {
		return fieldError("contact id", ErrIDLength, "The contact ID must have %d characters.", ContactIDLen)
	}
	if _, err := base64.StdEncoding.DecodeString(id); err != nil {
		return fieldError("contact id", ErrIDCharacters, "The contact ID contains invalid character(s).")
	}
	return nil
}

// CheckContactNumber rejects negative contact numbers.
func CheckContactNumber(number int64) error {
	if number < 0 {
		return fieldError("contact number", ErrNegativeNumber, "Contact number '%d' is negative.", number)
	}
	return nil
}

// CheckGroupNumber rejects negative group numbers.
func CheckGroupNumber(number int64) error {
	if number < 0 {
		return fieldError("group number", ErrNegativeNumber, "Group number is negative: %d", number)
	}
	return nil
}

// DecodeImage decodes a display image sent in base64. An empty string is a
// missing image and decodes to nil.
func DecodeImage(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fieldError("image", ErrImage, "The image could not be decoded: %v", err)
	}
	return b, nil
}
