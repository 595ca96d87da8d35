// Package base256 maps every byte value to one printable rune of a fixed
// 256-symbol alphabet, so binary blobs (group ids, nonces, ciphertext) can be
// pasted into any text field and read back exactly.
//
// The alphabet starts with the 64 URL-safe ASCII symbols followed by Latin-1
// and Latin Extended-A letters. It never contains the token tag characters
// '|' and '~', which keeps encoded data from being confused with tags.
package base256

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalidSymbol is returned by Decode when the input holds a rune that is
// not part of the alphabet.
var ErrInvalidSymbol = errors.New("base256: invalid symbol")

var (
	alphabet [256]rune
	index    = make(map[rune]byte, 256)
)

func init() {
	i := 0
	add := func(r rune) {
		alphabet[i] = r
		index[r] = byte(i)
		i++
	}
	for r := '0'; r <= '9'; r++ {
		add(r)
	}
	for r := 'A'; r <= 'Z'; r++ {
		add(r)
	}
	for r := 'a'; r <= 'z'; r++ {
		add(r)
	}
	add('-')
	add('_')
	for r := rune(0x00C0); r <= 0x00FF; r++ {
		if r == 0x00D7 || r == 0x00F7 {
			continue
		}
		add(r)
	}
	for r := rune(0x0100); i < len(alphabet); r++ {
		add(r)
	}
}

// Encode returns the alphabet symbol of every byte in b, in order.
func Encode(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) * 2)
	for _, c := range b {
		sb.WriteRune(alphabet[c])
	}
	return sb.String()
}

// Decode is the inverse of Encode.
func Decode(s string) ([]byte, error) {
	out := make([]byte, 0, utf8.RuneCountInString(s))
	pos := 0
	for _, r := range s {
		b, ok := index[r]
		if !ok {
			return nil, fmt.Errorf("%w %q at position %d", ErrInvalidSymbol, r, pos)
		}
		out = append(out, b)
		pos++
	}
	return out, nil
}

// IsValidString reports whether every rune of s belongs to the alphabet.
func IsValidString(s string) bool {
	for _, r := range s {
		if _, ok := index[r]; !ok {
			return false
		}
	}
	return true
}

// Len returns the number of symbols in s, which equals the number of bytes
// it decodes to.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// FromBase64 converts a standard base64 string, the form ids travel in
// between client and server, into its alphabet form.
func FromBase64(s string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("base256: %w", err)
	}
	return Encode(b), nil
}

// ToBase64 converts an alphabet string back to standard base64.
func ToBase64(s string) (string, error) {
	b, err := Decode(s)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
