package cryptee

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	DefaultKeyLength = 128
	MinKeyLength     = 6
	// Punctuation lists the bytes of which at least one must appear in a valid key.
	Punctuation = `_=&".+-*?'`

	printableMin = 33
	printableMax = 126
)

var (
	ErrInvalidKey = errors.New("invalid key")
)

// Key is a passphrase used to derive the keystream of a Cipher.
type Key []byte

// KeyError is returned when a key fails validation.
// Suggested is a freshly generated key that would pass validation.
type KeyError struct {
	Reason    string
	Suggested Key
}

func (e *KeyError) Error() string {
	return fmt.Sprintf(
		"%s: %s\nKey length must be at least %d chars and contain alpha-numeric & punctuation chars!\nPick up this random key generated for once: '%s'",
		ErrInvalidKey, e.Reason, MinKeyLength, strings.ReplaceAll(string(e.Suggested), "'", `\'`),
	)
}

func (e *KeyError) Unwrap() error {
	return ErrInvalidKey
}

// ValidateKey checks that key is at least MinKeyLength bytes, and contains both an ASCII alpha-numeric byte and a byte from Punctuation.
// A non-nil error is always a *KeyError.
func ValidateKey(key []byte) error {
	if reason := checkKey(key); len(reason) > 0 {
		return &KeyError{
			Reason:    reason,
			Suggested: GenerateKey(),
		}
	}
	return nil
}

func checkKey(key []byte) string {
	if len(key) < MinKeyLength {
		return fmt.Sprintf("key is %d bytes, expected at least %d", len(key), MinKeyLength)
	}
	var alnum, punct bool
	for _, b := range key {
		switch {
		case isAlnum(b):
			alnum = true
		case strings.IndexByte(Punctuation, b) >= 0:
			punct = true
		}
		if alnum && punct {
			return ""
		}
	}
	if !alnum {
		return "key has no alpha-numeric characters"
	}
	return fmt.Sprintf("key has none of the characters %s", Punctuation)
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// GenerateKey will generate a key of printable ASCII characters, each drawn uniformly from the range [33,126].
// DefaultKeyLength is used if no length, or a length <= 0, is given.
// Keys of at least MinKeyLength are redrawn until they pass ValidateKey, so the result can always be passed to New.
//
// The generator is not cryptographically secure.
func GenerateKey(length ...int) Key {
	n := DefaultKeyLength
	if len(length) > 0 && length[0] > 0 {
		n = length[0]
	}
	key := make(Key, n)
	for {
		for i := range key {
			key[i] = byte(printableMin + rand.IntN(printableMax-printableMin+1))
		}
		if n < MinKeyLength || len(checkKey(key)) == 0 {
			return key
		}
	}
}
