package cryptee

import (
	"crypto/cipher"
	"fmt"
)

// Cipher applies the reversible transform using a validated key.
// It's immutable once created, and safe for concurrent use since every operation derives its own state from the key.
type Cipher struct {
	key    Key
	mode   Mode
	legacy bool
}

// Option configures a Cipher in New.
// If any Option returns an error, then construction ceases and the error is returned.
type Option = func(*Cipher) error

// WithMode sets the output framing.
func WithMode(mode Mode) Option {
	return func(c *Cipher) error {
		if !mode.valid() {
			return fmt.Errorf("%w: %d", ErrInvalidMode, uint8(mode))
		}
		c.mode = mode
		return nil
	}
}

// UseHex is shorthand for WithMode(Hex).
func UseHex() Option {
	return WithMode(Hex)
}

// UseBase64 is shorthand for WithMode(Base64).
func UseBase64() Option {
	return WithMode(Base64)
}

// LegacySchedule leaves the last slot of the scheduled table at 0 rather than 255.
// This is needed to read and produce output compatible with deployments that never seeded that slot.
// Output only differs from the default once the keystream walk reads the last slot.
func LegacySchedule() Option {
	return func(c *Cipher) error {
		c.legacy = true
		return nil
	}
}

// New validates the key and creates a Cipher with the given options.
// The key is copied, so the caller may reuse its slice.
// Base64 is the default Mode.
func New(key []byte, opts ...Option) (*Cipher, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	c := &Cipher{
		key:  append(Key(nil), key...),
		mode: Base64,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Mode returns the output framing of this Cipher.
func (c *Cipher) Mode() Mode {
	return c.mode
}

// Stream returns a new keystream positioned at the first byte.
// A Stream holds running state and must not be shared between goroutines.
func (c *Cipher) Stream() cipher.Stream {
	return c.keystream()
}

func (c *Cipher) keystream() *keystream {
	return newKeystream(schedule(c.key, c.legacy))
}

// Crypt applies the transform to input, returning a new slice of the same length.
// The transform is its own inverse, so Crypt(Crypt(input)) returns the original input.
func (c *Cipher) Crypt(input []byte) []byte {
	out := make([]byte, len(input))
	c.keystream().XORKeyStream(out, input)
	return out
}

// Encode transforms input and frames it as text according to the Cipher's Mode.
// In Base64 mode, passing true for translate produces URL-safe output without padding. It's ignored in Hex mode.
func (c *Cipher) Encode(input []byte, translate ...bool) string {
	return c.mode.frame(c.Crypt(input), optional(translate))
}

// Decode reverses Encode.
// The same translate value given to Encode must be given here.
// An error wrapping ErrMalformedInput is returned if input isn't valid for the Cipher's Mode.
func (c *Cipher) Decode(input string, translate ...bool) ([]byte, error) {
	data, err := c.mode.unframe(input, optional(translate))
	if err != nil {
		return nil, err
	}
	return c.Crypt(data), nil
}

// EncodeString is a convenience for Encode with a string input.
func (c *Cipher) EncodeString(input string, translate ...bool) string {
	return c.Encode([]byte(input), translate...)
}

// DecodeString is a convenience for Decode that returns the plain text as a string.
func (c *Cipher) DecodeString(input string, translate ...bool) (string, error) {
	data, err := c.Decode(input, translate...)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func optional(val []bool) bool {
	return len(val) > 0 && val[0]
}
