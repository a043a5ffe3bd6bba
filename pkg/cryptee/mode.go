package cryptee

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidMode = errors.New("invalid output mode")
)

// Mode selects the readable text framing of obfuscated output.
// It has no effect on the transform itself.
type Mode uint8

const (
	// Base64 frames output as standard Base64, optionally URL-safe and unpadded. This is the default.
	Base64 Mode = iota
	// Hex frames output as lowercase hexadecimal.
	Hex
)

func (m Mode) valid() bool {
	return m == Base64 || m == Hex
}

func (m Mode) String() string {
	switch m {
	case Base64:
		return "base64"
	case Hex:
		return "hex"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode accepts the names returned by Mode.String, ignoring case and surrounding space.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "base64", "b64":
		return Base64, nil
	case "hex":
		return Hex, nil
	default:
		return 0, fmt.Errorf("%w: '%s'", ErrInvalidMode, s)
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, uint8(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
