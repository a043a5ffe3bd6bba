package cryptee

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedInput = errors.New("malformed input")

	toURLSafe   = strings.NewReplacer("+", "-", "/", "_")
	fromURLSafe = strings.NewReplacer("-", "+", "_", "/")
)

func (m Mode) frame(data []byte, translate bool) string {
	if m == Hex {
		return hex.EncodeToString(data)
	}
	text := base64.StdEncoding.EncodeToString(data)
	if translate {
		text = strings.TrimRight(toURLSafe.Replace(text), "=")
	}
	return text
}

// unframe accepts Base64 with or without trailing padding.
func (m Mode) unframe(text string, translate bool) ([]byte, error) {
	if m == Hex {
		data, err := hex.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("%w: hex: %w", ErrMalformedInput, err)
		}
		return data, nil
	}
	if translate {
		text = fromURLSafe.Replace(text)
	}
	data, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(text, "="))
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %w", ErrMalformedInput, err)
	}
	return data, nil
}
