package cryptee

import (
	"bytes"
	"strings"
	"testing"
)

func FuzzCryptRoundTrip(f *testing.F) {
	f.Add([]byte("The quick brown fox"), "abc_123", false)
	f.Add([]byte{}, "abc_12", true)
	f.Add([]byte{0, 1, 2, 3, 255}, "kb7_12", false)
	f.Add(make([]byte, 1024), "p4ss.word", true)

	f.Fuzz(func(t *testing.T, data []byte, key string, legacy bool) {
		if ValidateKey([]byte(key)) != nil {
			return
		}
		opts := []Option{}
		if legacy {
			opts = append(opts, LegacySchedule())
		}
		c, err := New([]byte(key), opts...)
		if err != nil {
			t.Fatalf("valid key rejected: %v", err)
		}
		once := c.Crypt(data)
		if len(once) != len(data) {
			t.Fatalf("length changed from %d to %d", len(data), len(once))
		}
		if !bytes.Equal(c.Crypt(once), data) {
			t.Errorf("round trip failed for data len %d", len(data))
		}
	})
}

func FuzzFramingRoundTrip(f *testing.F) {
	f.Add([]byte("hello"), false, false)
	f.Add([]byte{0xfb, 0xff, 0xfe}, false, true)
	f.Add([]byte("some text"), true, false)

	f.Fuzz(func(t *testing.T, data []byte, hex bool, translate bool) {
		opts := []Option{UseBase64()}
		if hex {
			opts = []Option{UseHex()}
		}
		c, err := New([]byte("abc_123"), opts...)
		if err != nil {
			t.Fatal(err)
		}
		encoded := c.Encode(data, translate)
		if translate && !hex && strings.ContainsAny(encoded, "+/=") {
			t.Errorf("translated output contains unsafe characters: %s", encoded)
		}
		decoded, err := c.Decode(encoded, translate)
		if err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if !bytes.Equal(decoded, data) {
			t.Errorf("framing round trip failed for data len %d", len(data))
		}
	})
}

func FuzzDecode(f *testing.F) {
	f.Add("5lujAwo=", false)
	f.Add("e65ba3030a", true)
	f.Add("not valid at all", false)

	f.Fuzz(func(t *testing.T, input string, hex bool) {
		opts := []Option{}
		if hex {
			opts = append(opts, UseHex())
		}
		c, err := New([]byte("abc_123"), opts...)
		if err != nil {
			t.Fatal(err)
		}
		// Malformed input must produce an error, never a panic.
		_, _ = c.Decode(input)
		_, _ = c.Decode(input, true)
	})
}
