package cryptee

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFile_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	key := GenerateKey()
	require.NoError(t, WriteKeyFile(&buf, key, Hex))
	assert.Equal(t, 8+1+1+8+len(key), buf.Len())
	assert.Equal(t, []byte("CRYPTEE1"), buf.Bytes()[:8])

	got, mode, err := ReadKeyFile(&buf)
	require.NoError(t, err)
	assert.Equal(t, key, got)
	assert.Equal(t, Hex, mode)
}

func TestKeyFile_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.key")
	require.NoError(t, SaveKeyFile(path, []byte("abc_123"), Base64))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	key, mode, err := LoadKeyFile(path)
	require.NoError(t, err)
	assert.Equal(t, Key("abc_123"), key)
	assert.Equal(t, Base64, mode)

	_, _, err = LoadKeyFile(filepath.Join(t.TempDir(), "missing.key"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteKeyFile_Neg(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteKeyFile(&buf, []byte("short"), Base64), ErrInvalidKey)
	assert.ErrorIs(t, WriteKeyFile(&buf, []byte("abc_123"), Mode(9)), ErrInvalidMode)
	assert.Zero(t, buf.Len())
}

func TestReadKeyFile_Neg(t *testing.T) {
	valid := func(t *testing.T) []byte {
		var buf bytes.Buffer
		require.NoError(t, WriteKeyFile(&buf, []byte("abc_123"), Hex))
		return buf.Bytes()
	}
	tests := map[string]struct {
		mangle func([]byte) []byte
		target error
	}{
		"Empty": {
			mangle: func(b []byte) []byte { return nil },
			target: ErrInvalidKeyFile,
		},
		"Bad magic": {
			mangle: func(b []byte) []byte { b[0] = 'X'; return b },
			target: ErrInvalidKeyFile,
		},
		"Unknown version": {
			mangle: func(b []byte) []byte { b[8] = 2; return b },
			target: ErrInvalidKeyFile,
		},
		"Unknown mode": {
			mangle: func(b []byte) []byte { b[9] = 5; return b },
			target: ErrInvalidMode,
		},
		"Oversized key": {
			mangle: func(b []byte) []byte { b[10] = 0xff; return b },
			target: ErrInvalidKeyFile,
		},
		"Truncated key": {
			mangle: func(b []byte) []byte { return b[:len(b)-2] },
			target: ErrInvalidKeyFile,
		},
		"Invalid key": {
			mangle: func(b []byte) []byte { b[len(b)-4] = 'x'; return b },
			target: ErrInvalidKey,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := ReadKeyFile(bytes.NewReader(tc.mangle(valid(t))))
			assert.ErrorIs(t, err, tc.target)
			t.Log(err)
		})
	}
}
