package cryptee

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	bin "github.com/saylorsolutions/binmap"
)

const (
	keyFileMagic   uint64 = 0x4352595054454531 // "CRYPTEE1"
	keyFileVersion uint8  = 1
	maxKeyFileKey  uint64 = 64 * 1024
)

var (
	ErrInvalidKeyFile = errors.New("invalid key file")
)

type keyFileHeader struct {
	magic   uint64
	version uint8
	mode    uint8
	keyLen  uint64
}

func (h *keyFileHeader) mapper() bin.Mapper {
	return bin.MapSequence(
		bin.Int(&h.magic),
		bin.Byte(&h.version),
		bin.Byte(&h.mode),
		bin.Int(&h.keyLen),
	)
}

// WriteKeyFile writes the key and preferred Mode in the key file format.
// The key is validated first.
func WriteKeyFile(w io.Writer, key []byte, mode Mode) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if !mode.valid() {
		return fmt.Errorf("%w: %d", ErrInvalidMode, uint8(mode))
	}
	h := &keyFileHeader{
		magic:   keyFileMagic,
		version: keyFileVersion,
		mode:    uint8(mode),
		keyLen:  uint64(len(key)),
	}
	if err := h.mapper().Write(w, binary.BigEndian); err != nil {
		return fmt.Errorf("failed to write key file header: %w", err)
	}
	if _, err := w.Write(key); err != nil {
		return fmt.Errorf("failed to write key: %w", err)
	}
	return nil
}

// ReadKeyFile reads a key and Mode written by WriteKeyFile.
// The key is validated before it's returned.
func ReadKeyFile(r io.Reader) (Key, Mode, error) {
	h := new(keyFileHeader)
	if err := h.mapper().Read(r, binary.BigEndian); err != nil {
		return nil, 0, fmt.Errorf("%w: unable to read header: %w", ErrInvalidKeyFile, err)
	}
	if h.magic != keyFileMagic {
		return nil, 0, fmt.Errorf("%w: unrecognized file type", ErrInvalidKeyFile)
	}
	if h.version != keyFileVersion {
		return nil, 0, fmt.Errorf("%w: unsupported version %d", ErrInvalidKeyFile, h.version)
	}
	mode := Mode(h.mode)
	if !mode.valid() {
		return nil, 0, fmt.Errorf("%w: %w: %d", ErrInvalidKeyFile, ErrInvalidMode, h.mode)
	}
	if h.keyLen > maxKeyFileKey {
		return nil, 0, fmt.Errorf("%w: key length %d exceeds %d", ErrInvalidKeyFile, h.keyLen, maxKeyFileKey)
	}
	key := make(Key, h.keyLen)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, 0, fmt.Errorf("%w: truncated key: %w", ErrInvalidKeyFile, err)
	}
	if err := ValidateKey(key); err != nil {
		return nil, 0, err
	}
	return key, mode, nil
}

// SaveKeyFile writes a key file to path, readable only by the current user.
func SaveKeyFile(path string, key []byte, mode Mode) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteKeyFile(f, key, mode)
}

// LoadKeyFile reads a key file from path.
func LoadKeyFile(path string) (Key, Mode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = f.Close()
	}()
	return ReadKeyFile(f)
}
