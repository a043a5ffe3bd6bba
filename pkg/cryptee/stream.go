package cryptee

import (
	"crypto/cipher"
)

var _ cipher.Stream = (*keystream)(nil)

// keystream walks a table one byte at a time, mutating it in place.
//
// Both indices start at -1.
// The remainder keeps the sign of the running sum, so y stays at -1 for as long as the walk only reads zero slots.
// While it does, the swap targets a phantom slot outside the table that always holds 0, the table is left untouched, and the keystream byte is cnt[0].
type keystream struct {
	cnt table
	x   byte
	y   int
}

func newKeystream(cnt table) *keystream {
	return &keystream{
		cnt: cnt,
		x:   tableSize - 1,
		y:   -1,
	}
}

func (k *keystream) next() byte {
	k.x++
	if k.y < 0 {
		if k.cnt[k.x] == 0 {
			return k.cnt[0]
		}
		k.y = int(k.cnt[k.x]) - 1
	} else {
		k.y = (k.y + int(k.cnt[k.x])) % tableSize
	}
	y := byte(k.y)
	k.cnt[k.x], k.cnt[y] = k.cnt[y], k.cnt[k.x]
	return k.cnt[k.cnt[k.x]+k.cnt[y]]
}

// XORKeyStream XORs each byte of src with the next keystream byte, writing to dst.
// Like the standard library streams, dst must be at least as long as src, and the two may only overlap exactly.
func (k *keystream) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("cryptee: output smaller than input")
	}
	for i, b := range src {
		dst[i] = b ^ k.next()
	}
}
