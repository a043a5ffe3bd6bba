package cryptee

const tableSize = 256

// table is the permutation state walked by the keystream.
// It's always a full array, so a slot that was never seeded simply reads as 0.
type table [tableSize]byte

// schedule derives the initial table from the key.
//
// Two quirks are part of the ciphertext format and must not be corrected:
//   - The key byte used for slot i is key[(i % len(key)) + 1], and reading one past the end of the key yields 0.
//   - Only slots 0 through 254 are scheduled, slot 255 is never the source of a swap.
//
// With legacy set, slot 255 starts at 0 instead of 255.
func schedule(key []byte, legacy bool) table {
	var (
		cnt    table
		lookup [tableSize - 1]byte
		l      = len(key)
	)
	for i := range lookup {
		if pos := i%l + 1; pos < l {
			lookup[i] = key[pos]
		}
	}
	for i := range cnt {
		cnt[i] = byte(i)
	}
	if legacy {
		cnt[tableSize-1] = 0
	}

	var x byte
	for i := range lookup {
		x += cnt[i] + lookup[i]
		cnt[i], cnt[x] = cnt[x], cnt[i]
	}
	return cnt
}
