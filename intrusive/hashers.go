package intrusive

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// StringHash hashes string keys with xxhash.
func StringHash(s string) uint64 { return xxhash.Sum64String(s) }

// BytesHash hashes a byte key with xxhash. Use it to build hashers for
// array keys, for example func(k [16]byte) uint64 { return BytesHash(k[:]) }.
func BytesHash(b []byte) uint64 { return xxhash.Sum64(b) }

// Uint64Hash hashes integer keys with xxhash over their little-endian bytes.
func Uint64Hash(k uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], k)
	return xxhash.Sum64(buf[:])
}
