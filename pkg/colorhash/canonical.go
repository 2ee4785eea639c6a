package colorhash

import (
	"fmt"
	"hash/crc32"
)

// Canonicalizer is implemented by values that want to be hashed by a string
// other than their display form. It takes precedence over fmt.Stringer.
type Canonicalizer interface {
	CanonicalString() string
}

// CanonicalString returns the string that is hashed for v.
//
// Values implementing Canonicalizer use CanonicalString; everything else uses
// fmt.Sprint, which honors fmt.Stringer and error. The result is only as
// stable as that string form: maps print with sorted keys, but pointers print
// their address and change between runs.
func CanonicalString(v any) string {
	if c, ok := v.(Canonicalizer); ok {
		return c.CanonicalString()
	}
	return fmt.Sprint(v)
}

// Canonical returns the UTF-8 bytes of CanonicalString(v).
func Canonical(v any) []byte {
	return []byte(CanonicalString(v))
}

// Checksum returns the IEEE CRC-32 of b, the same checksum zlib computes.
// An empty slice yields 0.
func Checksum(b []byte) uint32 {
	return crc32.ChecksumIEEE(b)
}

// CRC32Hash returns the checksum of v's canonical string.
func CRC32Hash(v any) uint32 {
	return Checksum(Canonical(v))
}
