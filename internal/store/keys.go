package store

import "sync"

// keyPool provides reusable byte slices for building database keys while
// walking indexes.
var keyPool = sync.Pool{
	New: func() any {
		// Prefixes are under 20 bytes, slugs and preset IDs well under 100.
		return make([]byte, 0, 128)
	},
}

// buildKey constructs a database key from prefix and suffix using a pooled buffer.
// The returned slice is valid until releaseKey is called.
//
//	key := buildKey(presetPrefix, presetID)
//	defer releaseKey(key)
//	item, err := txn.Get(key)
func buildKey(prefix, suffix string) []byte {
	buf, _ := keyPool.Get().([]byte)
	buf = buf[:0]
	buf = append(buf, prefix...)
	buf = append(buf, suffix...)
	return buf
}

// releaseKey returns a key buffer to the pool. The key must not be used afterwards.
func releaseKey(key []byte) {
	// Oversized buffers are left to the GC.
	if cap(key) <= 512 {
		keyPool.Put(key[:0])
	}
}
