package common

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// KeySize is the width in bytes of every key subjected to membership checks.
const KeySize = 32

// Key is a fixed-width account identifier. It is comparable and usable
// directly as a map key.
type Key [KeySize]byte

// ParseKey decodes a base58-encoded key string as returned by the RPC node.
func ParseKey(s string) (Key, error) {
	var k Key
	raw, err := base58.Decode(s)
	if err != nil {
		return k, fmt.Errorf("parse key %q: %w", s, err)
	}
	if len(raw) != KeySize {
		return k, fmt.Errorf("parse key %q: got %d bytes, want %d", s, len(raw), KeySize)
	}
	copy(k[:], raw)
	return k, nil
}

// String renders the key in base58, the same form the RPC node uses.
func (k Key) String() string {
	return base58.Encode(k[:])
}
