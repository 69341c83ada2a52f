//
// hash.go
//
// Copyright (c) 2024 Markku Rossi
//
// All rights reserved.
//

package psi

import (
	"fmt"

	"lukechampine.com/blake3"
)

// HashKeySize is the width of the BLAKE3 key used to hash set elements
// down to fixed-width digests before they are fed to Compute.
const HashKeySize = 32

// HashDigestSize is the width, in bytes, of a hashed element.
const HashDigestSize = 16

// DefaultHashKey is the baked-in key used when a caller passes a nil key
// to HashStringsToFlat or HashBytes. It matches PSI_BLAKE3_DEFAULT_KEY in
// the reference implementation.
var DefaultHashKey = [HashKeySize]byte{
	0x42, 0x6c, 0x61, 0x6b, 0x65, 0x33, 0x2d, 0x50,
	0x53, 0x49, 0x2d, 0x44, 0x65, 0x6d, 0x6f, 0x2d,
	0x4b, 0x65, 0x79, 0x2d, 0x31, 0x32, 0x33, 0x34,
	0xaa, 0xbb, 0xcc, 0xdd, 0x55, 0x66, 0x77, 0x88,
}

// HashBytes hashes data under key (or DefaultHashKey if key is nil) and
// returns a HashDigestSize-byte digest suitable as a Compute element.
func HashBytes(data []byte, key *[HashKeySize]byte) ([HashDigestSize]byte, error) {
	k := DefaultHashKey
	if key != nil {
		k = *key
	}

	h := blake3.New(HashDigestSize, k[:])
	if len(data) > 0 {
		if _, err := h.Write(data); err != nil {
			return [HashDigestSize]byte{}, fmt.Errorf("psi: hash bytes: %w", err)
		}
	}
	var out [HashDigestSize]byte
	h.Sum(out[:0])
	return out, nil
}

// HashStringsToFlat hashes every string in strings under key (or
// DefaultHashKey if key is nil) and returns one HashDigestSize-byte
// digest per string, in order. An empty string hashes to the keyed hash
// of zero bytes, matching the reference implementation's treatment of a
// zero-length element.
func HashStringsToFlat(strings []string, key *[HashKeySize]byte) ([][HashDigestSize]byte, error) {
	out := make([][HashDigestSize]byte, len(strings))
	for i, s := range strings {
		digest, err := HashBytes([]byte(s), key)
		if err != nil {
			return nil, fmt.Errorf("psi: hash strings to flat: element %d: %w", i, err)
		}
		out[i] = digest
	}
	return out, nil
}
