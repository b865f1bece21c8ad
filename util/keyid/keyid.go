// Copyright (c) 2019-2021 The Lava developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keyid

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcutil"
)

// Length of array used to store a key id. See KeyID.
const Length = 20

// KeyID is the identity of a public key: ripemd160(sha256(pubkey)). The zero
// value denotes an absent identity and is a valid "no relation" marker.
type KeyID [Length]byte

// FromPubKeyBytes derives the key id of the given serialized public key.
func FromPubKeyBytes(pubKey []byte) KeyID {
	var id KeyID
	copy(id[:], btcutil.Hash160(pubKey))
	return id
}

// New returns a KeyID from a byte slice. An error is returned if the number
// of bytes passed in is not Length.
func New(data []byte) (KeyID, error) {
	var id KeyID
	if len(data) != Length {
		return id, fmt.Errorf("invalid key id length of %d, want %d",
			len(data), Length)
	}
	copy(id[:], data)
	return id, nil
}

// FromString returns a KeyID from its hexadecimal form.
func FromString(s string) (KeyID, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return KeyID{}, err
	}
	return New(data)
}

// PlotID derives the legacy numeric plotter id of the identity: the
// little-endian uint64 over the first eight bytes of the key id.
func (id KeyID) PlotID() uint64 {
	return binary.LittleEndian.Uint64(id[:8])
}

// IsZero returns true when the id is the zero identity, i.e. absent.
func (id KeyID) IsZero() bool {
	return id == KeyID{}
}

// String returns the key id in its hexadecimal form.
func (id KeyID) String() string {
	return hex.EncodeToString(id[:])
}

// CloneBytes returns a copy of the bytes which represent the id as a byte
// slice.
func (id *KeyID) CloneBytes() []byte {
	newID := make([]byte, Length)
	copy(newID, id[:])
	return newID
}
