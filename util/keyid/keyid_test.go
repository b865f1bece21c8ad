// Copyright (c) 2019-2021 The Lava developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keyid

import (
	"testing"

	"github.com/btcsuite/btcutil"
)

func TestKeyIDFromPubKeyBytes(t *testing.T) {
	pubKey := []byte{
		0x02, 0x4f, 0x35, 0x5b, 0xdc, 0xb7, 0xcc, 0x0a, 0xf7, 0x28,
		0xef, 0x3c, 0xce, 0xb9, 0x61, 0x5d, 0x90, 0x68, 0x4b, 0xb5,
		0xb2, 0xca, 0x5f, 0x85, 0x9a, 0xb0, 0xf0, 0xb7, 0x04, 0x07,
		0x58, 0x71, 0xaa,
	}

	id := FromPubKeyBytes(pubKey)
	want, err := New(btcutil.Hash160(pubKey))
	if err != nil {
		t.Fatalf("TestKeyIDFromPubKeyBytes: New: %s", err)
	}
	if id != want {
		t.Fatalf("TestKeyIDFromPubKeyBytes: got %s, want %s", id, want)
	}
	if id.IsZero() {
		t.Fatalf("TestKeyIDFromPubKeyBytes: derived id is zero")
	}
}

func TestKeyIDStringRoundTrip(t *testing.T) {
	var id KeyID
	for i := range id {
		id[i] = byte(i)
	}

	decoded, err := FromString(id.String())
	if err != nil {
		t.Fatalf("TestKeyIDStringRoundTrip: FromString: %s", err)
	}
	if decoded != id {
		t.Fatalf("TestKeyIDStringRoundTrip: got %s, want %s", decoded, id)
	}

	if _, err := FromString("zz"); err == nil {
		t.Fatalf("TestKeyIDStringRoundTrip: non-hex string decoded")
	}
	if _, err := FromString("abcd"); err == nil {
		t.Fatalf("TestKeyIDStringRoundTrip: short string decoded")
	}
}

func TestKeyIDPlotID(t *testing.T) {
	id := KeyID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0xff, 0xff}
	// The plot id reads the first eight bytes as a little-endian uint64.
	if got, want := id.PlotID(), uint64(0x0807060504030201); got != want {
		t.Fatalf("TestKeyIDPlotID: got %#x, want %#x", got, want)
	}
}

func TestKeyIDNew(t *testing.T) {
	if _, err := New(make([]byte, Length-1)); err == nil {
		t.Fatalf("TestKeyIDNew: short slice accepted")
	}
	if _, err := New(make([]byte, Length+1)); err == nil {
		t.Fatalf("TestKeyIDNew: long slice accepted")
	}

	var zero KeyID
	if !zero.IsZero() {
		t.Fatalf("TestKeyIDNew: zero value not reported as zero")
	}
}

func TestKeyIDCloneBytes(t *testing.T) {
	id := KeyID{0xaa}
	clone := id.CloneBytes()
	clone[0] = 0xbb
	if id[0] != 0xaa {
		t.Fatalf("TestKeyIDCloneBytes: mutating the clone changed the id")
	}
}
