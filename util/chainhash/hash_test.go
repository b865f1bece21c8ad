// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2019-2021 The Lava developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"bytes"
	"crypto/sha256"
	"testing"
)

// mainnetGenesisHash is the bitcoin genesis block hash, a convenient
// well-known value with leading zeros in display order.
var mainnetGenesisHash = Hash{
	0x6f, 0xe2, 0x8c, 0x0a, 0xb6, 0xf1, 0xb3, 0x72,
	0xc1, 0xa6, 0xa2, 0x46, 0xae, 0x63, 0xf7, 0x4f,
	0x93, 0x1e, 0x83, 0x65, 0xe1, 0x5a, 0x08, 0x9c,
	0x68, 0xd6, 0x19, 0x00, 0x00, 0x00, 0x00, 0x00,
}

const mainnetGenesisHashStr = "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f"

func TestHashString(t *testing.T) {
	if got := mainnetGenesisHash.String(); got != mainnetGenesisHashStr {
		t.Fatalf("TestHashString: got %s, want %s", got, mainnetGenesisHashStr)
	}
}

func TestNewHashFromStr(t *testing.T) {
	hash, err := NewHashFromStr(mainnetGenesisHashStr)
	if err != nil {
		t.Fatalf("TestNewHashFromStr: %s", err)
	}
	if !hash.IsEqual(&mainnetGenesisHash) {
		t.Fatalf("TestNewHashFromStr: got %s, want %s", hash, &mainnetGenesisHash)
	}

	// Short strings are zero padded on the left.
	short, err := NewHashFromStr("1")
	if err != nil {
		t.Fatalf("TestNewHashFromStr: short string: %s", err)
	}
	want := Hash{0x01}
	if *short != want {
		t.Fatalf("TestNewHashFromStr: short string decoded to %v", short)
	}

	if _, err := NewHashFromStr(mainnetGenesisHashStr + "00"); err != ErrHashStrSize {
		t.Fatalf("TestNewHashFromStr: oversized string yielded %v, want %v",
			err, ErrHashStrSize)
	}
	if _, err := NewHashFromStr("zz"); err == nil {
		t.Fatalf("TestNewHashFromStr: non-hex string decoded")
	}
}

func TestSetBytes(t *testing.T) {
	var hash Hash
	if err := hash.SetBytes(make([]byte, HashSize-1)); err == nil {
		t.Fatalf("TestSetBytes: short slice accepted")
	}
	if err := hash.SetBytes(mainnetGenesisHash.CloneBytes()); err != nil {
		t.Fatalf("TestSetBytes: %s", err)
	}
	if hash != mainnetGenesisHash {
		t.Fatalf("TestSetBytes: got %s, want %s", hash, mainnetGenesisHash)
	}
}

func TestHashFuncs(t *testing.T) {
	data := []byte("lava test vector")

	first := sha256.Sum256(data)
	if got := HashH(data); got != Hash(first) {
		t.Fatalf("TestHashFuncs: HashH mismatch")
	}
	if got := HashB(data); !bytes.Equal(got, first[:]) {
		t.Fatalf("TestHashFuncs: HashB mismatch")
	}

	second := sha256.Sum256(first[:])
	if got := DoubleHashH(data); got != Hash(second) {
		t.Fatalf("TestHashFuncs: DoubleHashH mismatch")
	}
	if got := DoubleHashB(data); !bytes.Equal(got, second[:]) {
		t.Fatalf("TestHashFuncs: DoubleHashB mismatch")
	}
}

func TestHashWriters(t *testing.T) {
	data := []byte("lava test vector")

	writer := NewHashWriter()
	if _, err := writer.Write(data[:4]); err != nil {
		t.Fatalf("TestHashWriters: Write: %s", err)
	}
	if _, err := writer.Write(data[4:]); err != nil {
		t.Fatalf("TestHashWriters: Write: %s", err)
	}
	if got, want := writer.Finalize(), HashH(data); got != want {
		t.Fatalf("TestHashWriters: HashWriter yielded %s, want %s", got, want)
	}

	doubleWriter := NewDoubleHashWriter()
	if _, err := doubleWriter.Write(data); err != nil {
		t.Fatalf("TestHashWriters: Write: %s", err)
	}
	if got, want := doubleWriter.Finalize(), DoubleHashH(data); got != want {
		t.Fatalf("TestHashWriters: DoubleHashWriter yielded %s, want %s", got, want)
	}
}
