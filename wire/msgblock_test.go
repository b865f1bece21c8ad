// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2019-2021 The Lava developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/blockinator/lava/util/chainhash"
)

func testBlock() *MsgBlock {
	block := NewMsgBlock(&BlockHeader{
		Version:    1,
		PrevBlock:  testHash(0x01),
		MerkleRoot: testHash(0x02),
		Timestamp:  0x5be3fdc0,
		Bits:       0x1d00ffff,
		Nonce:      0x9962e301,
	})
	block.AddTransaction(testTx())
	return block
}

// TestBlockHeaderSerialize tests serializing and deserializing block
// headers.
func TestBlockHeaderSerialize(t *testing.T) {
	header := &testBlock().Header

	buf := &bytes.Buffer{}
	if err := header.Serialize(buf); err != nil {
		t.Fatalf("TestBlockHeaderSerialize: Serialize: %s", err)
	}
	if buf.Len() != blockHeaderLen {
		t.Fatalf("TestBlockHeaderSerialize: serialized to %d bytes, want %d",
			buf.Len(), blockHeaderLen)
	}

	var decoded BlockHeader
	if err := decoded.Deserialize(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("TestBlockHeaderSerialize: Deserialize: %s", err)
	}
	if decoded != *header {
		t.Fatalf("TestBlockHeaderSerialize: got %s, want %s",
			spew.Sdump(decoded), spew.Sdump(*header))
	}

	// The block hash is the double sha256 of exactly this serialization.
	if got, want := header.BlockHash(), chainhash.DoubleHashH(buf.Bytes()); got != want {
		t.Fatalf("TestBlockHeaderSerialize: BlockHash is %s, want %s", got, want)
	}
}

// TestBlockSerialize tests serializing and deserializing whole blocks.
func TestBlockSerialize(t *testing.T) {
	block := testBlock()

	serialized, err := block.Bytes()
	if err != nil {
		t.Fatalf("TestBlockSerialize: Bytes: %s", err)
	}

	var decoded MsgBlock
	if err := decoded.Deserialize(bytes.NewReader(serialized)); err != nil {
		t.Fatalf("TestBlockSerialize: Deserialize: %s", err)
	}
	if !reflect.DeepEqual(&decoded, block) {
		t.Fatalf("TestBlockSerialize: got %s, want %s",
			spew.Sdump(&decoded), spew.Sdump(block))
	}

	if got, want := decoded.BlockHash(), block.BlockHash(); got != want {
		t.Fatalf("TestBlockSerialize: BlockHash is %s, want %s", got, want)
	}

	// Truncating the transaction payload must error out.
	var truncated MsgBlock
	if err := truncated.Deserialize(bytes.NewReader(serialized[:blockHeaderLen+2])); err == nil {
		t.Fatalf("TestBlockSerialize: truncated block decoded")
	}
}
