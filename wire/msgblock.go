// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2019-2021 The Lava developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/blockinator/lava/util/binaryserializer"
	"github.com/blockinator/lava/util/chainhash"
)

// maxTxPerBlock caps the announced transaction count of a deserialized
// block.
const maxTxPerBlock = 1 << 17

// blockHeaderLen is the serialized length of a block header.
const blockHeaderLen = 4 + chainhash.HashSize*2 + 4 + 4 + 8

// BlockHeader defines information about a block and is used in the lava
// block (MsgBlock) message.
type BlockHeader struct {
	Version    int32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  uint32
	Bits       uint32
	Nonce      uint64
}

// BlockHash computes the block identifier hash for the given block header.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	writer := chainhash.NewDoubleHashWriter()
	// Serialization into a hash writer cannot fail.
	_ = h.Serialize(writer)
	return writer.Finalize()
}

// Serialize encodes the block header to w.
func (h *BlockHeader) Serialize(w io.Writer) error {
	err := binaryserializer.PutUint32(w, uint32(h.Version))
	if err != nil {
		return err
	}
	_, err = w.Write(h.PrevBlock[:])
	if err != nil {
		return errors.WithStack(err)
	}
	_, err = w.Write(h.MerkleRoot[:])
	if err != nil {
		return errors.WithStack(err)
	}
	err = binaryserializer.PutUint32(w, h.Timestamp)
	if err != nil {
		return err
	}
	err = binaryserializer.PutUint32(w, h.Bits)
	if err != nil {
		return err
	}
	return binaryserializer.PutUint64(w, h.Nonce)
}

// Deserialize decodes a block header from r.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	version, err := binaryserializer.Uint32(r)
	if err != nil {
		return err
	}
	h.Version = int32(version)
	_, err = io.ReadFull(r, h.PrevBlock[:])
	if err != nil {
		return errors.WithStack(err)
	}
	_, err = io.ReadFull(r, h.MerkleRoot[:])
	if err != nil {
		return errors.WithStack(err)
	}
	h.Timestamp, err = binaryserializer.Uint32(r)
	if err != nil {
		return err
	}
	h.Bits, err = binaryserializer.Uint32(r)
	if err != nil {
		return err
	}
	h.Nonce, err = binaryserializer.Uint64(r)
	return err
}

// MsgBlock implements the Message interface and represents a lava block
// message. It is used to deliver block and transaction information.
type MsgBlock struct {
	Header       BlockHeader
	Transactions []*MsgTx
}

// NewMsgBlock returns a new lava block message with the given header and no
// transactions yet.
func NewMsgBlock(header *BlockHeader) *MsgBlock {
	return &MsgBlock{
		Header:       *header,
		Transactions: make([]*MsgTx, 0),
	}
}

// AddTransaction adds a transaction to the message.
func (msg *MsgBlock) AddTransaction(tx *MsgTx) {
	msg.Transactions = append(msg.Transactions, tx)
}

// BlockHash computes the block identifier hash for this block.
func (msg *MsgBlock) BlockHash() chainhash.Hash {
	return msg.Header.BlockHash()
}

// Serialize encodes the block to w using the lava wire format.
func (msg *MsgBlock) Serialize(w io.Writer) error {
	err := msg.Header.Serialize(w)
	if err != nil {
		return err
	}

	err = WriteVarInt(w, uint64(len(msg.Transactions)))
	if err != nil {
		return err
	}
	for _, tx := range msg.Transactions {
		err = tx.Serialize(w)
		if err != nil {
			return err
		}
	}
	return nil
}

// Deserialize decodes a block from r using the lava wire format.
func (msg *MsgBlock) Deserialize(r io.Reader) error {
	err := msg.Header.Deserialize(r)
	if err != nil {
		return err
	}

	txCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if txCount > maxTxPerBlock {
		return errors.Errorf("too many transactions to fit into a block "+
			"[count %d, max %d]", txCount, maxTxPerBlock)
	}

	msg.Transactions = make([]*MsgTx, 0, txCount)
	for i := uint64(0); i < txCount; i++ {
		tx := MsgTx{}
		err := tx.Deserialize(r)
		if err != nil {
			return err
		}
		msg.Transactions = append(msg.Transactions, &tx)
	}

	return nil
}

// Bytes returns the serialized form of the block.
func (msg *MsgBlock) Bytes() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, blockHeaderLen))
	err := msg.Serialize(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
