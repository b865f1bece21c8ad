// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2019-2021 The Lava developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/blockinator/lava/util/binaryserializer"
	"github.com/blockinator/lava/util/chainhash"
)

const (
	// TxVersion is the current latest supported transaction version.
	TxVersion = 1

	// MaxTxInSequenceNum is the maximum sequence number a transaction
	// input can be.
	MaxTxInSequenceNum uint32 = math.MaxUint32

	// MaxPrevOutIndex is the maximum index the index field of a previous
	// outpoint can be. A coinbase input carries this index with a zero
	// previous hash.
	MaxPrevOutIndex uint32 = math.MaxUint32

	// OutpointSize is the serialized size of an Outpoint: 32 bytes of
	// transaction hash plus 4 bytes of output index.
	OutpointSize = chainhash.HashSize + 4

	// defaultTxInOutAlloc is the default size used for the backing arrays
	// for transaction inputs and outputs.
	defaultTxInOutAlloc = 4

	// maxTxInOutPerMessage caps the announced count of inputs or outputs
	// a deserialized transaction may carry.
	maxTxInOutPerMessage = 1 << 17
)

// zeroHash is the zero value for a chainhash.Hash and is defined as a
// package level variable to avoid the need to create a new instance every
// time a check is needed.
var zeroHash chainhash.Hash

// Outpoint defines a lava data type that is used to track previous
// transaction outputs.
type Outpoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// NewOutpoint returns a new lava transaction outpoint with the provided hash
// and index.
func NewOutpoint(hash *chainhash.Hash, index uint32) *Outpoint {
	return &Outpoint{
		Hash:  *hash,
		Index: index,
	}
}

// String returns the Outpoint in the human-readable form "hash:index".
func (o Outpoint) String() string {
	return fmt.Sprintf("%s:%d", o.Hash, o.Index)
}

// Serialize encodes the outpoint to w: the transaction hash followed by the
// little-endian output index, 36 bytes in total.
func (o *Outpoint) Serialize(w io.Writer) error {
	_, err := w.Write(o.Hash[:])
	if err != nil {
		return errors.WithStack(err)
	}
	return binaryserializer.PutUint32(w, o.Index)
}

// Deserialize decodes an outpoint from r.
func (o *Outpoint) Deserialize(r io.Reader) error {
	_, err := io.ReadFull(r, o.Hash[:])
	if err != nil {
		return errors.WithStack(err)
	}
	o.Index, err = binaryserializer.Uint32(r)
	return err
}

// Bytes returns the 36-byte serialization of the outpoint.
func (o *Outpoint) Bytes() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, OutpointSize))
	_ = o.Serialize(buf)
	return buf.Bytes()
}

// TxIn defines a lava transaction input.
type TxIn struct {
	PreviousOutpoint Outpoint
	SignatureScript  []byte
	Sequence         uint32
}

// NewTxIn returns a new lava transaction input with the provided previous
// outpoint and signature script with a default sequence.
func NewTxIn(prevOut *Outpoint, signatureScript []byte) *TxIn {
	return &TxIn{
		PreviousOutpoint: *prevOut,
		SignatureScript:  signatureScript,
		Sequence:         MaxTxInSequenceNum,
	}
}

// TxOut defines a lava transaction output.
type TxOut struct {
	Value        int64
	ScriptPubKey []byte
}

// NewTxOut returns a new lava transaction output with the provided value and
// locking script.
func NewTxOut(value int64, scriptPubKey []byte) *TxOut {
	return &TxOut{
		Value:        value,
		ScriptPubKey: scriptPubKey,
	}
}

// MsgTx implements the Message interface and represents a lava transaction.
type MsgTx struct {
	Version  int32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

// NewMsgTx returns a new lava transaction with the given version and no
// inputs or outputs yet.
func NewMsgTx(version int32) *MsgTx {
	return &MsgTx{
		Version: version,
		TxIn:    make([]*TxIn, 0, defaultTxInOutAlloc),
		TxOut:   make([]*TxOut, 0, defaultTxInOutAlloc),
	}
}

// AddTxIn adds a transaction input to the message.
func (msg *MsgTx) AddTxIn(ti *TxIn) {
	msg.TxIn = append(msg.TxIn, ti)
}

// AddTxOut adds a transaction output to the message.
func (msg *MsgTx) AddTxOut(to *TxOut) {
	msg.TxOut = append(msg.TxOut, to)
}

// IsCoinBase determines whether or not a transaction is a coinbase: a special
// transaction created by miners that has exactly one input whose previous
// outpoint refers to no transaction at all.
func (msg *MsgTx) IsCoinBase() bool {
	if len(msg.TxIn) != 1 {
		return false
	}

	prevOut := &msg.TxIn[0].PreviousOutpoint
	return prevOut.Index == MaxPrevOutIndex && prevOut.Hash == zeroHash
}

// IsNull returns whether the transaction carries no inputs and no outputs.
func (msg *MsgTx) IsNull() bool {
	return len(msg.TxIn) == 0 && len(msg.TxOut) == 0
}

// ValueOut returns the total value, in lele, of all of the transaction's
// outputs.
func (msg *MsgTx) ValueOut() int64 {
	var total int64
	for _, txOut := range msg.TxOut {
		total += txOut.Value
	}
	return total
}

// TxHash generates the hash of the transaction: the double sha256 of its
// serialization.
func (msg *MsgTx) TxHash() chainhash.Hash {
	writer := chainhash.NewDoubleHashWriter()
	// Serialization into a hash writer cannot fail.
	_ = msg.Serialize(writer)
	return writer.Finalize()
}

// Serialize encodes the transaction to w using the lava wire format.
func (msg *MsgTx) Serialize(w io.Writer) error {
	err := binaryserializer.PutUint32(w, uint32(msg.Version))
	if err != nil {
		return err
	}

	err = WriteVarInt(w, uint64(len(msg.TxIn)))
	if err != nil {
		return err
	}
	for _, ti := range msg.TxIn {
		err = ti.PreviousOutpoint.Serialize(w)
		if err != nil {
			return err
		}
		err = WriteVarBytes(w, ti.SignatureScript)
		if err != nil {
			return err
		}
		err = binaryserializer.PutUint32(w, ti.Sequence)
		if err != nil {
			return err
		}
	}

	err = WriteVarInt(w, uint64(len(msg.TxOut)))
	if err != nil {
		return err
	}
	for _, to := range msg.TxOut {
		err = binaryserializer.PutUint64(w, uint64(to.Value))
		if err != nil {
			return err
		}
		err = WriteVarBytes(w, to.ScriptPubKey)
		if err != nil {
			return err
		}
	}

	return binaryserializer.PutUint32(w, msg.LockTime)
}

// Deserialize decodes a transaction from r using the lava wire format.
func (msg *MsgTx) Deserialize(r io.Reader) error {
	version, err := binaryserializer.Uint32(r)
	if err != nil {
		return err
	}
	msg.Version = int32(version)

	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if count > maxTxInOutPerMessage {
		return errors.Errorf("too many input transactions to fit into "+
			"max message size [count %d, max %d]", count,
			maxTxInOutPerMessage)
	}
	msg.TxIn = make([]*TxIn, 0, count)
	for i := uint64(0); i < count; i++ {
		ti := &TxIn{}
		err = ti.PreviousOutpoint.Deserialize(r)
		if err != nil {
			return err
		}
		ti.SignatureScript, err = ReadVarBytes(r, "transaction input signature script")
		if err != nil {
			return err
		}
		ti.Sequence, err = binaryserializer.Uint32(r)
		if err != nil {
			return err
		}
		msg.TxIn = append(msg.TxIn, ti)
	}

	count, err = ReadVarInt(r)
	if err != nil {
		return err
	}
	if count > maxTxInOutPerMessage {
		return errors.Errorf("too many output transactions to fit into "+
			"max message size [count %d, max %d]", count,
			maxTxInOutPerMessage)
	}
	msg.TxOut = make([]*TxOut, 0, count)
	for i := uint64(0); i < count; i++ {
		to := &TxOut{}
		value, err := binaryserializer.Uint64(r)
		if err != nil {
			return err
		}
		to.Value = int64(value)
		to.ScriptPubKey, err = ReadVarBytes(r, "transaction output script")
		if err != nil {
			return err
		}
		msg.TxOut = append(msg.TxOut, to)
	}

	msg.LockTime, err = binaryserializer.Uint32(r)
	return err
}
