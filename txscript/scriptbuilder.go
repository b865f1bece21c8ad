// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2019-2021 The Lava developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// maxScriptElementSize is the maximum number of bytes a single data push may
// carry.
const maxScriptElementSize = 520

// ScriptBuilder provides a facility for building custom scripts. It allows
// you to push opcodes, ints and data while respecting canonical encoding.
//
// A couple of simple pay-to-somebody scripts:
//
//	builder := txscript.NewScriptBuilder()
//	builder.AddInt64(lockHeight).AddOp(txscript.OP_CHECKLOCKTIMEVERIFY)
//	builder.AddOp(txscript.OP_DROP).AddData(pubKey)
//	builder.AddOp(txscript.OP_CHECKSIG)
//	script, err := builder.Script()
type ScriptBuilder struct {
	script []byte
	err    error
}

// NewScriptBuilder returns a new instance of a script builder.
func NewScriptBuilder() *ScriptBuilder {
	return &ScriptBuilder{}
}

// AddOp pushes the passed opcode to the end of the script.
func (b *ScriptBuilder) AddOp(opcode byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	b.script = append(b.script, opcode)
	return b
}

// AddData pushes the passed data to the end of the script using the canonical
// encoding: small values become small-int opcodes, short slices use direct
// pushes, longer slices use the minimal OP_PUSHDATA variant.
func (b *ScriptBuilder) AddData(data []byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	dataLen := len(data)
	if dataLen > maxScriptElementSize {
		b.err = errors.Errorf("adding a data element of %d bytes "+
			"exceeds the maximum allowed script element size of %d",
			dataLen, maxScriptElementSize)
		return b
	}

	switch {
	// Zero and the small integers are encoded as opcodes.
	case dataLen == 0 || (dataLen == 1 && data[0] == 0):
		b.script = append(b.script, OP_0)
		return b
	case dataLen == 1 && data[0] <= 16:
		b.script = append(b.script, (OP_1-1)+data[0])
		return b
	case dataLen == 1 && data[0] == 0x81:
		b.script = append(b.script, OP_1NEGATE)
		return b

	case dataLen <= OP_DATA_75:
		b.script = append(b.script, byte(dataLen))
	case dataLen <= 0xff:
		b.script = append(b.script, OP_PUSHDATA1, byte(dataLen))
	case dataLen <= 0xffff:
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(dataLen))
		b.script = append(b.script, OP_PUSHDATA2)
		b.script = append(b.script, buf...)
	default:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(dataLen))
		b.script = append(b.script, OP_PUSHDATA4)
		b.script = append(b.script, buf...)
	}

	b.script = append(b.script, data...)
	return b
}

// AddInt64 pushes the passed integer to the end of the script.
func (b *ScriptBuilder) AddInt64(val int64) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	// Fast path for small integers and OP_1NEGATE.
	if val == 0 {
		b.script = append(b.script, OP_0)
		return b
	}
	if val == -1 || (val >= 1 && val <= 16) {
		b.script = append(b.script, byte((OP_1-1)+val))
		return b
	}

	return b.AddData(ScriptNumBytes(val))
}

// Script returns the currently built script. When any errors occurred while
// building the script, the script will be returned up to the point of the
// first error along with the error.
func (b *ScriptBuilder) Script() ([]byte, error) {
	return b.script, b.err
}
