// Copyright (c) 2019 The Decred developers
// Copyright (c) 2019-2021 The Lava developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ScriptTokenizer provides a facility for easily and efficiently tokenizing
// transaction scripts without creating allocations. It parses one opcode and
// its associated pushed data, if any, per Next call.
//
// Upon encountering any parse failure, such as a truncated data push, Next
// returns false and Err reports the failure. The tokenizer then refuses to
// advance any further.
type ScriptTokenizer struct {
	script []byte
	offset int
	op     byte
	data   []byte
	err    error
}

// MakeScriptTokenizer returns a script tokenizer for the passed script.
func MakeScriptTokenizer(script []byte) ScriptTokenizer {
	return ScriptTokenizer{script: script}
}

// Next attempts to parse the next opcode and returns whether or not it was
// successful. It will not be successful if invoked when already at the end of
// the script, or when the script is malformed.
func (t *ScriptTokenizer) Next() bool {
	if t.err != nil || t.offset >= len(t.script) {
		return false
	}

	op := t.script[t.offset]
	switch {
	// No additional data. Note that the small-int and marker opcodes carry
	// no payload even though some of them are "pushes" conceptually.
	case op > OP_DATA_75 && op != OP_PUSHDATA1 && op != OP_PUSHDATA2 &&
		op != OP_PUSHDATA4, op == OP_0:

		t.op = op
		t.data = nil
		t.offset++
		return true

	// Data pushes of specific lengths: the opcode itself is the length.
	case op >= OP_DATA_1 && op <= OP_DATA_75:
		length := int(op)
		if t.offset+1+length > len(t.script) {
			t.err = errors.Errorf("opcode %#x requires %d bytes, "+
				"but script only contains %d remaining",
				op, length, len(t.script)-t.offset-1)
			return false
		}
		t.op = op
		t.data = t.script[t.offset+1 : t.offset+1+length]
		t.offset += 1 + length
		return true

	// Data pushes with parsed lengths: OP_PUSHDATA{1,2,4}.
	default:
		var lengthSize int
		switch op {
		case OP_PUSHDATA1:
			lengthSize = 1
		case OP_PUSHDATA2:
			lengthSize = 2
		case OP_PUSHDATA4:
			lengthSize = 4
		}
		if t.offset+1+lengthSize > len(t.script) {
			t.err = errors.Errorf("opcode %#x requires %d length "+
				"bytes, but script only contains %d remaining",
				op, lengthSize, len(t.script)-t.offset-1)
			return false
		}

		var length int
		switch lengthSize {
		case 1:
			length = int(t.script[t.offset+1])
		case 2:
			length = int(binary.LittleEndian.Uint16(
				t.script[t.offset+1:]))
		case 4:
			length = int(binary.LittleEndian.Uint32(
				t.script[t.offset+1:]))
		}

		start := t.offset + 1 + lengthSize
		if start+length > len(t.script) {
			t.err = errors.Errorf("opcode %#x pushes %d bytes, "+
				"but script only contains %d remaining",
				op, length, len(t.script)-start)
			return false
		}
		t.op = op
		t.data = t.script[start : start+length]
		t.offset = start + length
		return true
	}
}

// Done returns true when either all opcodes have been exhausted or a parse
// failure was encountered and therefore the state has an associated error.
func (t *ScriptTokenizer) Done() bool {
	return t.err != nil || t.offset >= len(t.script)
}

// Opcode returns the current opcode associated with the tokenizer.
func (t *ScriptTokenizer) Opcode() byte {
	return t.op
}

// Data returns the data associated with the most recently successfully parsed
// opcode.
func (t *ScriptTokenizer) Data() []byte {
	return t.data
}

// Err returns any errors currently associated with the tokenizer.
func (t *ScriptTokenizer) Err() error {
	return t.err
}
