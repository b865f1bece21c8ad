// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2019-2021 The Lava developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

// These constants are the values of the official opcodes used on the wire for
// the small subset of script this package deals with.
const (
	OP_0                   = 0x00
	OP_DATA_1              = 0x01
	OP_DATA_75             = 0x4b
	OP_PUSHDATA1           = 0x4c
	OP_PUSHDATA2           = 0x4d
	OP_PUSHDATA4           = 0x4e
	OP_1NEGATE             = 0x4f
	OP_1                   = 0x51
	OP_16                  = 0x60
	OP_RETURN              = 0x6a
	OP_DROP                = 0x75
	OP_DUP                 = 0x76
	OP_EQUALVERIFY         = 0x88
	OP_HASH160             = 0xa9
	OP_CHECKSIG            = 0xac
	OP_CHECKLOCKTIMEVERIFY = 0xb1
)

// IsSmallInt returns whether the opcode is considered a small integer, which
// is OP_0 along with OP_1 through OP_16.
func IsSmallInt(op byte) bool {
	return op == OP_0 || (op >= OP_1 && op <= OP_16)
}

// AsSmallInt returns the numeric value the passed small-integer opcode
// represents.
func AsSmallInt(op byte) int64 {
	if op == OP_0 {
		return 0
	}
	return int64(op - (OP_1 - 1))
}
