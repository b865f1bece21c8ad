// Copyright (c) 2015-2017 The btcsuite developers
// Copyright (c) 2019-2021 The Lava developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "github.com/pkg/errors"

// maxScriptNumLen is the maximum number of bytes a script number pushed by
// this chain may occupy. Lock heights require up to 5 bytes.
const maxScriptNumLen = 5

// ScriptNumBytes returns the number serialized in the script number format:
// little-endian, sign bit in the most significant bit of the last byte,
// minimal length.
func ScriptNumBytes(n int64) []byte {
	// Zero encodes as an empty byte slice.
	if n == 0 {
		return nil
	}

	isNegative := n < 0
	if isNegative {
		n = -n
	}

	result := make([]byte, 0, 9)
	for n > 0 {
		result = append(result, byte(n&0xff))
		n >>= 8
	}

	// When the most significant byte already has the high bit set, an
	// additional byte is required to hold the sign bit.
	if result[len(result)-1]&0x80 != 0 {
		extraByte := byte(0x00)
		if isNegative {
			extraByte = 0x80
		}
		result = append(result, extraByte)
	} else if isNegative {
		result[len(result)-1] |= 0x80
	}

	return result
}

// ParseScriptNum interprets the passed serialized bytes as an encoded script
// number. An error is returned when the serialization is longer than
// maxScriptNumLen bytes.
func ParseScriptNum(v []byte) (int64, error) {
	if len(v) > maxScriptNumLen {
		return 0, errors.Errorf("numeric value encoded as %x is %d "+
			"bytes which exceeds the max allowed of %d", v, len(v),
			maxScriptNumLen)
	}

	if len(v) == 0 {
		return 0, nil
	}

	var result int64
	for i, val := range v {
		result |= int64(val) << uint8(8*i)
	}

	// When the most significant byte of the input has the sign bit set, the
	// result is negative. Remove the sign bit and negate.
	if v[len(v)-1]&0x80 != 0 {
		result &= ^(int64(0x80) << uint8(8*(len(v)-1)))
		return -result, nil
	}

	return result, nil
}
