// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2019-2021 The Lava developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/pkg/errors"

	"github.com/blockinator/lava/util/binaryserializer"
)

// maxVarIntPayload is the maximum payload size a variable length integer may
// announce. It is used as a sanity cap for length-prefixed collections.
const maxVarIntPayload = 1 << 25 // 32 MB

// WriteVarInt serializes val to w using a variable number of bytes depending
// on its value.
func WriteVarInt(w io.Writer, val uint64) error {
	if val < 0xfd {
		return binaryserializer.PutUint8(w, uint8(val))
	}

	if val <= 0xffff {
		err := binaryserializer.PutUint8(w, 0xfd)
		if err != nil {
			return err
		}
		buf := binaryserializer.Borrow()[:2]
		buf[0] = byte(val)
		buf[1] = byte(val >> 8)
		_, err = w.Write(buf)
		binaryserializer.Return(buf)
		return errors.WithStack(err)
	}

	if val <= 0xffffffff {
		err := binaryserializer.PutUint8(w, 0xfe)
		if err != nil {
			return err
		}
		return binaryserializer.PutUint32(w, uint32(val))
	}

	err := binaryserializer.PutUint8(w, 0xff)
	if err != nil {
		return err
	}
	return binaryserializer.PutUint64(w, val)
}

// ReadVarInt reads a variable length integer from r and returns it as a
// uint64.
func ReadVarInt(r io.Reader) (uint64, error) {
	discriminant, err := binaryserializer.Uint8(r)
	if err != nil {
		return 0, err
	}

	var rv uint64
	switch discriminant {
	case 0xff:
		rv, err = binaryserializer.Uint64(r)
		if err != nil {
			return 0, err
		}

	case 0xfe:
		sv, err := binaryserializer.Uint32(r)
		if err != nil {
			return 0, err
		}
		rv = uint64(sv)

	case 0xfd:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, errors.WithStack(err)
		}
		rv = uint64(buf[0]) | uint64(buf[1])<<8

	default:
		rv = uint64(discriminant)
	}

	return rv, nil
}

// WriteVarBytes serializes a variable length byte slice to w as a varint
// containing the number of bytes, followed by the bytes themselves.
func WriteVarBytes(w io.Writer, bytes []byte) error {
	err := WriteVarInt(w, uint64(len(bytes)))
	if err != nil {
		return err
	}

	_, err = w.Write(bytes)
	return errors.WithStack(err)
}

// ReadVarBytes reads a variable length byte slice from r and returns it. The
// fieldName parameter is only used for the error message.
func ReadVarBytes(r io.Reader, fieldName string) ([]byte, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}

	// Prevent a malformed length prefix from causing a massive allocation.
	if count > maxVarIntPayload {
		return nil, errors.Errorf("%s is larger than the maximum "+
			"allowed size [count %d, max %d]", fieldName, count,
			maxVarIntPayload)
	}

	b := make([]byte, count)
	_, err = io.ReadFull(r, b)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return b, nil
}
