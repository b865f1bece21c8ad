// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2019-2021 The Lava developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"

	"github.com/blockinator/lava/util/keyid"
)

// EncodeAddress returns the human-readable pay-to-pubkey-hash address of the
// given key id for the network identified by netID.
func EncodeAddress(id keyid.KeyID, netID byte) string {
	return base58.CheckEncode(id[:], netID)
}

// DecodeAddress decodes a pay-to-pubkey-hash address into the key id it
// commits to along with the network identifier it was encoded with.
func DecodeAddress(addr string) (keyid.KeyID, byte, error) {
	decoded, netID, err := base58.CheckDecode(addr)
	if err != nil {
		return keyid.KeyID{}, 0, errors.Wrapf(err, "decoded address %q is of unknown format", addr)
	}
	id, err := keyid.New(decoded)
	if err != nil {
		return keyid.KeyID{}, 0, errors.Wrapf(err, "decoded address %q has an invalid payload", addr)
	}
	return id, netID, nil
}
