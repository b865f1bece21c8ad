// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2019-2021 The Lava developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

// LelePerLava is the number of base currency units in one coin.
const LelePerLava = 1e8

// Params defines a lava network by its parameters. These parameters may be
// used by lava applications to differentiate networks as well as addresses
// and keys for one network from those intended for use on another network.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// PubKeyHashAddrID is the first byte of a pay-to-pubkey-hash address.
	PubKeyHashAddrID byte

	// PrivateKeyID is the first byte of a WIF private key.
	PrivateKeyID byte

	// ActionFee is the exact fee, in lele, a transaction must burn for its
	// embedded bind/unbind action to be considered at all.
	ActionFee int64

	// TicketExpiryWindow is the number of blocks after its lock height
	// during which a ticket stays usable before going overdue.
	TicketExpiryWindow int32

	// Poc21ActivationHeight is the height at which the poc2.1 protocol
	// epoch activates and legacy numeric plot-id addressing stops being
	// maintained.
	Poc21ActivationHeight int32
}

// IsPoc21Active returns whether the poc2.1 epoch is active at the given
// height, i.e. whether plot-id bookkeeping may be skipped.
func (p *Params) IsPoc21Active(height int32) bool {
	return height >= p.Poc21ActivationHeight
}

// MainnetParams defines the network parameters for the main lava network.
var MainnetParams = Params{
	Name:                  "mainnet",
	PubKeyHashAddrID:      0x30,
	PrivateKeyID:          0xb0,
	ActionFee:             10 * LelePerLava,
	TicketExpiryWindow:    2048,
	Poc21ActivationHeight: 192000,
}

// TestnetParams defines the network parameters for the test lava network.
var TestnetParams = Params{
	Name:                  "testnet",
	PubKeyHashAddrID:      0x6f,
	PrivateKeyID:          0xef,
	ActionFee:             1 * LelePerLava,
	TicketExpiryWindow:    256,
	Poc21ActivationHeight: 6000,
}

// SimnetParams defines the network parameters for the simulation test
// network. It is used primarily in tests.
var SimnetParams = Params{
	Name:                  "simnet",
	PubKeyHashAddrID:      0x3f,
	PrivateKeyID:          0x64,
	ActionFee:             1 * LelePerLava,
	TicketExpiryWindow:    16,
	Poc21ActivationHeight: 100,
}
