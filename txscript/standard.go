// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2019-2021 The Lava developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

// NullDataScript creates a provably-unspendable script containing OP_RETURN
// followed by the passed data.
func NullDataScript(data []byte) ([]byte, error) {
	return NewScriptBuilder().AddOp(OP_RETURN).AddData(data).Script()
}

// IsUnspendable returns whether the passed script is provably unspendable,
// i.e. it starts with OP_RETURN.
func IsUnspendable(script []byte) bool {
	return len(script) > 0 && script[0] == OP_RETURN
}
