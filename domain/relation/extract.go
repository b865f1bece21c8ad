package relation

import (
	"github.com/blockinator/lava/txscript"
	"github.com/blockinator/lava/wire"
)

// CoinView provides access to the outputs a transaction spends. The host
// chain state supplies it, typically backed by its UTXO set.
type CoinView interface {
	// CoinValue returns the value, in lele, of the referenced output.
	// Unknown outpoints are reported as zero value, like any other
	// already-spent coin.
	CoinValue(outpoint *wire.Outpoint) int64
}

// ExtractAction scans the transaction for an embedded action payload and
// returns the decoded action along with its detached signature.
//
// A transaction is eligible only when it is not a coinbase, not empty,
// carries exactly two outputs of which at least one is zero-valued, and
// burns exactly actionFee: the difference between the value of its spent
// coins and its total output value. Anything else, including an unparseable
// or short marker payload, yields NilAction and no signature.
func ExtractAction(tx *wire.MsgTx, coins CoinView, actionFee int64) (Action, []byte) {
	if tx.IsCoinBase() || tx.IsNull() || len(tx.TxOut) != 2 ||
		(tx.TxOut[0].Value != 0 && tx.TxOut[1].Value != 0) {

		return NilAction{}, nil
	}

	var inputValue int64
	for _, txIn := range tx.TxIn {
		inputValue += coins.CoinValue(&txIn.PreviousOutpoint)
	}
	if fee := inputValue - tx.ValueOut(); fee != actionFee {
		log.Warnf("unexpected action fee in transaction %s: burns %d, want %d",
			tx.TxHash(), fee, actionFee)
		return NilAction{}, nil
	}

	for _, txOut := range tx.TxOut {
		if txOut.Value != 0 {
			continue
		}

		tokenizer := txscript.MakeScriptTokenizer(txOut.ScriptPubKey)
		if !tokenizer.Next() || tokenizer.Opcode() != txscript.OP_RETURN {
			continue
		}
		if !tokenizer.Next() {
			continue
		}
		payload := tokenizer.Data()
		if len(payload) < SignatureSize {
			continue
		}

		// The signature is the fixed-width suffix of the payload; the
		// action fields are decoded from the front of the same buffer.
		// The first well-formed marker output wins.
		return DeserializeAction(payload), payload[len(payload)-SignatureSize:]
	}

	return NilAction{}, nil
}
