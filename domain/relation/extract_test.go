package relation

import (
	"testing"

	"github.com/btcsuite/btcd/btcec"

	"github.com/blockinator/lava/txscript"
	"github.com/blockinator/lava/util/chainhash"
	"github.com/blockinator/lava/util/keyid"
	"github.com/blockinator/lava/wire"
)

// testActionFee is the fee the extraction tests expect transactions to burn.
const testActionFee = 100000

// mapCoinView backs the coin view with a plain map. Unknown outpoints report
// zero value.
type mapCoinView map[wire.Outpoint]int64

func (m mapCoinView) CoinValue(outpoint *wire.Outpoint) int64 {
	return m[*outpoint]
}

// newActionTx builds a transaction that spends one coin of the given value
// and carries the given payload in a zero-value marker output plus a change
// output making up the rest.
func newActionTx(t *testing.T, coins mapCoinView, coinValue, changeValue int64,
	payload []byte) *wire.MsgTx {

	t.Helper()

	outpoint := *testOutpoint(0x55, 0)
	coins[outpoint] = coinValue

	script, err := txscript.NullDataScript(payload)
	if err != nil {
		t.Fatalf("newActionTx: NullDataScript: %s", err)
	}

	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(wire.NewTxIn(&outpoint, nil))
	tx.AddTxOut(wire.NewTxOut(0, script))
	tx.AddTxOut(wire.NewTxOut(changeValue, []byte{txscript.OP_1}))
	return tx
}

// newSignedActionTx builds an eligible transaction around a properly signed
// bind action and returns it along with the action.
func newSignedActionTx(t *testing.T, coins mapCoinView) (*wire.MsgTx, BindAction) {
	t.Helper()

	privKey, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		t.Fatalf("newSignedActionTx: NewPrivateKey: %s", err)
	}
	from := keyid.FromPubKeyBytes(privKey.PubKey().SerializeCompressed())
	action := BindAction{From: from, To: testKeyID(0x66)}

	outpoint := *testOutpoint(0x55, 0)
	payload, err := SignAction(&outpoint, action, privKey)
	if err != nil {
		t.Fatalf("newSignedActionTx: SignAction: %s", err)
	}

	return newActionTx(t, coins, testActionFee+5000, 5000, payload), action
}

func TestExtractAction(t *testing.T) {
	coins := make(mapCoinView)
	tx, want := newSignedActionTx(t, coins)

	action, signature := ExtractAction(tx, coins, testActionFee)
	if action != Action(want) {
		t.Fatalf("TestExtractAction: got %#v, want %#v", action, want)
	}
	if len(signature) != SignatureSize {
		t.Fatalf("TestExtractAction: signature is %d bytes, want %d",
			len(signature), SignatureSize)
	}
	if !VerifyAction(&tx.TxIn[0].PreviousOutpoint, action, signature) {
		t.Fatalf("TestExtractAction: extracted signature does not verify")
	}
}

func TestExtractActionMarkerInSecondOutput(t *testing.T) {
	coins := make(mapCoinView)
	tx, want := newSignedActionTx(t, coins)
	tx.TxOut[0], tx.TxOut[1] = tx.TxOut[1], tx.TxOut[0]

	action, _ := ExtractAction(tx, coins, testActionFee)
	if action != Action(want) {
		t.Fatalf("TestExtractActionMarkerInSecondOutput: got %#v, want %#v",
			action, want)
	}
}

func TestExtractActionIneligibleTransactions(t *testing.T) {
	coinbase := wire.NewMsgTx(wire.TxVersion)
	coinbase.AddTxIn(wire.NewTxIn(
		wire.NewOutpoint(&chainhash.Hash{}, wire.MaxPrevOutIndex), nil))
	coinbase.AddTxOut(wire.NewTxOut(0, nil))
	coinbase.AddTxOut(wire.NewTxOut(5000, nil))

	tests := []struct {
		name  string
		setup func(t *testing.T, coins mapCoinView) *wire.MsgTx
	}{
		{"coinbase", func(t *testing.T, coins mapCoinView) *wire.MsgTx {
			return coinbase
		}},
		{"null transaction", func(t *testing.T, coins mapCoinView) *wire.MsgTx {
			return wire.NewMsgTx(wire.TxVersion)
		}},
		{"one output", func(t *testing.T, coins mapCoinView) *wire.MsgTx {
			tx, _ := newSignedActionTx(t, coins)
			tx.TxOut = tx.TxOut[:1]
			return tx
		}},
		{"three outputs", func(t *testing.T, coins mapCoinView) *wire.MsgTx {
			tx, _ := newSignedActionTx(t, coins)
			tx.AddTxOut(wire.NewTxOut(0, nil))
			return tx
		}},
		{"no zero-value output", func(t *testing.T, coins mapCoinView) *wire.MsgTx {
			tx, _ := newSignedActionTx(t, coins)
			tx.TxOut[0].Value = 1
			return tx
		}},
		{"fee too low", func(t *testing.T, coins mapCoinView) *wire.MsgTx {
			tx, _ := newSignedActionTx(t, coins)
			tx.TxOut[1].Value += 1
			return tx
		}},
		{"fee too high", func(t *testing.T, coins mapCoinView) *wire.MsgTx {
			tx, _ := newSignedActionTx(t, coins)
			tx.TxOut[1].Value -= 1
			return tx
		}},
		{"short payload", func(t *testing.T, coins mapCoinView) *wire.MsgTx {
			return newActionTx(t, coins, testActionFee+5000, 5000,
				make([]byte, SignatureSize-1))
		}},
		{"no marker output", func(t *testing.T, coins mapCoinView) *wire.MsgTx {
			tx, _ := newSignedActionTx(t, coins)
			tx.TxOut[0].ScriptPubKey = []byte{txscript.OP_1}
			return tx
		}},
	}

	for _, test := range tests {
		coins := make(mapCoinView)
		tx := test.setup(t, coins)
		action, signature := ExtractAction(tx, coins, testActionFee)
		if !IsNilAction(action) || signature != nil {
			t.Errorf("TestExtractActionIneligibleTransactions: %s: got %#v, "+
				"want NilAction", test.name, action)
		}
	}
}

func TestExtractActionUnparseablePayload(t *testing.T) {
	// A payload long enough to carry a signature but with an unknown tag
	// decodes to NilAction while still yielding the signature suffix, so
	// callers treat it like any other nil action.
	coins := make(mapCoinView)
	payload := make([]byte, 4+SignatureSize)
	payload[0] = 0x09
	tx := newActionTx(t, coins, testActionFee+5000, 5000, payload)

	action, _ := ExtractAction(tx, coins, testActionFee)
	if !IsNilAction(action) {
		t.Fatalf("TestExtractActionUnparseablePayload: got %#v, want NilAction", action)
	}
}
