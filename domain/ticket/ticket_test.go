package ticket

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/btcec"

	"github.com/blockinator/lava/txscript"
	"github.com/blockinator/lava/util/chainhash"
	"github.com/blockinator/lava/util/keyid"
)

func testPubKey(t *testing.T) []byte {
	t.Helper()
	privKey, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		t.Fatalf("testPubKey: NewPrivateKey: %s", err)
	}
	return privKey.PubKey().SerializeCompressed()
}

func TestTicketScriptRoundTrip(t *testing.T) {
	pubKey := testPubKey(t)
	const lockHeight = 123456

	script, err := GenerateTicketScript(pubKey, lockHeight)
	if err != nil {
		t.Fatalf("TestTicketScriptRoundTrip: GenerateTicketScript: %s", err)
	}

	gotPubKey, err := GetPublicKeyFromScript(script)
	if err != nil {
		t.Fatalf("TestTicketScriptRoundTrip: GetPublicKeyFromScript: %s", err)
	}
	if !bytes.Equal(gotPubKey, pubKey) {
		t.Fatalf("TestTicketScriptRoundTrip: public key is %x, want %x",
			gotPubKey, pubKey)
	}

	id, gotLockHeight, err := DecodeTicketScript(script)
	if err != nil {
		t.Fatalf("TestTicketScriptRoundTrip: DecodeTicketScript: %s", err)
	}
	if gotLockHeight != lockHeight {
		t.Fatalf("TestTicketScriptRoundTrip: lock height is %d, want %d",
			gotLockHeight, lockHeight)
	}
	if want := keyid.FromPubKeyBytes(pubKey); id != want {
		t.Fatalf("TestTicketScriptRoundTrip: key id is %s, want %s", id, want)
	}
}

func TestGenerateTicketScriptRejectsBadInputs(t *testing.T) {
	pubKey := testPubKey(t)

	if _, err := GenerateTicketScript(pubKey[:32], 100); err == nil {
		t.Fatalf("TestGenerateTicketScriptRejectsBadInputs: short public key accepted")
	}
	if _, err := GenerateTicketScript(pubKey, 0); err == nil {
		t.Fatalf("TestGenerateTicketScriptRejectsBadInputs: zero lock height accepted")
	}
	if _, err := GenerateTicketScript(pubKey, -5); err == nil {
		t.Fatalf("TestGenerateTicketScriptRejectsBadInputs: negative lock height accepted")
	}
}

func TestDecodeTicketScriptRejectsMalformedScripts(t *testing.T) {
	pubKey := testPubKey(t)
	valid, err := GenerateTicketScript(pubKey, 100)
	if err != nil {
		t.Fatalf("TestDecodeTicketScriptRejectsMalformedScripts: GenerateTicketScript: %s", err)
	}

	junkKey := make([]byte, pubKeySize)
	junkKeyScript, err := txscript.NewScriptBuilder().
		AddInt64(100).
		AddOp(txscript.OP_CHECKLOCKTIMEVERIFY).
		AddOp(txscript.OP_DROP).
		AddData(junkKey).
		AddOp(txscript.OP_CHECKSIG).
		Script()
	if err != nil {
		t.Fatalf("TestDecodeTicketScriptRejectsMalformedScripts: building script: %s", err)
	}

	tests := []struct {
		name   string
		script []byte
	}{
		{"empty", nil},
		{"truncated", valid[:len(valid)-10]},
		{"missing locktime verify", append([]byte{txscript.OP_1}, valid[3:]...)},
		{"garbage public key", junkKeyScript},
	}

	for _, test := range tests {
		if _, _, err := DecodeTicketScript(test.script); err == nil {
			t.Errorf("TestDecodeTicketScriptRejectsMalformedScripts: %s: decoded",
				test.name)
		}
	}
}

func TestGetRedeemFromScript(t *testing.T) {
	pubKey := testPubKey(t)
	redeemScript, err := GenerateTicketScript(pubKey, 100)
	if err != nil {
		t.Fatalf("TestGetRedeemFromScript: GenerateTicketScript: %s", err)
	}

	// A ticket spend pushes a signature and then the redeem script.
	signatureScript, err := txscript.NewScriptBuilder().
		AddData(make([]byte, 72)).
		AddData(redeemScript).
		Script()
	if err != nil {
		t.Fatalf("TestGetRedeemFromScript: building signature script: %s", err)
	}

	got, err := GetRedeemFromScript(signatureScript)
	if err != nil {
		t.Fatalf("TestGetRedeemFromScript: %s", err)
	}
	if !bytes.Equal(got, redeemScript) {
		t.Fatalf("TestGetRedeemFromScript: got %x, want %x", got, redeemScript)
	}

	if _, err := GetRedeemFromScript([]byte{txscript.OP_DROP}); err == nil {
		t.Fatalf("TestGetRedeemFromScript: script without data pushes yielded a redeem script")
	}
}

func TestTicketStates(t *testing.T) {
	pubKey := testPubKey(t)
	const lockHeight = 1000
	const expiryWindow = 16

	redeemScript, err := GenerateTicketScript(pubKey, lockHeight)
	if err != nil {
		t.Fatalf("TestTicketStates: GenerateTicketScript: %s", err)
	}
	txID := chainhash.DoubleHashH([]byte("funding"))
	tk := New(&txID, 1, 5000, redeemScript, nil)

	tests := []struct {
		activeHeight int32
		want         State
	}{
		{0, StateImmature},
		{lockHeight - 1, StateImmature},
		{lockHeight, StateUsable},
		{lockHeight + expiryWindow, StateUsable},
		{lockHeight + expiryWindow + 1, StateOverdue},
	}
	for _, test := range tests {
		if got := tk.State(test.activeHeight, expiryWindow); got != test.want {
			t.Errorf("TestTicketStates: at height %d got %s, want %s",
				test.activeHeight, got, test.want)
		}
	}

	if tk.Invalid() {
		t.Fatalf("TestTicketStates: valid ticket reported invalid")
	}
	if got := tk.LockHeight(); got != lockHeight {
		t.Fatalf("TestTicketStates: lock height is %d, want %d", got, lockHeight)
	}
	if got, want := tk.KeyID(), keyid.FromPubKeyBytes(pubKey); got != want {
		t.Fatalf("TestTicketStates: key id is %s, want %s", got, want)
	}

	broken := New(&txID, 1, 5000, []byte{txscript.OP_DROP}, nil)
	if !broken.Invalid() {
		t.Fatalf("TestTicketStates: broken ticket reported valid")
	}
	if got := broken.State(lockHeight, expiryWindow); got != StateUnknown {
		t.Fatalf("TestTicketStates: broken ticket state is %s, want %s",
			got, StateUnknown)
	}
}

func TestTicketHashCommitsToOutpointAndScript(t *testing.T) {
	pubKey := testPubKey(t)
	redeemScript, err := GenerateTicketScript(pubKey, 100)
	if err != nil {
		t.Fatalf("TestTicketHashCommitsToOutpointAndScript: GenerateTicketScript: %s", err)
	}
	txID := chainhash.DoubleHashH([]byte("funding"))

	base := New(&txID, 1, 5000, redeemScript, nil).Hash()
	if other := New(&txID, 2, 5000, redeemScript, nil).Hash(); other == base {
		t.Fatalf("TestTicketHashCommitsToOutpointAndScript: index not committed")
	}

	otherScript, err := GenerateTicketScript(pubKey, 101)
	if err != nil {
		t.Fatalf("TestTicketHashCommitsToOutpointAndScript: GenerateTicketScript: %s", err)
	}
	if other := New(&txID, 1, 5000, otherScript, nil).Hash(); other == base {
		t.Fatalf("TestTicketHashCommitsToOutpointAndScript: redeem script not committed")
	}
}
