package ticket

import (
	"github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"

	"github.com/blockinator/lava/txscript"
	"github.com/blockinator/lava/util/keyid"
)

// pubKeySize is the length of a compressed serialized public key.
const pubKeySize = 33

// GenerateTicketScript builds the redeem script of a ticket: the output is
// time-locked until lockHeight and then spendable by the given public key.
//
//	<lockHeight> OP_CHECKLOCKTIMEVERIFY OP_DROP <pubKey> OP_CHECKSIG
func GenerateTicketScript(pubKey []byte, lockHeight int32) ([]byte, error) {
	if len(pubKey) != pubKeySize {
		return nil, errors.Errorf("ticket public key is %d bytes, want %d",
			len(pubKey), pubKeySize)
	}
	if lockHeight <= 0 {
		return nil, errors.Errorf("ticket lock height %d is not positive", lockHeight)
	}

	return txscript.NewScriptBuilder().
		AddInt64(int64(lockHeight)).
		AddOp(txscript.OP_CHECKLOCKTIMEVERIFY).
		AddOp(txscript.OP_DROP).
		AddData(pubKey).
		AddOp(txscript.OP_CHECKSIG).
		Script()
}

// GetPublicKeyFromScript extracts the serialized public key out of a ticket
// redeem script. It fails when the script does not have the ticket shape.
func GetPublicKeyFromScript(script []byte) ([]byte, error) {
	pubKey, _, err := parseTicketScript(script)
	return pubKey, err
}

// DecodeTicketScript parses a ticket redeem script into the identity of its
// owner and its lock height.
func DecodeTicketScript(redeemScript []byte) (keyid.KeyID, int32, error) {
	pubKey, lockHeight, err := parseTicketScript(redeemScript)
	if err != nil {
		return keyid.KeyID{}, 0, err
	}
	if _, err := btcec.ParsePubKey(pubKey, btcec.S256()); err != nil {
		return keyid.KeyID{}, 0, errors.Wrap(err, "ticket script carries an invalid public key")
	}
	return keyid.FromPubKeyBytes(pubKey), lockHeight, nil
}

// GetRedeemFromScript extracts the redeem script out of a ticket spend's
// signature script, which by convention is its final data push.
func GetRedeemFromScript(script []byte) ([]byte, error) {
	var redeemScript []byte
	tokenizer := txscript.MakeScriptTokenizer(script)
	for tokenizer.Next() {
		if tokenizer.Data() != nil {
			redeemScript = tokenizer.Data()
		}
	}
	if err := tokenizer.Err(); err != nil {
		return nil, err
	}
	if redeemScript == nil {
		return nil, errors.New("signature script carries no data push")
	}
	return redeemScript, nil
}

// parseTicketScript walks the expected ticket opcode sequence and returns
// the pushed public key and lock height.
func parseTicketScript(script []byte) ([]byte, int32, error) {
	tokenizer := txscript.MakeScriptTokenizer(script)

	if !tokenizer.Next() {
		return nil, 0, errors.New("ticket script is empty")
	}
	var lockHeight int64
	if txscript.IsSmallInt(tokenizer.Opcode()) {
		lockHeight = txscript.AsSmallInt(tokenizer.Opcode())
	} else {
		var err error
		lockHeight, err = txscript.ParseScriptNum(tokenizer.Data())
		if err != nil {
			return nil, 0, errors.Wrap(err, "ticket script lock height")
		}
	}
	if lockHeight <= 0 {
		return nil, 0, errors.Errorf("ticket script lock height %d is not positive", lockHeight)
	}

	if !tokenizer.Next() || tokenizer.Opcode() != txscript.OP_CHECKLOCKTIMEVERIFY {
		return nil, 0, errors.New("ticket script has no OP_CHECKLOCKTIMEVERIFY")
	}
	if !tokenizer.Next() || tokenizer.Opcode() != txscript.OP_DROP {
		return nil, 0, errors.New("ticket script has no OP_DROP")
	}
	if !tokenizer.Next() || len(tokenizer.Data()) != pubKeySize {
		return nil, 0, errors.New("ticket script has no public key push")
	}

	return tokenizer.Data(), int32(lockHeight), nil
}
