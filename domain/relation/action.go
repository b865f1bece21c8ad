package relation

import (
	"bytes"
	"io"

	"github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"

	"github.com/blockinator/lava/util/binaryserializer"
	"github.com/blockinator/lava/util/chainhash"
	"github.com/blockinator/lava/util/keyid"
	"github.com/blockinator/lava/wire"
)

// SignatureSize is the length of a compact recoverable signature. Every
// action payload carries one as its fixed-width suffix.
const SignatureSize = 65

// Action wire tags. Any tag that is not bind or unbind deserializes to
// NilAction.
const (
	actionTagNil    uint32 = 0
	actionTagBind   uint32 = 1
	actionTagUnbind uint32 = 2
)

// Action is a single relationship-mutating intent embedded in a transaction.
// It is a closed sum over BindAction, UnbindAction and NilAction.
type Action interface {
	isAction()
}

// NilAction is the absence of an action. Malformed or unrecognized payloads
// decode to it.
type NilAction struct{}

// BindAction establishes a relation from one identity to another.
type BindAction struct {
	From keyid.KeyID
	To   keyid.KeyID
}

// UnbindAction revokes whatever relation the identity currently has.
type UnbindAction struct {
	From keyid.KeyID
}

func (NilAction) isAction()    {}
func (BindAction) isAction()   {}
func (UnbindAction) isAction() {}

// IsNilAction returns whether the given action is the nil action.
func IsNilAction(action Action) bool {
	_, isNil := action.(NilAction)
	return isNil
}

// SerializeAction returns the binary form of the action: a little-endian
// 32-bit tag followed by the raw identities the action operates on.
func SerializeAction(action Action) []byte {
	buf := &bytes.Buffer{}
	// Writes into a bytes.Buffer cannot fail.
	switch a := action.(type) {
	case BindAction:
		_ = binaryserializer.PutUint32(buf, actionTagBind)
		buf.Write(a.From[:])
		buf.Write(a.To[:])
	case UnbindAction:
		_ = binaryserializer.PutUint32(buf, actionTagUnbind)
		buf.Write(a.From[:])
	default:
		_ = binaryserializer.PutUint32(buf, actionTagNil)
	}
	return buf.Bytes()
}

// DeserializeAction decodes an action from the front of the given payload.
// Trailing bytes, such as the detached signature suffix, are ignored. It
// fails closed: anything that cannot be decoded yields NilAction.
func DeserializeAction(payload []byte) Action {
	r := bytes.NewReader(payload)
	tag, err := binaryserializer.Uint32(r)
	if err != nil {
		return NilAction{}
	}

	switch tag {
	case actionTagBind:
		var action BindAction
		if _, err := io.ReadFull(r, action.From[:]); err != nil {
			return NilAction{}
		}
		if _, err := io.ReadFull(r, action.To[:]); err != nil {
			return NilAction{}
		}
		return action

	case actionTagUnbind:
		var action UnbindAction
		if _, err := io.ReadFull(r, action.From[:]); err != nil {
			return NilAction{}
		}
		return action
	}

	return NilAction{}
}

// actionDigest is the commitment an action signature signs: the double
// sha256 over the serialized action followed by the 36-byte encoding of the
// outpoint being spent. Binding the digest to the spent coin prevents a
// captured payload from being replayed against a different spend.
func actionDigest(outpoint *wire.Outpoint, serializedAction []byte) chainhash.Hash {
	writer := chainhash.NewDoubleHashWriter()
	// Writes into a hash writer cannot fail.
	_, _ = writer.Write(serializedAction)
	_ = outpoint.Serialize(writer)
	return writer.Finalize()
}

// SignAction serializes and signs the action with the given private key,
// committing it to the given spent outpoint, and returns the complete wire
// payload: the serialized action followed by the 65-byte compact signature.
func SignAction(outpoint *wire.Outpoint, action Action, privKey *btcec.PrivateKey) ([]byte, error) {
	serialized := SerializeAction(action)
	digest := actionDigest(outpoint, serialized)
	signature, err := btcec.SignCompact(btcec.S256(), privKey, digest[:], true)
	if err != nil {
		return nil, errors.Wrap(err, "cannot sign action")
	}

	payload := make([]byte, 0, len(serialized)+SignatureSize)
	payload = append(payload, serialized...)
	payload = append(payload, signature...)
	return payload, nil
}

// VerifyAction checks that the detached signature commits the action to the
// given spent outpoint and recovers to the public key the action's From
// identity was derived from. It never returns an error: any failure to
// recover, as well as an identity mismatch, yields false.
func VerifyAction(outpoint *wire.Outpoint, action Action, signature []byte) bool {
	if len(signature) != SignatureSize {
		return false
	}

	digest := actionDigest(outpoint, SerializeAction(action))
	pubKey, wasCompressed, err := btcec.RecoverCompact(btcec.S256(), signature, digest[:])
	if err != nil {
		return false
	}

	var serializedPubKey []byte
	if wasCompressed {
		serializedPubKey = pubKey.SerializeCompressed()
	} else {
		serializedPubKey = pubKey.SerializeUncompressed()
	}
	recovered := keyid.FromPubKeyBytes(serializedPubKey)

	switch a := action.(type) {
	case BindAction:
		return recovered == a.From
	case UnbindAction:
		return recovered == a.From
	}
	return false
}
