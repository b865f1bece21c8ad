package ticket

import (
	"github.com/blockinator/lava/util/binaryserializer"
	"github.com/blockinator/lava/util/chainhash"
	"github.com/blockinator/lava/util/keyid"
)

// Version is the current ticket version.
const Version = 1

// State describes where in its lifecycle a ticket currently is.
type State int

// Ticket lifecycle states.
const (
	// StateImmature means the ticket's lock height has not been reached
	// yet and the locked output cannot be spent.
	StateImmature State = iota

	// StateUsable means the ticket is within its validity window.
	StateUsable

	// StateOverdue means the ticket's expiry window has passed.
	StateOverdue

	// StateUnknown means the ticket is malformed and has no meaningful
	// state.
	StateUnknown
)

func (s State) String() string {
	switch s {
	case StateImmature:
		return "immature"
	case StateUsable:
		return "usable"
	case StateOverdue:
		return "overdue"
	default:
		return "unknown"
	}
}

// Ticket is one time-locked output committed to a key identity. It is a
// read-only value created from a transaction output and its redeem script.
type Ticket struct {
	TxID         chainhash.Hash
	Index        uint32
	Value        int64
	RedeemScript []byte
	ScriptPubKey []byte
}

// New returns a ticket for the given output and redeem script.
func New(txID *chainhash.Hash, index uint32, value int64, redeemScript, scriptPubKey []byte) *Ticket {
	return &Ticket{
		TxID:         *txID,
		Index:        index,
		Value:        value,
		RedeemScript: redeemScript,
		ScriptPubKey: scriptPubKey,
	}
}

// Hash returns the ticket id: the double sha256 over the funding outpoint
// and the redeem script.
func (t *Ticket) Hash() chainhash.Hash {
	writer := chainhash.NewDoubleHashWriter()
	// Writes into a hash writer cannot fail.
	_, _ = writer.Write(t.TxID[:])
	_ = binaryserializer.PutUint32(writer, t.Index)
	_, _ = writer.Write(t.RedeemScript)
	return writer.Finalize()
}

// KeyID returns the identity of the ticket's owner, or the zero identity
// when the redeem script does not parse.
func (t *Ticket) KeyID() keyid.KeyID {
	id, _, err := DecodeTicketScript(t.RedeemScript)
	if err != nil {
		return keyid.KeyID{}
	}
	return id
}

// LockHeight returns the height until which the ticket's output is locked,
// or zero when the redeem script does not parse.
func (t *Ticket) LockHeight() int32 {
	_, lockHeight, err := DecodeTicketScript(t.RedeemScript)
	if err != nil {
		return 0
	}
	return lockHeight
}

// Invalid returns whether the ticket's redeem script fails to parse as a
// ticket script.
func (t *Ticket) Invalid() bool {
	_, _, err := DecodeTicketScript(t.RedeemScript)
	return err != nil
}

// State returns the lifecycle state of the ticket as of activeHeight, given
// the chain's expiry window.
func (t *Ticket) State(activeHeight, expiryWindow int32) State {
	_, lockHeight, err := DecodeTicketScript(t.RedeemScript)
	if err != nil {
		return StateUnknown
	}
	switch {
	case activeHeight < lockHeight:
		return StateImmature
	case activeHeight <= lockHeight+expiryWindow:
		return StateUsable
	default:
		return StateOverdue
	}
}
