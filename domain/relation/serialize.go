package relation

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/blockinator/lava/util/chainhash"
	"github.com/blockinator/lava/util/keyid"
	"github.com/blockinator/lava/wire"
)

// relationSerializedSize is the fixed encoded size of one batch entry.
const relationSerializedSize = chainhash.HashSize + 2*keyid.Length

// serializeRelations encodes a per-height batch of applied relation changes:
// a varint count followed by fixed-width (txid, from, to) triples, where a
// zero `to` encodes an unbind.
func serializeRelations(relations []RelationActive) []byte {
	buf := &bytes.Buffer{}
	// Writes into a bytes.Buffer cannot fail.
	_ = wire.WriteVarInt(buf, uint64(len(relations)))
	for _, relation := range relations {
		buf.Write(relation.TxID[:])
		buf.Write(relation.From[:])
		buf.Write(relation.To[:])
	}
	return buf.Bytes()
}

// deserializeRelations decodes a batch previously encoded by
// serializeRelations.
func deserializeRelations(data []byte) ([]RelationActive, error) {
	r := bytes.NewReader(data)
	count, err := wire.ReadVarInt(r)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read relation count")
	}

	if count > uint64(r.Len())/relationSerializedSize {
		return nil, errors.Errorf("announced relation count too large to fit "+
			"into the batch [count %d, max %d]", count,
			uint64(r.Len())/relationSerializedSize)
	}

	relations := make([]RelationActive, 0, count)
	for i := uint64(0); i < count; i++ {
		var relation RelationActive
		if _, err := io.ReadFull(r, relation.TxID[:]); err != nil {
			return nil, errors.Wrapf(err, "cannot read txid of relation %d", i)
		}
		if _, err := io.ReadFull(r, relation.From[:]); err != nil {
			return nil, errors.Wrapf(err, "cannot read source identity of relation %d", i)
		}
		if _, err := io.ReadFull(r, relation.To[:]); err != nil {
			return nil, errors.Wrapf(err, "cannot read target identity of relation %d", i)
		}
		relations = append(relations, relation)
	}
	return relations, nil
}
