package relation

import (
	"bytes"

	"github.com/blockinator/lava/chaincfg"
	"github.com/blockinator/lava/infrastructure/db/database"
	"github.com/blockinator/lava/infrastructure/logger"
	"github.com/blockinator/lava/util"
	"github.com/blockinator/lava/util/binaryserializer"
	"github.com/blockinator/lava/util/chainhash"
	"github.com/blockinator/lava/util/keyid"
	"github.com/blockinator/lava/wire"
)

var (
	// activeActionsBucket keys per-height batches of applied relation
	// changes by their little-endian height.
	activeActionsBucket = database.MakeBucket([]byte("relation"), []byte("active-actions"))

	// relationIDsBucket keys identities by their little-endian legacy plot
	// id. Only maintained while the poc2.1 epoch is inactive.
	relationIDsBucket = database.MakeBucket([]byte("relation"), []byte("ids"))
)

// Relation is one (from, to) pair of the current tip mapping.
type Relation struct {
	From keyid.KeyID
	To   keyid.KeyID
}

// RelationActive records one applied relation change, tagged by the
// transaction that carried it. A zero To encodes an unbind.
type RelationActive struct {
	TxID chainhash.Hash
	From keyid.KeyID
	To   keyid.KeyID
}

// RelationView is the authoritative view of plotter-binding relations as of
// the most recently connected block. It owns the tip mappings, the
// per-identity change history that makes exact rollback possible, and the
// durable per-height batch keyspace.
//
// The view expects to be driven by the host's block-connection pipeline:
// ConnectBlock and DisconnectBlock are invoked strictly in block order and
// never concurrently, so none of the mutating operations take locks.
type RelationView struct {
	db     database.Database
	coins  CoinView
	params *chaincfg.Params

	// relationTip is the legacy plot-id addressed tip, maintained only
	// while the poc2.1 epoch is inactive.
	relationTip map[uint64]uint64

	// relationKeyIDTip is the identity-addressed tip. Always maintained.
	relationKeyIDTip map[keyid.KeyID]keyid.KeyID

	// relationsHistory records, per identity, the target of every relation
	// change by the height it happened at. An identity has at most one
	// entry per height.
	relationsHistory map[keyid.KeyID]map[int32]keyid.KeyID
}

// NewRelationView returns an empty relation view over the given database,
// coin view and chain parameters. Callers reconstruct the in-memory state by
// replaying LoadRelationFromDisk over the connected heights.
func NewRelationView(db database.Database, coins CoinView, params *chaincfg.Params) *RelationView {
	return &RelationView{
		db:               db,
		coins:            coins,
		params:           params,
		relationTip:      make(map[uint64]uint64),
		relationKeyIDTip: make(map[keyid.KeyID]keyid.KeyID),
		relationsHistory: make(map[keyid.KeyID]map[int32]keyid.KeyID),
	}
}

func activeActionsKey(height int32) *database.Key {
	buf := bytes.NewBuffer(make([]byte, 0, 4))
	_ = binaryserializer.PutUint32(buf, uint32(height))
	return activeActionsBucket.Key(buf.Bytes())
}

func relationIDKey(plotID uint64) *database.Key {
	buf := bytes.NewBuffer(make([]byte, 0, 8))
	_ = binaryserializer.PutUint64(buf, plotID)
	return relationIDsBucket.Key(buf.Bytes())
}

func (v *RelationView) address(id keyid.KeyID) string {
	return util.EncodeAddress(id, v.params.PubKeyHashAddrID)
}

// To returns the identity the given identity is currently bound to, or the
// zero identity when it has no relation. While the poc2.1 epoch is inactive
// the lookup resolves through the legacy plot-id mapping and its durable
// plot-id to identity associations instead. Absence is a valid outcome, not
// an error.
func (v *RelationView) To(from keyid.KeyID, plotID uint64, poc21 bool) keyid.KeyID {
	if poc21 {
		if to, ok := v.relationKeyIDTip[from]; ok {
			return to
		}
		return keyid.KeyID{}
	}

	toPlotID, ok := v.relationTip[plotID]
	if !ok {
		log.Debugf("To: no relation tip entry for plot id %d", plotID)
		return keyid.KeyID{}
	}
	data, err := v.db.Get(relationIDKey(toPlotID))
	if err != nil {
		log.Debugf("To: cannot resolve plot id %d to an identity: %s", toPlotID, err)
		return keyid.KeyID{}
	}
	to, err := keyid.New(data)
	if err != nil {
		log.Debugf("To: malformed identity stored for plot id %d: %s", toPlotID, err)
		return keyid.KeyID{}
	}
	return to
}

// ListRelations returns a snapshot of all pairs currently in the
// identity-addressed tip. Order is not significant.
func (v *RelationView) ListRelations() []Relation {
	relations := make([]Relation, 0, len(v.relationKeyIDTip))
	for from, to := range v.relationKeyIDTip {
		relations = append(relations, Relation{From: from, To: to})
	}
	return relations
}

// AcceptAction applies a verified action at the given height: it appends the
// resulting change to relations, updates the tip mappings and the identity's
// history and, while the poc2.1 epoch is inactive, persists the raw
// plot-id to identity associations legacy validation resolves through.
//
// The returned error reports only that durable write. The in-memory state is
// updated regardless, so a failed write leaves memory ahead of disk; callers
// log and carry on.
func (v *RelationView) AcceptAction(height int32, txID *chainhash.Hash, action Action,
	relations *[]RelationActive, poc21 bool) error {

	log.Infof("accept action, tx: %s", txID)
	var writeErr error
	switch a := action.(type) {
	case BindAction:
		*relations = append(*relations, RelationActive{TxID: *txID, From: a.From, To: a.To})
		if !poc21 {
			writeErr = v.writeRelationIDs(a.From, a.To)
			v.relationTip[a.From.PlotID()] = a.To.PlotID()
			log.Infof("bind action, from plot id %d to plot id %d",
				a.From.PlotID(), a.To.PlotID())
		}
		v.relationKeyIDTip[a.From] = a.To
		v.addRelationHistory(height, a.From, a.To)
		log.Infof("bind action, from %s to %s", v.address(a.From), v.address(a.To))

	case UnbindAction:
		*relations = append(*relations, RelationActive{TxID: *txID, From: a.From})
		if !poc21 {
			delete(v.relationTip, a.From.PlotID())
			log.Infof("unbind action, from plot id %d", a.From.PlotID())
		}
		delete(v.relationKeyIDTip, a.From)
		v.addRelationHistory(height, a.From, keyid.KeyID{})
		log.Infof("unbind action, from %s", v.address(a.From))
	}
	return writeErr
}

// writeRelationIDs persists the plot-id to identity associations of both
// endpoints of a bind in a single database transaction.
func (v *RelationView) writeRelationIDs(from, to keyid.KeyID) error {
	dbTx, err := v.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = dbTx.RollbackUnlessClosed() }()

	err = dbTx.Put(relationIDKey(from.PlotID()), from.CloneBytes())
	if err != nil {
		return err
	}
	err = dbTx.Put(relationIDKey(to.PlotID()), to.CloneBytes())
	if err != nil {
		return err
	}
	return dbTx.Commit()
}

// addRelationHistory records that the identity's relation changed at the
// given height. One identity has at most one change per height: a later
// action within the same height replaces the earlier one.
func (v *RelationView) addRelationHistory(height int32, from, to keyid.KeyID) {
	history, ok := v.relationsHistory[from]
	if !ok {
		history = make(map[int32]keyid.KeyID)
		v.relationsHistory[from] = history
	}
	history[height] = to
}

// removeRelationHistory truncates the identity's history to strictly below
// the given height and resets the tip mappings from whatever change remains
// the latest. When nothing remains the identity is removed from the tips
// entirely.
func (v *RelationView) removeRelationHistory(height int32, from keyid.KeyID, poc21 bool) {
	history := v.relationsHistory[from]
	// Entries above the rewound height should not exist, but an
	// out-of-order replay must not leave them behind.
	for h := range history {
		if h >= height {
			delete(history, h)
		}
	}

	if len(history) == 0 {
		delete(v.relationsHistory, from)
		if !poc21 {
			delete(v.relationTip, from.PlotID())
		}
		delete(v.relationKeyIDTip, from)
		return
	}

	var prevHeight int32
	var prevTo keyid.KeyID
	found := false
	for h, to := range history {
		if h < height && (!found || h > prevHeight) {
			prevHeight, prevTo, found = h, to, true
		}
	}
	if !found {
		if !poc21 {
			delete(v.relationTip, from.PlotID())
		}
		delete(v.relationKeyIDTip, from)
		return
	}

	if !poc21 {
		v.relationTip[from.PlotID()] = prevTo.PlotID()
	}
	v.relationKeyIDTip[from] = prevTo
}

// WriteRelationsToDisk persists the given non-empty batch of applied
// relation changes under the given height.
func (v *RelationView) WriteRelationsToDisk(height int32, relations []RelationActive) error {
	return v.db.Put(activeActionsKey(height), serializeRelations(relations))
}

// ConnectBlock processes every transaction of the block connected at the
// given height: extract, verify and accept its action, if any. Failures of
// individual actions are logged and skipped; they never fail the block.
// Applied changes are persisted as one batch under the block's height.
func (v *RelationView) ConnectBlock(height int32, block *wire.MsgBlock, poc21 bool) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "RelationView.ConnectBlock")
	defer onEnd()

	relations := make([]RelationActive, 0)
	for _, tx := range block.Transactions {
		action, signature := ExtractAction(tx, v.coins, v.params.ActionFee)
		if IsNilAction(action) {
			continue
		}
		txID := tx.TxHash()
		log.Infof("found action in transaction %s", txID)

		outpoint := &tx.TxIn[0].PreviousOutpoint
		if !VerifyAction(outpoint, action, signature) {
			log.Warnf("action verification failed, tx: %s", txID)
			continue
		}
		err := v.AcceptAction(height, &txID, action, &relations, poc21)
		if err != nil {
			log.Warnf("accept action failed, tx %s: %s", txID, err)
		}
	}

	if len(relations) > 0 {
		err := v.WriteRelationsToDisk(height, relations)
		if err != nil {
			log.Debugf("ConnectBlock: writing relations failed, height %d: %s",
				height, err)
		}
	}
}

// RewindToHeight erases the durable batch at the given height and rewinds
// the history of every identity whose relation changed there. Histories are
// per-identity independent, so the rewind order across identities does not
// matter.
func (v *RelationView) RewindToHeight(height int32, poc21 bool) {
	err := v.db.Delete(activeActionsKey(height))
	if err != nil {
		log.Debugf("RewindToHeight: erasing batch failed, height %d: %s", height, err)
	}

	touched := make([]keyid.KeyID, 0)
	for from, history := range v.relationsHistory {
		if _, ok := history[height]; ok {
			touched = append(touched, from)
		}
	}
	for _, from := range touched {
		v.removeRelationHistory(height, from, poc21)
	}
}

// DisconnectBlock undoes whatever relation changes the block at the given
// height applied.
func (v *RelationView) DisconnectBlock(height int32, block *wire.MsgBlock, poc21 bool) {
	log.Debugf("DisconnectBlock: height %d, block %s", height, block.BlockHash())
	v.RewindToHeight(height, poc21)
}

// LoadRelationFromDisk replays the batch persisted at the given height, if
// any, through the same tip and history updates as AcceptAction. Batches
// were verified before they were written, so signatures are not re-checked.
// It is used to rebuild the in-memory state at startup.
func (v *RelationView) LoadRelationFromDisk(height int32, poc21 bool) error {
	onEnd := logger.LogAndMeasureExecutionTime(log, "RelationView.LoadRelationFromDisk")
	defer onEnd()

	key := activeActionsKey(height)
	has, err := v.db.Has(key)
	if err != nil {
		return err
	}
	if !has {
		return nil
	}

	data, err := v.db.Get(key)
	if err != nil {
		log.Debugf("LoadRelationFromDisk: read failed, height %d: %s", height, err)
		return err
	}
	relations, err := deserializeRelations(data)
	if err != nil {
		log.Debugf("LoadRelationFromDisk: malformed batch, height %d: %s", height, err)
		return err
	}

	for _, relation := range relations {
		if !relation.To.IsZero() {
			if !poc21 {
				v.relationTip[relation.From.PlotID()] = relation.To.PlotID()
				log.Infof("bind action, from plot id %d to plot id %d",
					relation.From.PlotID(), relation.To.PlotID())
			}
			v.relationKeyIDTip[relation.From] = relation.To
			v.addRelationHistory(height, relation.From, relation.To)
			log.Infof("bind action, from %s to %s",
				v.address(relation.From), v.address(relation.To))
		} else {
			if !poc21 {
				delete(v.relationTip, relation.From.PlotID())
				log.Infof("unbind action, from plot id %d", relation.From.PlotID())
			}
			delete(v.relationKeyIDTip, relation.From)
			v.addRelationHistory(height, relation.From, keyid.KeyID{})
			log.Infof("unbind action, from %s", v.address(relation.From))
		}
	}
	return nil
}
