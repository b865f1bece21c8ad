package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/blockinator/lava/domain/relation"
	"github.com/blockinator/lava/txscript"
	"github.com/blockinator/lava/util"
	"github.com/blockinator/lava/util/chainhash"
	"github.com/blockinator/lava/util/keyid"
	"github.com/blockinator/lava/version"
	"github.com/blockinator/lava/wire"
	"github.com/btcsuite/btcd/btcec"
)

func main() {
	cfg, err := parseCommandLine()
	if err != nil {
		printErrorAndExit(err, "Failed to parse arguments")
	}

	if cfg.ShowVersion {
		fmt.Printf("actionsigner version %s\n", version.Version())
		return
	}

	privateKey, err := parsePrivateKey(cfg.PrivateKey)
	if err != nil {
		printErrorAndExit(err, "Failed to decode private key")
	}

	outpoint, err := parseOutpoint(cfg.TxID, cfg.Index)
	if err != nil {
		printErrorAndExit(err, "Failed to decode outpoint")
	}

	action, err := buildAction(cfg, privateKey)
	if err != nil {
		printErrorAndExit(err, "Failed to build action")
	}

	payload, err := relation.SignAction(outpoint, action, privateKey)
	if err != nil {
		printErrorAndExit(err, "Failed to sign action")
	}

	script, err := txscript.NullDataScript(payload)
	if err != nil {
		printErrorAndExit(err, "Failed to build action script")
	}

	fmt.Printf("Action payload (hex): %s\n", hex.EncodeToString(payload))
	fmt.Printf("ScriptPubKey (hex):   %s\n", hex.EncodeToString(script))
}

func parsePrivateKey(privateKeyHex string) (*btcec.PrivateKey, error) {
	privateKeyBytes, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, err
	}
	privateKey, _ := btcec.PrivKeyFromBytes(btcec.S256(), privateKeyBytes)
	return privateKey, nil
}

func parseOutpoint(txIDHex string, index uint32) (*wire.Outpoint, error) {
	txID, err := chainhash.NewHashFromStr(txIDHex)
	if err != nil {
		return nil, err
	}
	return &wire.Outpoint{Hash: *txID, Index: index}, nil
}

func buildAction(cfg *config, privateKey *btcec.PrivateKey) (relation.Action, error) {
	from := keyid.FromPubKeyBytes(privateKey.PubKey().SerializeCompressed())
	if cfg.Unbind {
		return relation.UnbindAction{From: from}, nil
	}

	to, err := parseTarget(cfg.BindTo)
	if err != nil {
		return nil, err
	}
	return relation.BindAction{From: from, To: to}, nil
}

// parseTarget accepts either a base58check address or a raw HEX key id.
func parseTarget(target string) (keyid.KeyID, error) {
	if id, _, err := util.DecodeAddress(target); err == nil {
		return id, nil
	}
	return keyid.FromString(target)
}

func printErrorAndExit(err error, message string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", message, err)
	os.Exit(1)
}
