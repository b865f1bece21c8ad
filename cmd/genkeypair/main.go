package main

import (
	"fmt"
	"os"

	"github.com/blockinator/lava/cmd/cmdconfig"
	"github.com/blockinator/lava/util"
	"github.com/blockinator/lava/util/keyid"
	"github.com/blockinator/lava/version"
	"github.com/btcsuite/btcd/btcec"
)

func main() {
	cfg, err := parseCommandLine()
	if err != nil {
		printErrorAndExit(err, "Failed to parse arguments")
	}
	if cfg.ShowVersion {
		fmt.Printf("genkeypair version %s\n", version.Version())
		return
	}

	privateKey, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		printErrorAndExit(err, "Failed to generate private key")
	}

	serializedPubKey := privateKey.PubKey().SerializeCompressed()
	id := keyid.FromPubKeyBytes(serializedPubKey)
	address := util.EncodeAddress(id, cmdconfig.ActiveNetParams.PubKeyHashAddrID)

	fmt.Printf("Private key (hex): %x\n", privateKey.Serialize())
	fmt.Printf("Public key (hex):  %x\n", serializedPubKey)
	fmt.Printf("Key id:            %s\n", id)
	fmt.Printf("Plot id:           %d\n", id.PlotID())
	fmt.Printf("Address:           %s\n", address)
}

func printErrorAndExit(err error, message string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", message, err)
	os.Exit(1)
}
