package cmdconfig

import (
	"fmt"
	"os"

	"github.com/blockinator/lava/chaincfg"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

// ActiveNetParams holds the chain parameters selected by the network flags.
var ActiveNetParams = &chaincfg.MainnetParams

// NetConfig holds the network selection flags shared by the command line tools.
type NetConfig struct {
	Testnet bool `long:"testnet" description:"Use the test network"`
	Simnet  bool `long:"simnet" description:"Use the simulation test network"`
}

// ParseNetConfig resolves the network flags into ActiveNetParams. Multiple
// networks can't be selected simultaneously.
func ParseNetConfig(netConfig NetConfig, parser *flags.Parser) error {
	numNets := 0
	if netConfig.Testnet {
		numNets++
		ActiveNetParams = &chaincfg.TestnetParams
	}
	if netConfig.Simnet {
		numNets++
		ActiveNetParams = &chaincfg.SimnetParams
	}
	if numNets > 1 {
		err := errors.New("multiple network parameters (testnet, simnet) cannot be " +
			"used together. Please choose only one network")
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return err
	}
	return nil
}
