package main

import (
	"github.com/blockinator/lava/cmd/cmdconfig"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

type config struct {
	ShowVersion bool   `long:"version" short:"V" description:"Display version information and exit"`
	PrivateKey  string `long:"private-key" short:"p" description:"Private key of the binding identity in HEX format"`
	TxID        string `long:"txid" short:"t" description:"ID of the transaction that will carry the action output"`
	Index       uint32 `long:"index" short:"i" description:"Index of the action output within the transaction"`
	BindTo      string `long:"bind-to" short:"b" description:"Target identity to bind to, as an address or a HEX key id"`
	Unbind      bool   `long:"unbind" short:"u" description:"Produce an unbind action instead of a bind action"`
	cmdconfig.NetConfig
}

func parseCommandLine() (*config, error) {
	cfg := &config{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	if cfg.ShowVersion {
		return cfg, nil
	}

	if cfg.PrivateKey == "" {
		return nil, errors.New("--private-key is required")
	}
	if cfg.TxID == "" {
		return nil, errors.New("--txid is required")
	}
	if cfg.Unbind == (cfg.BindTo != "") {
		return nil, errors.New("exactly one of --bind-to and --unbind must be given")
	}

	err = cmdconfig.ParseNetConfig(cfg.NetConfig, parser)
	return cfg, err
}
