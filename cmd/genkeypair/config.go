package main

import (
	"github.com/blockinator/lava/cmd/cmdconfig"
	"github.com/jessevdk/go-flags"
)

type config struct {
	ShowVersion bool `long:"version" short:"V" description:"Display version information and exit"`
	cmdconfig.NetConfig
}

func parseCommandLine() (*config, error) {
	cfg := &config{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	err = cmdconfig.ParseNetConfig(cfg.NetConfig, parser)
	return cfg, err
}
