package main

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/errors"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Initialize the state from a genesis file.

The genesis file declares the chain ID and the initial state of each
extension under the "app_state" key: "cash" balances, "contract" deployments
and "multisig" wallets. The chain ID is written to the configuration file.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl    = fl.String("home", defaultHome(), "Directory holding the configuration and the state.")
		genesisFl = fl.String("genesis", "", "Path to the genesis file. Defaults to genesis.json in the home directory.")
	)
	fl.Parse(args)

	path := *genesisFl
	if path == "" {
		path = filepath.Join(*homeFl, "genesis.json")
	}
	gen, err := app.LoadGenesis(path)
	if err != nil {
		return err
	}

	n, err := openNode(*homeFl)
	if err != nil {
		return err
	}
	defer n.Close()

	if err := n.app.InitChain(gen.ChainID, gen.AppState); err != nil {
		return err
	}
	if _, err := n.app.Commit(); err != nil {
		return errors.Wrap(err, "commit genesis")
	}
	n.conf.ChainID = gen.ChainID
	if err := n.conf.save(*homeFl); err != nil {
		return err
	}
	_, err = fmt.Fprintf(output, "chain %s initialized\n", gen.ChainID)
	return err
}
