package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/quorum"
)

// commands is a register of all available commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// Each command opens the state stored in the home directory, applies at most
// one transaction in its own block and commits before returning. A command
// function must read and write only to provided input and output. In a
// special case of an invalid argument a message to os.Stderr and os.Exit(2)
// call are allowed.
//
//   $ quorumd create-wallet -owners $(quorumd keyaddr),$BOB -threshold 2
//   $ quorumd submit -wallet 1 -target $SHOP -value 100 -expires 24h
//   $ quorumd confirm -wallet 1 -index 0
//
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"balance":             cmdBalance,
	"confirm":             cmdConfirm,
	"create-wallet":       cmdCreateWallet,
	"execute":             cmdExecute,
	"init":                cmdInit,
	"keyaddr":             cmdKeyaddr,
	"keygen":              cmdKeygen,
	"proposal":            cmdProposal,
	"revoke":              cmdRevoke,
	"send":                cmdSend,
	"submit":              cmdSubmit,
	"submit-add-owner":    cmdSubmitAddOwner,
	"submit-remove-owner": cmdSubmitRemoveOwner,
	"submit-threshold":    cmdSubmitThreshold,
	"version":             cmdVersion,
	"wallet":              cmdWallet,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s runs the multisig ledger on a local state.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	_, err := fmt.Fprintln(out, quorum.Version())
	return err
}
