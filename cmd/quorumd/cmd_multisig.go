package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/x/multisig"
)

func cmdCreateWallet(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a new multisig wallet. The ID of the created wallet is printed.
`)
		fl.PrintDefaults()
	}
	var (
		txFl        = addTxFlags(fl)
		ownersFl    = flAddresses(fl, "owners", "Comma separated list of owner addresses.")
		thresholdFl = fl.Int("threshold", 1, "Number of confirmations required to execute a proposal.")
	)
	fl.Parse(args)

	msg := &multisig.CreateWalletMsg{
		Owners:    *ownersFl,
		Threshold: int32(*thresholdFl),
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %s", err)
	}
	return txFl.send(output, msg, true)
}

func cmdSubmit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Submit a proposal calling the target with given value and payload. The index
of the created proposal is printed.
`)
		fl.PrintDefaults()
	}
	var (
		txFl      = addTxFlags(fl)
		walletFl  = fl.Uint64("wallet", 0, "Wallet ID.")
		targetFl  = flAddress(fl, "target", "", "Address called by the proposal.")
		valueFl   = fl.Int64("value", 0, "Value moved from the wallet to the target.")
		payloadFl = flHex(fl, "payload", "", "Hex encoded call data delivered to the target.")
		expiresFl = fl.Duration("expires", 24*time.Hour, "Time after the block time until the proposal can be executed.")
	)
	fl.Parse(args)

	msg := &multisig.SubmitTransactionMsg{
		WalletID:  sequenceID(*walletFl),
		Target:    *targetFl,
		Value:     *valueFl,
		Payload:   *payloadFl,
		ExpiresAt: quorum.AsUnixTime(txFl.now.Add(*expiresFl)),
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %s", err)
	}
	return txFl.send(output, msg, true)
}

func cmdSubmitAddOwner(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Submit a governance proposal adding an owner to the wallet.
`)
		fl.PrintDefaults()
	}
	var (
		txFl      = addTxFlags(fl)
		walletFl  = fl.Uint64("wallet", 0, "Wallet ID.")
		ownerFl   = flAddress(fl, "owner", "", "Address of the new owner.")
		increaseF = fl.Bool("increase-threshold", false, "Increase the threshold by one together with adding the owner.")
		expiresFl = fl.Duration("expires", 24*time.Hour, "Time after the block time until the proposal can be executed.")
	)
	fl.Parse(args)

	msg := &multisig.SubmitAddOwnerMsg{
		WalletID:          sequenceID(*walletFl),
		Owner:             *ownerFl,
		IncreaseThreshold: *increaseF,
		ExpiresAt:         quorum.AsUnixTime(txFl.now.Add(*expiresFl)),
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %s", err)
	}
	return txFl.send(output, msg, true)
}

func cmdSubmitRemoveOwner(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Submit a governance proposal removing the owner at given position.
`)
		fl.PrintDefaults()
	}
	var (
		txFl      = addTxFlags(fl)
		walletFl  = fl.Uint64("wallet", 0, "Wallet ID.")
		indexFl   = fl.Int("owner-index", 0, "Position of the owner in the owner list, starting at 0.")
		decreaseF = fl.Bool("decrease-threshold", false, "Decrease the threshold by one together with removing the owner.")
		expiresFl = fl.Duration("expires", 24*time.Hour, "Time after the block time until the proposal can be executed.")
	)
	fl.Parse(args)

	msg := &multisig.SubmitRemoveOwnerMsg{
		WalletID:          sequenceID(*walletFl),
		OwnerIndex:        int32(*indexFl),
		DecreaseThreshold: *decreaseF,
		ExpiresAt:         quorum.AsUnixTime(txFl.now.Add(*expiresFl)),
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %s", err)
	}
	return txFl.send(output, msg, true)
}

func cmdSubmitThreshold(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Submit a governance proposal changing the number of required confirmations.
`)
		fl.PrintDefaults()
	}
	var (
		txFl        = addTxFlags(fl)
		walletFl    = fl.Uint64("wallet", 0, "Wallet ID.")
		thresholdFl = fl.Int("threshold", 1, "New threshold.")
		expiresFl   = fl.Duration("expires", 24*time.Hour, "Time after the block time until the proposal can be executed.")
	)
	fl.Parse(args)

	msg := &multisig.SubmitSetThresholdMsg{
		WalletID:  sequenceID(*walletFl),
		Threshold: int32(*thresholdFl),
		ExpiresAt: quorum.AsUnixTime(txFl.now.Add(*expiresFl)),
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %s", err)
	}
	return txFl.send(output, msg, true)
}

func cmdConfirm(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Confirm a proposal as the owner of the signing key.
`)
		fl.PrintDefaults()
	}
	var (
		txFl     = addTxFlags(fl)
		walletFl = fl.Uint64("wallet", 0, "Wallet ID.")
		indexFl  = fl.Int64("index", 0, "Proposal index.")
	)
	fl.Parse(args)

	msg := &multisig.ConfirmMsg{
		WalletID: sequenceID(*walletFl),
		Index:    *indexFl,
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %s", err)
	}
	return txFl.send(output, msg, false)
}

func cmdRevoke(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Withdraw a confirmation previously given to a proposal that was not executed.
`)
		fl.PrintDefaults()
	}
	var (
		txFl     = addTxFlags(fl)
		walletFl = fl.Uint64("wallet", 0, "Wallet ID.")
		indexFl  = fl.Int64("index", 0, "Proposal index.")
	)
	fl.Parse(args)

	msg := &multisig.RevokeMsg{
		WalletID: sequenceID(*walletFl),
		Index:    *indexFl,
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %s", err)
	}
	return txFl.send(output, msg, false)
}

func cmdExecute(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Execute a proposal that collected enough confirmations. Execution does not
require a signature.
`)
		fl.PrintDefaults()
	}
	var (
		txFl     = addTxFlags(fl)
		walletFl = fl.Uint64("wallet", 0, "Wallet ID.")
		indexFl  = fl.Int64("index", 0, "Proposal index.")
	)
	fl.Parse(args)

	msg := &multisig.ExecuteMsg{
		WalletID: sequenceID(*walletFl),
		Index:    *indexFl,
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %s", err)
	}
	return txFl.sendUnsigned(output, msg)
}

type walletView struct {
	ID        uint64   `yaml:"id"`
	Address   string   `yaml:"address"`
	Threshold int32    `yaml:"threshold"`
	Owners    []string `yaml:"owners"`
	Proposals int64    `yaml:"proposals"`
}

func cmdWallet(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the owners and the threshold of a wallet.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl   = fl.String("home", defaultHome(), "Directory holding the configuration and the state.")
		walletFl = fl.Uint64("wallet", 0, "Wallet ID.")
	)
	fl.Parse(args)

	n, err := openNode(*homeFl)
	if err != nil {
		return err
	}
	defer n.Close()

	var w multisig.Wallet
	switch ok, err := n.query("/wallets", sequenceID(*walletFl), &w); {
	case err != nil:
		return err
	case !ok:
		return fmt.Errorf("wallet %d not found", *walletFl)
	}
	models, err := n.app.Query("/proposals?prefix", sequenceID(*walletFl))
	if err != nil {
		return err
	}

	view := walletView{
		ID:        *walletFl,
		Address:   w.Address.String(),
		Threshold: w.Threshold,
		Proposals: int64(len(models)),
	}
	for _, o := range w.Owners {
		view.Owners = append(view.Owners, o.String())
	}
	return writeYAML(output, view)
}

type proposalView struct {
	Wallet        uint64   `yaml:"wallet"`
	Index         int64    `yaml:"index"`
	Kind          string   `yaml:"kind"`
	Target        string   `yaml:"target"`
	Value         int64    `yaml:"value,omitempty"`
	Payload       string   `yaml:"payload,omitempty"`
	Proposer      string   `yaml:"proposer"`
	CreatedAt     string   `yaml:"created_at,omitempty"`
	ExpiresAt     string   `yaml:"expires_at"`
	Executed      bool     `yaml:"executed"`
	Confirmations int32    `yaml:"confirmations"`
	ConfirmedBy   []string `yaml:"confirmed_by,omitempty"`
}

func cmdProposal(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print a proposal together with the owners that confirmed it.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl   = fl.String("home", defaultHome(), "Directory holding the configuration and the state.")
		walletFl = fl.Uint64("wallet", 0, "Wallet ID.")
		indexFl  = fl.Int64("index", 0, "Proposal index.")
	)
	fl.Parse(args)

	n, err := openNode(*homeFl)
	if err != nil {
		return err
	}
	defer n.Close()

	key := multisig.ProposalKey(sequenceID(*walletFl), *indexFl)
	var p multisig.Proposal
	switch ok, err := n.query("/proposals", key, &p); {
	case err != nil:
		return err
	case !ok:
		return fmt.Errorf("proposal %d of wallet %d not found", *indexFl, *walletFl)
	}

	view := proposalView{
		Wallet:        *walletFl,
		Index:         p.Index,
		Kind:          "transaction",
		Target:        p.Target.String(),
		Value:         p.Value,
		Payload:       hex.EncodeToString(p.Payload),
		Proposer:      p.Proposer.String(),
		ExpiresAt:     p.ExpiresAt.Time().UTC().Format(time.RFC3339),
		Executed:      p.Executed,
		Confirmations: p.Confirmations,
	}
	if p.Inner && p.Command != nil {
		view.Kind = p.Command.Kind.String()
	}
	if !p.CreatedAt.IsZero() {
		view.CreatedAt = p.CreatedAt.Time().UTC().Format(time.RFC3339)
	}

	models, err := n.app.Query("/confirmations?prefix", key)
	if err != nil {
		return err
	}
	for _, m := range models {
		var c multisig.Confirmation
		if err := proto.Unmarshal(m.Value, &c); err != nil {
			return err
		}
		view.ConfirmedBy = append(view.ConfirmedBy, c.Owner.String())
	}
	return writeYAML(output, view)
}
