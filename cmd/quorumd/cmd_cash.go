package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/quorum/x/cash"
)

func cmdSend(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Send funds from your account. Use it to fund a wallet before its proposals
can move any value.
`)
		fl.PrintDefaults()
	}
	var (
		txFl     = addTxFlags(fl)
		srcFl    = flAddress(fl, "src", "", "Source account. Defaults to the address of the signing key.")
		dstFl    = flAddress(fl, "dst", "", "Destination address.")
		amountFl = fl.Int64("amount", 0, "Amount to transfer.")
		memoFl   = fl.String("memo", "", "Short text attached to the transfer.")
	)
	fl.Parse(args)

	src := *srcFl
	if len(src) == 0 {
		path, err := keyPath(*txFl.key, *txFl.home)
		if err != nil {
			return err
		}
		key, err := loadKey(path)
		if err != nil {
			return err
		}
		src = key.PublicKey().Address()
	}
	msg := &cash.SendMsg{
		Source:      src,
		Destination: *dstFl,
		Amount:      *amountFl,
		Memo:        *memoFl,
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %s", err)
	}
	return txFl.send(output, msg, false)
}

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the balance of an address.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl = fl.String("home", defaultHome(), "Directory holding the configuration and the state.")
		addrFl = flAddress(fl, "address", "", "Address to print the balance of.")
	)
	fl.Parse(args)

	if err := addrFl.Validate(); err != nil {
		return fmt.Errorf("invalid address: %s", err)
	}
	n, err := openNode(*homeFl)
	if err != nil {
		return err
	}
	defer n.Close()

	var b cash.Balance
	if _, err := n.query("/balances", *addrFl, &b); err != nil {
		return err
	}
	return writeYAML(output, struct {
		Address string `yaml:"address"`
		Amount  int64  `yaml:"amount"`
	}{
		Address: addrFl.String(),
		Amount:  b.Amount,
	})
}
