package main

import (
	"encoding/binary"
	"flag"
	"io"
	"time"

	"github.com/iov-one/quorum"
)

// sequenceID returns a sequence value encoded as implemented in the orm
// package.
func sequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// txFlags are the flags shared by all commands sending a transaction.
type txFlags struct {
	home *string
	key  *string
	now  *time.Time
}

func addTxFlags(fl *flag.FlagSet) txFlags {
	return txFlags{
		home: fl.String("home", defaultHome(), "Directory holding the configuration and the state."),
		key: fl.String("key", env("QUORUMD_PRIV_KEY", ""),
			"Path to the private key file that transaction should be signed with. Defaults to the configured key."),
		now: flTime(fl, "time", "Block time in RFC3339 format. Defaults to now."),
	}
}

// send signs the message with the configured key and applies it in a new
// block. Set withID when the result data is a sequence value.
func (f txFlags) send(output io.Writer, msg quorum.Msg, withID bool) error {
	path, err := keyPath(*f.key, *f.home)
	if err != nil {
		return err
	}
	key, err := loadKey(path)
	if err != nil {
		return err
	}
	n, err := openNode(*f.home)
	if err != nil {
		return err
	}
	defer n.Close()

	res, err := n.deliver(key, msg, *f.now)
	if err != nil {
		return err
	}
	return writeResult(output, res, withID)
}

// sendUnsigned applies the message in a new block without a signature.
func (f txFlags) sendUnsigned(output io.Writer, msg quorum.Msg) error {
	n, err := openNode(*f.home)
	if err != nil {
		return err
	}
	defer n.Close()

	res, err := n.deliver(nil, msg, *f.now)
	if err != nil {
		return err
	}
	return writeResult(output, res, false)
}
