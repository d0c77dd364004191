package app

import "github.com/iov-one/quorum"

// TxDecoder reads a transaction from its serialized form.
type TxDecoder func(raw []byte) (quorum.Tx, error)
