package contract

import (
	"github.com/iov-one/quorum/errors"
)

// x/contract reserves 140 ~ 149.
var (
	ErrRejected    = errors.Register(140, "call rejected")
	ErrUnknownKind = errors.Register(141, "unknown contract kind")
)
