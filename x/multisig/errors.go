package multisig

import (
	"github.com/iov-one/quorum/errors"
)

// x/multisig reserves 150 ~ 159.
var (
	ErrAlreadyExecuted       = errors.Register(150, "proposal already executed")
	ErrDuplicateConfirmation = errors.Register(151, "already confirmed")
	ErrNoSuchConfirmation    = errors.Register(152, "not confirmed")
	ErrQuorumNotMet          = errors.Register(153, "not enough confirmations")
	ErrInvariantViolation    = errors.Register(154, "owner set invariant violation")
	ErrEffectFailed          = errors.Register(155, "execution effect failed")
)
