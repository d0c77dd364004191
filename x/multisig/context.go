package multisig

import (
	"context"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/x"
)

type contextKey int // local to the multisig module

const (
	contextKeyWallet contextKey = iota
)

// withWallet is a private method, as only the execution of a proposal can
// act on behalf of a wallet.
func withWallet(ctx quorum.Context, id []byte) quorum.Context {
	return context.WithValue(ctx, contextKeyWallet, WalletCondition(id))
}

// Authenticate gives access to the condition of the wallet whose proposal
// is being executed.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the wallet condition set on this context.
func (a Authenticate) GetConditions(ctx quorum.Context) []quorum.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeyWallet).(quorum.Condition)
	if val == nil {
		return nil
	}
	return []quorum.Condition{val}
}

// HasAddress returns true iff this address is in GetConditions
func (a Authenticate) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
