package weavetest

import (
	"context"

	"github.com/iov-one/quorum"
)

// Auth is an x.Authenticator that always reports a single signer. A zero
// Auth authorizes nobody.
type Auth struct {
	Signer quorum.Condition
}

func (a *Auth) GetConditions(quorum.Context) []quorum.Condition {
	if a.Signer == nil {
		return nil
	}
	return []quorum.Condition{a.Signer}
}

func (a *Auth) HasAddress(_ quorum.Context, addr quorum.Address) bool {
	return a.Signer != nil && a.Signer.Address().Equals(addr)
}

// CtxAuth is an x.Authenticator reading conditions stored in the context
// under Key. It lets a test change the signers per call while keeping a
// single handler instance.
type CtxAuth struct {
	Key string
}

// SetConditions returns a context authorizing given conditions.
func (a *CtxAuth) SetConditions(ctx quorum.Context, conds ...quorum.Condition) quorum.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx quorum.Context) []quorum.Condition {
	conds, _ := ctx.Value(a.Key).([]quorum.Condition)
	return conds
}

func (a *CtxAuth) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
