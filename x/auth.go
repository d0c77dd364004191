package x

import (
	"github.com/iov-one/quorum"
)

// Authenticator reveals which conditions authorized the current
// transaction. Handlers receive one in their constructor so that the
// source of authorization (signatures, an executing wallet) stays
// pluggable.
type Authenticator interface {
	// GetConditions returns every condition satisfied in this context.
	GetConditions(quorum.Context) []quorum.Condition
	// HasAddress checks if any satisfied condition owns this address.
	HasAddress(quorum.Context, quorum.Address) bool
}

// MultiAuth merges the view of several Authenticators.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth returns an Authenticator that accepts anything one of the
// given implementations accepts. Conditions are reported in the order of
// the implementations.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls: impls}
}

// GetConditions returns the conditions of all chained Authenticators,
// each condition at most once.
func (m MultiAuth) GetConditions(ctx quorum.Context) []quorum.Condition {
	var res []quorum.Condition
	for _, impl := range m.impls {
		for _, c := range impl.GetConditions(ctx) {
			if !containsCondition(res, c) {
				res = append(res, c)
			}
		}
	}
	return res
}

// HasAddress returns true if any chained Authenticator knows the address.
func (m MultiAuth) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first condition that authorized the
// transaction or nil.
func MainSigner(ctx quorum.Context, auth Authenticator) quorum.Condition {
	conds := auth.GetConditions(ctx)
	if len(conds) == 0 {
		return nil
	}
	return conds[0]
}

func containsCondition(set []quorum.Condition, c quorum.Condition) bool {
	for _, s := range set {
		if s.Equals(c) {
			return true
		}
	}
	return false
}
