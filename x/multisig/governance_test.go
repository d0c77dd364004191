package multisig

import (
	"context"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/weavetest/assert"
)

func TestDispatchRequiresWalletAuthority(t *testing.T) {
	env := newTestEnv(t, 2, 1)
	d := NewDispatcher()
	cmd := &Command{Kind: CommandSetThreshold, Threshold: 2}

	_, err := d.Dispatch(env.ctx, env.db, env.walletID, cmd)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// Authority of another wallet is not enough.
	other, _, err := env.ctrl.CreateWallet(env.db, env.owners, 1)
	assert.Nil(t, err)
	_, err = d.Dispatch(withWallet(env.ctx, other), env.db, env.walletID, cmd)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	events, err := d.Dispatch(withWallet(env.ctx, env.walletID), env.db, env.walletID, cmd)
	assert.Nil(t, err)
	assert.Equal(t, "threshold_changed", events[0].Type)
	th, _ := events[0].Attr("threshold")
	assert.Equal(t, "2", th)

	_, err = d.Dispatch(withWallet(env.ctx, env.walletID), env.db, env.walletID, nil)
	assert.IsErr(t, errors.ErrEmpty, err)
}

func TestWalletAuthenticate(t *testing.T) {
	id := weavetest.SequenceID(5)
	ctx := context.Background()
	auth := Authenticate{}

	assert.Equal(t, 0, len(auth.GetConditions(ctx)))
	assert.Equal(t, false, auth.HasAddress(ctx, WalletCondition(id).Address()))

	ctx = withWallet(ctx, id)
	assert.Equal(t, []quorum.Condition{WalletCondition(id)}, auth.GetConditions(ctx))
	assert.Equal(t, true, auth.HasAddress(ctx, WalletCondition(id).Address()))
	assert.Equal(t, false, auth.HasAddress(ctx, WalletCondition(weavetest.SequenceID(6)).Address()))
}

func TestAddOwnerRejectsZeroIdentity(t *testing.T) {
	w := &Wallet{Owners: []quorum.Address{weavetest.NewCondition().Address()}, Threshold: 1}
	_, err := addOwner(w, make(quorum.Address, quorum.AddressLength), false)
	assert.IsErr(t, ErrInvariantViolation, err)
	_, err = addOwner(w, nil, false)
	assert.IsErr(t, ErrInvariantViolation, err)
	assert.Equal(t, 1, len(w.Owners))
}
