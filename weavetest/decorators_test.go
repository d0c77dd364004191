package weavetest

import (
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/weavetest/assert"
)

func TestDecoratorPassesThrough(t *testing.T) {
	var (
		d Decorator
		h Handler
	)
	confirm := &Tx{Msg: &Msg{RoutePath: "multisig/confirm"}}

	_, err := d.Check(nil, nil, confirm, &h)
	assert.Nil(t, err)
	_, err = d.Deliver(nil, nil, confirm, &h)
	assert.Nil(t, err)
	_, err = d.Deliver(nil, nil, &Tx{Err: errors.ErrEmpty}, &h)
	assert.Nil(t, err)

	assert.Equal(t, 1, d.CheckCallCount())
	assert.Equal(t, 3, d.CallCount())
	assert.Equal(t, []string{"multisig/confirm", ""}, d.Delivered())
	assert.Equal(t, 3, h.CallCount())
}

func TestDecoratorFailsBeforeHandler(t *testing.T) {
	d := Decorator{
		CheckErr:   errors.ErrUnauthorized,
		DeliverErr: errors.ErrExpired,
	}
	execute := &Tx{Msg: &Msg{RoutePath: "multisig/execute"}}

	// A nil handler would panic if it was called.
	_, err := d.Check(nil, nil, execute, nil)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = d.Deliver(nil, nil, execute, nil)
	assert.IsErr(t, errors.ErrExpired, err)

	assert.Equal(t, 2, d.CallCount())
	assert.Equal(t, []string{"multisig/execute"}, d.Delivered())
}

func TestDecorate(t *testing.T) {
	d := &Decorator{DeliverErr: errors.ErrState}
	h := &Handler{}
	stack := Decorate(h, d)

	_, err := stack.Check(nil, nil, &Tx{})
	assert.Nil(t, err)
	_, err = stack.Deliver(nil, nil, &Tx{})
	assert.IsErr(t, errors.ErrState, err)
	assert.Equal(t, 1, h.CallCount())
}
