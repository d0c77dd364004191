package app

import (
	"context"
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/weavetest/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	r := NewRouter()

	good := &weavetest.Handler{}
	bad := &weavetest.Handler{DeliverErr: errors.ErrState}
	r.Handle("good", good)
	r.Handle("bad", bad)

	// make sure invalid registrations panic
	require.Panics(t, func() { r.Handle("good", good) })
	require.Panics(t, func() { r.Handle("l:7", good) })
	require.Panics(t, func() { r.Handle("", good) })

	ctx := context.Background()
	db := store.MemStore()
	txFor := func(path string) *weavetest.Tx {
		return &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: path}}
	}

	_, err := r.Check(ctx, db, txFor("good"))
	assert.Nil(t, err)
	_, err = r.Deliver(ctx, db, txFor("good"))
	assert.Nil(t, err)
	assert.Equal(t, 2, good.CallCount())

	_, err = r.Deliver(ctx, db, txFor("bad"))
	assert.IsErr(t, errors.ErrState, err)
	assert.Equal(t, 1, bad.CallCount())

	_, err = r.Check(ctx, db, txFor("missing"))
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = r.Deliver(ctx, db, txFor("missing"))
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = r.Deliver(ctx, db, &weavetest.Tx{Err: errors.ErrEmpty})
	assert.IsErr(t, errors.ErrEmpty, err)
	assert.Equal(t, 2, good.CallCount())
}
