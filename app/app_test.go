package app

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store/iavl"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/weavetest/assert"
	"github.com/stretchr/testify/require"
)

// decodePath treats the raw transaction as a message path.
func decodePath(raw []byte) (quorum.Tx, error) {
	switch string(raw) {
	case "":
		return nil, errors.Wrap(errors.ErrInput, "empty transaction")
	case "panic":
		panic("cannot decode")
	}
	return &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: string(raw)}}, nil
}

// ctxHandler records the context of the last delivery.
type ctxHandler struct {
	ctx quorum.Context
}

func (h *ctxHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	return &quorum.CheckResult{}, nil
}

func (h *ctxHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	h.ctx = ctx
	return &quorum.DeliverResult{}, nil
}

// getQuery returns the value stored under the queried key.
type getQuery struct{}

func (getQuery) Query(db quorum.ReadOnlyKVStore, mod string, data []byte) ([]quorum.Model, error) {
	v, err := db.Get(data)
	if err != nil || v == nil {
		return nil, err
	}
	return []quorum.Model{quorum.Pair(data, v)}, nil
}

type keyInit struct{}

func (keyInit) FromGenesis(ctx quorum.Context, opts quorum.Options, kv quorum.KVStore) error {
	var value string
	if err := opts.ReadOptions("key", &value); err != nil {
		return err
	}
	if value == "" {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	return kv.Set([]byte("key"), []byte(value))
}

type testApp struct {
	*App
	spy *ctxHandler
}

func newTestApp(t testing.TB, kv quorum.CommitKVStore) testApp {
	t.Helper()

	spy := &ctxHandler{}
	r := NewRouter()
	r.Handle("write", &weavetest.Handler{WriteKey: []byte("written"), WriteValue: []byte("yes")})
	r.Handle("fail", &weavetest.Handler{
		WriteKey:   []byte("failed"),
		WriteValue: []byte("yes"),
		DeliverErr: errors.ErrState,
		CheckErr:   errors.ErrState,
	})
	r.Handle("spy", spy)

	qr := quorum.NewQueryRouter()
	qr.Register("/get", getQuery{})

	a, err := NewApp("test", kv, decodePath, r, qr, context.Background())
	require.NoError(t, err)
	return testApp{App: a.WithInit(keyInit{}), spy: spy}
}

func opts(t testing.TB, value string) quorum.Options {
	raw, err := json.Marshal(value)
	require.NoError(t, err)
	return quorum.Options{"key": raw}
}

func TestAppDeliver(t *testing.T) {
	kv := iavl.NewMemCommitStore()
	a := newTestApp(t, kv)
	require.NoError(t, a.InitChain("test-chain", opts(t, "genesis")))
	assert.Equal(t, "test-chain", a.ChainID())

	now := time.Date(2019, 3, 1, 12, 0, 0, 0, time.UTC)
	a.BeginBlock(now)

	_, err := a.DeliverTx([]byte("write"))
	assert.Nil(t, err)
	_, err = a.DeliverTx([]byte("fail"))
	assert.IsErr(t, errors.ErrState, err)
	_, err = a.DeliverTx([]byte("missing"))
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = a.DeliverTx(nil)
	assert.IsErr(t, errors.ErrInput, err)
	_, err = a.DeliverTx([]byte("panic"))
	assert.IsErr(t, errors.ErrPanic, err)

	_, err = a.DeliverTx([]byte("spy"))
	assert.Nil(t, err)
	blockTime, ok := quorum.BlockTime(a.spy.ctx)
	require.True(t, ok)
	assert.Equal(t, now, blockTime)
	assert.Equal(t, "test-chain", quorum.GetChainID(a.spy.ctx))

	// successful deliveries are visible to following transactions
	v, err := a.DeliverStore().Get([]byte("written"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("yes"), v)
	v, err = a.DeliverStore().Get([]byte("failed"))
	assert.Nil(t, err)
	assert.Nil(t, v)

	// but not to queries until committed
	models, err := a.Query("/get", []byte("written"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(models))

	id, err := a.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)

	models, err = a.Query("/get", []byte("written"))
	assert.Nil(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, []byte("yes"), models[0].Value)

	models, err = a.Query("/get?prefix", []byte("key"))
	assert.Nil(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, []byte("genesis"), models[0].Value)

	_, err = a.Query("/unknown", nil)
	assert.IsErr(t, errors.ErrNotFound, err)

	// reloading the state keeps the chain
	reloaded := newTestApp(t, kv)
	assert.Equal(t, "test-chain", reloaded.ChainID())
	err = reloaded.InitChain("other-chain", nil)
	assert.IsErr(t, errors.ErrState, err)
}

func TestAppCheck(t *testing.T) {
	a := newTestApp(t, iavl.NewMemCommitStore())
	require.NoError(t, a.InitChain("test-chain", opts(t, "genesis")))
	a.BeginBlock(time.Now())

	_, err := a.CheckTx([]byte("write"))
	assert.Nil(t, err)
	_, err = a.CheckTx([]byte("fail"))
	assert.IsErr(t, errors.ErrState, err)

	// checks never touch the delivery state
	v, err := a.DeliverStore().Get([]byte("written"))
	assert.Nil(t, err)
	assert.Nil(t, v)
}

func TestAppInitChain(t *testing.T) {
	cases := map[string]struct {
		chainID string
		opts    quorum.Options
		wantErr *errors.Error
	}{
		"valid": {
			chainID: "test-chain",
			opts:    opts(t, "value"),
		},
		"invalid chain id": {
			chainID: "bad",
			opts:    opts(t, "value"),
			wantErr: errors.ErrInput,
		},
		"initializer failure": {
			chainID: "test-chain",
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			a := newTestApp(t, iavl.NewMemCommitStore())
			err := a.InitChain(tc.chainID, tc.opts)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				assert.Equal(t, "", a.ChainID())
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.chainID, a.ChainID())
		})
	}
}

func TestSplitPath(t *testing.T) {
	path, mod := splitPath("/wallets?prefix")
	assert.Equal(t, "/wallets", path)
	assert.Equal(t, "prefix", mod)

	path, mod = splitPath("/wallets")
	assert.Equal(t, "/wallets", path)
	assert.Equal(t, "", mod)
}
