package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// App is the sequencer of the ledger. It applies one transaction at a time
// on top of a committed store. Each delivered transaction is run on its own
// cache and written only if it succeeded.
type App struct {
	name   string
	logger log.Logger

	store       *CommitStore
	decoder     TxDecoder
	handler     quorum.Handler
	initializer quorum.Initializer
	queryRouter quorum.QueryRouter

	// chainID is loaded from db in initialization
	// saved once in InitChain
	chainID string

	// baseContext contains context info that is valid for
	// lifetime of this app (eg. chainID)
	baseContext quorum.Context

	// blockContext carries the block time, reset on BeginBlock
	blockContext quorum.Context
}

// NewApp loads the application state from given store.
func NewApp(
	name string,
	store quorum.CommitKVStore,
	decoder TxDecoder,
	handler quorum.Handler,
	queryRouter quorum.QueryRouter,
	baseContext quorum.Context,
) (*App, error) {
	cs, err := NewCommitStore(store)
	if err != nil {
		return nil, err
	}
	a := &App{
		name:        name,
		store:       cs,
		decoder:     decoder,
		handler:     handler,
		queryRouter: queryRouter,
		baseContext: baseContext,
	}
	a = a.WithLogger(log.NewNopLogger())

	a.chainID, err = loadChainID(a.store.DeliverStore())
	if err != nil {
		return nil, err
	}
	if a.chainID != "" {
		a.baseContext = quorum.WithChainID(a.baseContext, a.chainID)
	}
	a.blockContext = a.baseContext
	return a, nil
}

// WithInit is used to set the init function we call
func (a *App) WithInit(init quorum.Initializer) *App {
	a.initializer = init
	return a
}

// WithLogger sets the logger on the App and returns it,
// to make it easy to chain in initialization
//
// also sets baseContext logger
func (a *App) WithLogger(logger log.Logger) *App {
	a.baseContext = quorum.WithLogger(a.baseContext, logger)
	a.logger = logger
	return a
}

// Logger returns the application base logger
func (a *App) Logger() log.Logger {
	return a.logger
}

// ChainID returns the chain ID set at genesis or an empty string.
func (a *App) ChainID() string {
	return a.chainID
}

// InitChain stores the chain ID and runs all initializers with the genesis
// options. It can be called only once for the lifetime of the state.
func (a *App) InitChain(chainID string, opts quorum.Options) error {
	if a.chainID != "" {
		return errors.Wrapf(errors.ErrState, "state previously loaded for chain: %s", a.chainID)
	}
	cache := a.store.DeliverStore().CacheWrap()
	if err := saveChainID(cache, chainID); err != nil {
		cache.Discard()
		return err
	}
	ctx := quorum.WithChainID(a.baseContext, chainID)
	if a.initializer != nil {
		initCtx := quorum.WithLogInfo(ctx, "call", "init_chain")
		if err := a.initializer.FromGenesis(initCtx, opts, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "genesis")
		}
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	a.chainID = chainID
	a.baseContext = ctx
	a.blockContext = ctx
	a.logger.Info("chain initialized", "chain_id", chainID)
	return nil
}

// BeginBlock sets the time all following transactions observe.
func (a *App) BeginBlock(now time.Time) {
	a.blockContext = quorum.WithBlockTime(a.baseContext, now)
}

// BlockContext returns the block context for public use
func (a *App) BlockContext() quorum.Context {
	return a.blockContext
}

// DeliverStore returns the current DeliverTx cache for methods
func (a *App) DeliverStore() quorum.CacheableKVStore {
	return a.store.DeliverStore()
}

// CheckTx runs the checking phase of a transaction. Successful checks are
// kept in the check store until the next commit so that transactions of the
// same block are checked against each other.
func (a *App) CheckTx(raw []byte) (*quorum.CheckResult, error) {
	tx, err := a.loadTx(raw)
	if err != nil {
		return nil, err
	}
	ctx := quorum.WithLogInfo(a.blockContext,
		"call", "check_tx",
		"path", quorum.GetPath(tx))

	cache := a.store.CheckStore().CacheWrap()
	res, err := a.handler.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return res, nil
}

// DeliverTx applies a transaction. All changes are written or none.
func (a *App) DeliverTx(raw []byte) (*quorum.DeliverResult, error) {
	tx, err := a.loadTx(raw)
	if err != nil {
		return nil, err
	}
	ctx := quorum.WithLogInfo(a.blockContext,
		"call", "deliver_tx",
		"path", quorum.GetPath(tx))

	cache := a.store.DeliverStore().CacheWrap()
	res, err := a.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return res, nil
}

// loadTx calls the decoder, and capture any panics
func (a *App) loadTx(raw []byte) (tx quorum.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = a.decoder(raw)
	return
}

// Commit persists all delivered transactions.
func (a *App) Commit() (quorum.CommitID, error) {
	id, err := a.store.Commit()
	if err != nil {
		return id, err
	}
	a.logger.Debug("Commit synced",
		"height", id.Version,
		"hash", fmt.Sprintf("%X", id.Hash),
	)
	return id, nil
}

// Query runs a query against the last committed state.
//
// Path may be "/<bucket>", followed by "?prefix" to make a prefix query.
func (a *App) Query(path string, data []byte) ([]quorum.Model, error) {
	path, mod := splitPath(path)
	qh := a.queryRouter.Handler(path)
	if qh == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "unexpected query path: %v", path)
	}
	db := a.store.Committed()
	defer db.Discard()
	return qh.Query(db, mod, data)
}

// splitPath splits out the real path along with the query
// modifier (everything after the ?)
func splitPath(path string) (string, string) {
	var mod string
	chunks := strings.SplitN(path, "?", 2)
	if len(chunks) == 2 {
		path = chunks[0]
		mod = chunks[1]
	}
	return path, mod
}

// Close releases the resources held by the underlying store, if any.
func (a *App) Close() {
	if c, ok := a.store.committed.(interface{ Close() }); ok {
		c.Close()
	}
}
