/*
Package app wires the extensions of this repository into a ready to use
multisig ledger application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/store/iavl"
	"github.com/iov-one/quorum/x"
	"github.com/iov-one/quorum/x/cash"
	"github.com/iov-one/quorum/x/contract"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/iov-one/quorum/x/sigs"
	"github.com/iov-one/quorum/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{}, multisig.Authenticate{})
}

// CashControl returns a controller for cash functions
func CashControl() cash.Controller {
	return cash.NewController()
}

// Contracts returns the registry of all call targets.
func Contracts() *contract.Registry {
	return contract.NewRegistry()
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		// proposals can be executed without a signature
		sigs.NewDecorator().AllowMissingSigs(),
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns the router dispatching to all extensions.
func Router(authFn x.Authenticator, contracts *contract.Registry) *app.Router {
	r := app.NewRouter()
	cashCtrl := CashControl()
	cash.RegisterRoutes(r, authFn, cashCtrl)
	ctrl := multisig.NewController(multisig.NewExecutor(cashCtrl, contracts))
	multisig.RegisterRoutes(r, authFn, ctrl)
	return r
}

// QueryRouter returns a default query router, allowing access to
// "/balances", "/auth", "/contracts", "/storage", "/wallets", "/proposals"
// and "/confirmations".
func QueryRouter(contracts *contract.Registry) quorum.QueryRouter {
	r := quorum.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		contracts.RegisterQuery,
		multisig.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis initializers of all extensions.
func Initializers(contracts *contract.Registry) quorum.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		&contract.Initializer{Registry: contracts},
		multisig.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into app.NewApp.
func Stack(contracts *contract.Registry) quorum.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn, contracts))
}

// Application constructs the ledger application using state stored at
// given path. An empty path keeps the state in memory.
func Application(name, dbPath string, logger log.Logger) (*app.App, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	contracts := Contracts()
	a, err := app.NewApp(name, kv, DecodeTx, Stack(contracts), QueryRouter(contracts), context.Background())
	if err != nil {
		return nil, err
	}
	return a.WithInit(Initializers(contracts)).WithLogger(logger), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (quorum.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, err
	}
	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
