package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

const optKey = "multisig"

// GenesisWallet declares a wallet created at genesis. Wallets receive IDs in
// the order they are declared, starting with 1.
type GenesisWallet struct {
	Owners    []quorum.Address `json:"owners"`
	Threshold int32            `json:"threshold"`
}

// Initializer creates wallets declared in the genesis file.
type Initializer struct{}

var _ quorum.Initializer = Initializer{}

// FromGenesis creates all wallets declared under the "multisig" key.
func (Initializer) FromGenesis(ctx quorum.Context, opts quorum.Options, db quorum.KVStore) error {
	var wallets []GenesisWallet
	if err := opts.ReadOptions(optKey, &wallets); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := NewController(nil)
	for i, w := range wallets {
		id, created, err := ctrl.CreateWallet(db, w.Owners, w.Threshold)
		if err != nil {
			return errors.Wrapf(err, "wallet %d", i)
		}
		quorum.GetLogger(ctx).Info("genesis wallet created",
			"id", walletAttr(id), "address", created.Address)
	}
	return nil
}
