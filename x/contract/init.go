package contract

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

const optKey = "contract"

// GenesisContract declares a receiver deployment in the genesis file.
type GenesisContract struct {
	Address quorum.Address `json:"address"`
	Kind    string         `json:"kind"`
	DeployOptions
}

// Initializer deploys the contracts declared in the genesis file.
type Initializer struct {
	Registry *Registry
}

var _ quorum.Initializer = (*Initializer)(nil)

// FromGenesis deploys all contracts declared under the "contract" key.
func (i *Initializer) FromGenesis(ctx quorum.Context, opts quorum.Options, db quorum.KVStore) error {
	var contracts []GenesisContract
	if err := opts.ReadOptions(optKey, &contracts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	for n, c := range contracts {
		if err := i.Registry.Deploy(db, c.Address, c.Kind, c.DeployOptions); err != nil {
			return errors.Wrapf(err, "contract %d", n)
		}
	}
	return nil
}
