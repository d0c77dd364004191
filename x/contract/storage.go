package contract

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// StorageKind is the name under which the storage receiver is deployed.
const StorageKind = "storage"

// NewStorageBucket returns the bucket holding state of all storage
// contracts.
func NewStorageBucket() orm.Bucket {
	return orm.NewBucket("storage", &StorageState{})
}

// Storage records the argument of the last call and the value it received.
type Storage struct{}

var (
	_ Receiver = Storage{}
	_ Deployer = Storage{}
)

// Deploy initializes the contract state.
func (Storage) Deploy(db quorum.KVStore, self quorum.Address, opts DeployOptions) error {
	return NewStorageBucket().Put(db, self, &StorageState{RejectValue: opts.RejectValue})
}

// Receive accepts value unless configured to reject it. A non empty payload
// must be a StoreCall.
func (Storage) Receive(ctx quorum.Context, db quorum.KVStore, self, from quorum.Address, value int64, payload []byte) error {
	b := NewStorageBucket()
	var state StorageState
	if err := b.One(db, self, &state); err != nil {
		return errors.Wrap(err, "storage state")
	}
	if value > 0 && state.RejectValue {
		return errors.Wrap(ErrRejected, "value not accepted")
	}
	state.Received += value
	if len(payload) != 0 {
		var call StoreCall
		if err := proto.Unmarshal(payload, &call); err != nil {
			return errors.Wrapf(ErrRejected, "malformed call: %s", err)
		}
		state.Value = call.Value
		state.Calls++
		state.LastCaller = from
	}
	quorum.GetLogger(ctx).Debug("storage contract called",
		"contract", self, "from", from, "value", value)
	return b.Put(db, self, &state)
}

// LoadStorage returns the state of the storage contract at given address.
func LoadStorage(db quorum.ReadOnlyKVStore, addr quorum.Address) (*StorageState, error) {
	var state StorageState
	if err := NewStorageBucket().One(db, addr, &state); err != nil {
		return nil, err
	}
	return &state, nil
}
