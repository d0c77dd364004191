package contract

import (
	"fmt"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// Receiver is a contract that can be called with value and call data.
// Returning an error rejects the call.
type Receiver interface {
	Receive(ctx quorum.Context, db quorum.KVStore, self, from quorum.Address, value int64, payload []byte) error
}

// Deployer is implemented by receivers that keep their own state and must
// initialize it when deployed.
type Deployer interface {
	Deploy(db quorum.KVStore, self quorum.Address, opts DeployOptions) error
}

// DeployOptions are the receiver independent deployment settings.
type DeployOptions struct {
	RejectValue bool `json:"reject_value"`
}

// Registry keeps track of the receivers deployed at addresses.
type Registry struct {
	bucket orm.Bucket
	kinds  map[string]Receiver
}

// NewRegistry returns a registry that knows all receiver kinds of this
// package.
func NewRegistry() *Registry {
	r := &Registry{
		bucket: orm.NewBucket("contract", &Contract{}),
		kinds:  make(map[string]Receiver),
	}
	r.RegisterKind(StorageKind, Storage{})
	return r
}

// RegisterKind makes a receiver kind available for deployment.
// It panics if the kind was already registered.
func (r *Registry) RegisterKind(kind string, rec Receiver) {
	if _, ok := r.kinds[kind]; ok {
		panic(fmt.Sprintf("contract kind %q already registered", kind))
	}
	r.kinds[kind] = rec
}

// Deploy binds a receiver of given kind to an address.
func (r *Registry) Deploy(db quorum.KVStore, addr quorum.Address, kind string, opts DeployOptions) error {
	rec, ok := r.kinds[kind]
	if !ok {
		return errors.Wrapf(ErrUnknownKind, "%q", kind)
	}
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	switch exists, err := r.bucket.Has(db, addr); {
	case err != nil:
		return err
	case exists:
		return errors.Wrapf(errors.ErrDuplicate, "contract at %s", addr)
	}
	if err := r.bucket.Put(db, addr, &Contract{Kind: kind}); err != nil {
		return err
	}
	if d, ok := rec.(Deployer); ok {
		return d.Deploy(db, addr, opts)
	}
	return nil
}

// Receiver returns the receiver deployed at given address or nil if the
// address is a plain account.
func (r *Registry) Receiver(db quorum.ReadOnlyKVStore, addr quorum.Address) (Receiver, error) {
	var c Contract
	switch err := r.bucket.One(db, addr, &c); {
	case errors.ErrNotFound.Is(err):
		return nil, nil
	case err != nil:
		return nil, err
	}
	rec, ok := r.kinds[c.Kind]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownKind, "%q deployed at %s", c.Kind, addr)
	}
	return rec, nil
}

// Call delivers value and payload to the receiver at given address. Calling a
// plain account is a no-op. The value itself must be moved by the caller.
func (r *Registry) Call(ctx quorum.Context, db quorum.KVStore, target, from quorum.Address, value int64, payload []byte) error {
	rec, err := r.Receiver(db, target)
	if err != nil {
		return err
	}
	if rec == nil {
		return nil
	}
	return rec.Receive(ctx, db, target, from, value, payload)
}

// RegisterQuery will register deployments as "/contracts"
func (r *Registry) RegisterQuery(qr quorum.QueryRouter) {
	r.bucket.Register("contracts", qr)
	NewStorageBucket().Register("storage", qr)
}
