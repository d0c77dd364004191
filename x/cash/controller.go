package cash

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Controller is the functionality needed by cash.Handler and
// other extensions that move value around.
type Controller interface {
	Balance(quorum.ReadOnlyKVStore, quorum.Address) (int64, error)
	MoveCoins(db quorum.KVStore, src, dest quorum.Address, amount int64) error
	IssueCoins(db quorum.KVStore, dest quorum.Address, amount int64) error
}

// BaseController is a simple implementation of controller.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns base controller implementation.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

// Balance returns the amount held by given address. Unknown addresses hold
// nothing.
func (c BaseController) Balance(db quorum.ReadOnlyKVStore, addr quorum.Address) (int64, error) {
	bal, err := c.bucket.GetOrCreate(db, addr)
	if err != nil {
		return 0, err
	}
	return bal.Amount, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't have sufficient funds, it fails.
func (c BaseController) MoveCoins(db quorum.KVStore, src, dest quorum.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.bucket.GetOrCreate(db, src)
	if err != nil {
		return err
	}
	if sender.Amount < amount {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds: %d < %d", sender.Amount, amount)
	}
	sender.Amount -= amount
	if err := c.bucket.Put(db, src, sender); err != nil {
		return err
	}

	// Recipient is loaded after the sender is saved, so that a transfer
	// to self is a no-op.
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Put(db, dest, recipient)
}

// IssueCoins attempts to add the given amount to the destination address.
// Fails if it overflows the balance.
func (c BaseController) IssueCoins(db quorum.KVStore, dest quorum.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Put(db, dest, recipient)
}
