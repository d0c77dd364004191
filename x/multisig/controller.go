package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Controller drives the life cycle of wallet proposals: submission,
// confirmation, revocation and execution.
type Controller struct {
	wallets   WalletBucket
	proposals ProposalBucket
	confirms  ConfirmationBucket
	exec      Executor
}

// NewController returns a controller that uses given executor for the
// effects of executed proposals.
func NewController(exec Executor) *Controller {
	return &Controller{
		wallets:   NewWalletBucket(),
		proposals: NewProposalBucket(),
		confirms:  NewConfirmationBucket(),
		exec:      exec,
	}
}

// CreateWallet registers a new wallet with given owners and threshold and
// returns its ID.
func (c *Controller) CreateWallet(db quorum.KVStore, owners []quorum.Address, threshold int32) ([]byte, *Wallet, error) {
	w := &Wallet{Owners: owners, Threshold: threshold}
	if err := validateOwnerSet(w.Owners, w.Threshold); err != nil {
		return nil, nil, err
	}
	id, err := c.wallets.Create(db, w)
	if err != nil {
		return nil, nil, err
	}
	return id, w, nil
}

// Wallet returns the wallet with given ID.
func (c *Controller) Wallet(db quorum.ReadOnlyKVStore, walletID []byte) (*Wallet, error) {
	return c.wallets.GetWallet(db, walletID)
}

// Submit appends a proposal calling target with value and payload. The
// proposer must be an owner. A proposal cannot target the wallet itself,
// governance commands must use SubmitCommand.
func (c *Controller) Submit(ctx quorum.Context, db quorum.KVStore, walletID []byte, proposer, target quorum.Address, value int64, payload []byte, expiresAt quorum.UnixTime) (int64, error) {
	w, err := c.ownedWallet(db, walletID, proposer)
	if err != nil {
		return 0, err
	}
	if target.Equals(w.Address) {
		return 0, errors.Wrap(errors.ErrInput, "wallet can be targeted only with a governance command")
	}
	p := &Proposal{
		WalletID:  walletID,
		Target:    target,
		Value:     value,
		Payload:   payload,
		ExpiresAt: expiresAt,
	}
	return c.submit(ctx, db, proposer, p)
}

// SubmitCommand appends an inner proposal applying given governance command
// to the wallet. The proposer must be an owner.
func (c *Controller) SubmitCommand(ctx quorum.Context, db quorum.KVStore, walletID []byte, proposer quorum.Address, cmd *Command, expiresAt quorum.UnixTime) (int64, error) {
	w, err := c.ownedWallet(db, walletID, proposer)
	if err != nil {
		return 0, err
	}
	p := &Proposal{
		WalletID:  walletID,
		Target:    w.Address,
		ExpiresAt: expiresAt,
		Inner:     true,
		Command:   cmd,
	}
	return c.submit(ctx, db, proposer, p)
}

func (c *Controller) submit(ctx quorum.Context, db quorum.KVStore, proposer quorum.Address, p *Proposal) (int64, error) {
	p.Proposer = proposer
	if now, ok := quorum.BlockTime(ctx); ok {
		p.CreatedAt = quorum.AsUnixTime(now)
	}
	if err := p.Validate(); err != nil {
		return 0, errors.Wrap(err, "invalid proposal")
	}
	index, err := c.proposals.Append(db, p)
	if err != nil {
		return 0, err
	}
	quorum.GetLogger(ctx).Debug("proposal submitted",
		"target", p.Target, "index", index, "inner", p.Inner)
	return index, nil
}

// Confirm records the approval of an owner. Each owner can confirm a
// proposal once.
func (c *Controller) Confirm(db quorum.KVStore, walletID []byte, index int64, owner quorum.Address) (*Proposal, error) {
	p, err := c.pending(db, walletID, index, owner)
	if err != nil {
		return nil, err
	}
	switch ok, err := c.confirms.IsConfirmed(db, walletID, index, owner); {
	case err != nil:
		return nil, err
	case ok:
		return nil, errors.Wrapf(ErrDuplicateConfirmation, "%s", owner)
	}
	if err := c.confirms.Confirm(db, walletID, index, owner); err != nil {
		return nil, err
	}
	p.Confirmations++
	if err := c.proposals.Save(db, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Revoke withdraws a previously given approval.
func (c *Controller) Revoke(db quorum.KVStore, walletID []byte, index int64, owner quorum.Address) (*Proposal, error) {
	p, err := c.pending(db, walletID, index, owner)
	if err != nil {
		return nil, err
	}
	switch ok, err := c.confirms.IsConfirmed(db, walletID, index, owner); {
	case err != nil:
		return nil, err
	case !ok:
		return nil, errors.Wrapf(ErrNoSuchConfirmation, "%s", owner)
	}
	if err := c.confirms.Revoke(db, walletID, index, owner); err != nil {
		return nil, err
	}
	p.Confirmations--
	if err := c.proposals.Save(db, p); err != nil {
		return nil, err
	}
	return p, nil
}

// pending loads a proposal that can still be confirmed or revoked by given
// owner.
func (c *Controller) pending(db quorum.ReadOnlyKVStore, walletID []byte, index int64, owner quorum.Address) (*Proposal, error) {
	if _, err := c.ownedWallet(db, walletID, owner); err != nil {
		return nil, err
	}
	p, err := c.proposals.GetProposal(db, walletID, index)
	if err != nil {
		return nil, err
	}
	if p.Executed {
		return nil, errors.Wrapf(ErrAlreadyExecuted, "proposal %d", index)
	}
	return p, nil
}

// Execute runs a proposal that gathered enough confirmations and did not
// expire. Anyone can execute. The proposal is marked as executed before its
// effect is applied. If the effect fails, no change is written, including
// the executed flag.
func (c *Controller) Execute(ctx quorum.Context, db quorum.KVStore, walletID []byte, index int64) (*Proposal, []quorum.Event, error) {
	w, err := c.wallets.GetWallet(db, walletID)
	if err != nil {
		return nil, nil, err
	}
	p, err := c.proposals.GetProposal(db, walletID, index)
	if err != nil {
		return nil, nil, err
	}
	if p.Executed {
		return nil, nil, errors.Wrapf(ErrAlreadyExecuted, "proposal %d", index)
	}
	if p.Confirmations < w.Threshold {
		return nil, nil, errors.Wrapf(ErrQuorumNotMet, "%d of %d", p.Confirmations, w.Threshold)
	}
	if quorum.IsExpired(ctx, p.ExpiresAt) {
		return nil, nil, errors.Wrapf(errors.ErrExpired, "proposal %d expired at %s", index, p.ExpiresAt)
	}

	events, err := atomically(db, func(db quorum.KVStore) ([]quorum.Event, error) {
		p.Executed = true
		if err := c.proposals.Save(db, p); err != nil {
			return nil, err
		}
		return c.exec.Execute(withWallet(ctx, walletID), db, w, p)
	})
	if err != nil {
		p.Executed = false
		return nil, nil, err
	}
	quorum.GetLogger(ctx).Info("proposal executed",
		"wallet", w.Address, "index", index, "inner", p.Inner)
	return p, events, nil
}

// atomically runs fn on a cache of db when the store supports it, so that
// the result of fn is written only if it succeeds.
func atomically(db quorum.KVStore, fn func(quorum.KVStore) ([]quorum.Event, error)) ([]quorum.Event, error) {
	cacheable, ok := db.(quorum.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	events, err := fn(cache)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return events, nil
}

func (c *Controller) ownedWallet(db quorum.ReadOnlyKVStore, walletID []byte, owner quorum.Address) (*Wallet, error) {
	w, err := c.wallets.GetWallet(db, walletID)
	if err != nil {
		return nil, err
	}
	if !w.IsOwner(owner) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not an owner", owner)
	}
	return w, nil
}

// IsOwner returns true if given address is an owner of the wallet.
func (c *Controller) IsOwner(db quorum.ReadOnlyKVStore, walletID []byte, addr quorum.Address) (bool, error) {
	w, err := c.wallets.GetWallet(db, walletID)
	if err != nil {
		return false, err
	}
	return w.IsOwner(addr), nil
}

// NumOwners returns the size of the owner set.
func (c *Controller) NumOwners(db quorum.ReadOnlyKVStore, walletID []byte) (int, error) {
	w, err := c.wallets.GetWallet(db, walletID)
	if err != nil {
		return 0, err
	}
	return len(w.Owners), nil
}

// Owners returns the owner set in its current order.
func (c *Controller) Owners(db quorum.ReadOnlyKVStore, walletID []byte) ([]quorum.Address, error) {
	w, err := c.wallets.GetWallet(db, walletID)
	if err != nil {
		return nil, err
	}
	return w.Owners, nil
}

// Threshold returns the number of confirmations required for execution.
func (c *Controller) Threshold(db quorum.ReadOnlyKVStore, walletID []byte) (int32, error) {
	w, err := c.wallets.GetWallet(db, walletID)
	if err != nil {
		return 0, err
	}
	return w.Threshold, nil
}

// TransactionCount returns the number of proposals ever submitted.
func (c *Controller) TransactionCount(db quorum.ReadOnlyKVStore, walletID []byte) (int64, error) {
	if _, err := c.wallets.GetWallet(db, walletID); err != nil {
		return 0, err
	}
	return c.proposals.Count(db, walletID)
}

// Transaction returns a snapshot of the proposal at given index.
func (c *Controller) Transaction(db quorum.ReadOnlyKVStore, walletID []byte, index int64) (*Proposal, error) {
	return c.proposals.GetProposal(db, walletID, index)
}

// IsConfirmed returns true if the owner confirmed the proposal.
func (c *Controller) IsConfirmed(db quorum.ReadOnlyKVStore, walletID []byte, index int64, owner quorum.Address) (bool, error) {
	if _, err := c.proposals.GetProposal(db, walletID, index); err != nil {
		return false, err
	}
	return c.confirms.IsConfirmed(db, walletID, index, owner)
}

// Confirmers returns addresses of everyone that confirmed the proposal.
// Addresses of owners removed since they confirmed are included.
func (c *Controller) Confirmers(db quorum.ReadOnlyKVStore, walletID []byte, index int64) ([]quorum.Address, error) {
	if _, err := c.proposals.GetProposal(db, walletID, index); err != nil {
		return nil, err
	}
	return c.confirms.Confirmers(db, walletID, index)
}
