package multisig

import (
	"strconv"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x"
)

// Dispatcher applies governance commands to the owner set of a wallet.
// A command is accepted only when the context is authorized as the wallet
// itself.
type Dispatcher struct {
	auth    x.Authenticator
	wallets WalletBucket
}

// NewDispatcher returns a dispatcher authorizing calls with the multisig
// context condition.
func NewDispatcher() Dispatcher {
	return Dispatcher{
		auth:    Authenticate{},
		wallets: NewWalletBucket(),
	}
}

// Dispatch applies the command to the wallet. Any violation of the owner
// set invariant fails the whole call and nothing is written.
func (d Dispatcher) Dispatch(ctx quorum.Context, db quorum.KVStore, walletID []byte, cmd *Command) ([]quorum.Event, error) {
	if cmd == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "command")
	}
	w, err := d.wallets.GetWallet(db, walletID)
	if err != nil {
		return nil, err
	}
	if !d.auth.HasAddress(ctx, w.Address) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "governance requires the wallet authority")
	}

	var ev quorum.Event
	switch cmd.Kind {
	case CommandAddOwner:
		ev, err = addOwner(w, cmd.Owner, cmd.AdjustThreshold)
	case CommandRemoveOwner:
		ev, err = removeOwner(w, cmd.OwnerIndex, cmd.AdjustThreshold)
	case CommandSetThreshold:
		ev, err = setThreshold(w, cmd.Threshold)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown command %s", cmd.Kind)
	}
	if err != nil {
		return nil, err
	}
	if err := d.wallets.Put(db, walletID, w); err != nil {
		return nil, err
	}
	quorum.GetLogger(ctx).Info("wallet governance applied",
		"wallet", w.Address, "command", cmd.Kind.String(),
		"owners", len(w.Owners), "threshold", w.Threshold)
	return []quorum.Event{ev}, nil
}

func addOwner(w *Wallet, owner quorum.Address, incThreshold bool) (quorum.Event, error) {
	if owner.IsZero() {
		return quorum.Event{}, errors.Wrap(ErrInvariantViolation, "zero owner")
	}
	if err := owner.Validate(); err != nil {
		return quorum.Event{}, errors.Wrapf(ErrInvariantViolation, "owner: %s", err)
	}
	if w.IsOwner(owner) {
		return quorum.Event{}, errors.Wrapf(ErrInvariantViolation, "%s is already an owner", owner)
	}
	w.Owners = append(w.Owners, owner)
	if incThreshold {
		w.Threshold++
	}
	if err := validateOwnerSet(w.Owners, w.Threshold); err != nil {
		return quorum.Event{}, err
	}
	return quorum.NewEvent("owner_added",
		"owner", owner.String(),
		"threshold", strconv.Itoa(int(w.Threshold)),
	), nil
}

func removeOwner(w *Wallet, index int32, decThreshold bool) (quorum.Event, error) {
	if index < 0 || int(index) >= len(w.Owners) {
		return quorum.Event{}, errors.Wrapf(ErrInvariantViolation, "owner index %d out of range", index)
	}
	removed := w.Owners[index]
	owners := make([]quorum.Address, 0, len(w.Owners)-1)
	owners = append(owners, w.Owners[:index]...)
	owners = append(owners, w.Owners[index+1:]...)
	w.Owners = owners
	if decThreshold && w.Threshold > 1 {
		w.Threshold--
	}
	if err := validateOwnerSet(w.Owners, w.Threshold); err != nil {
		return quorum.Event{}, err
	}
	return quorum.NewEvent("owner_removed",
		"owner", removed.String(),
		"threshold", strconv.Itoa(int(w.Threshold)),
	), nil
}

func setThreshold(w *Wallet, threshold int32) (quorum.Event, error) {
	if threshold < 1 || int(threshold) > len(w.Owners) {
		return quorum.Event{}, errors.Wrapf(ErrInvariantViolation,
			"threshold %d not in [1, %d]", threshold, len(w.Owners))
	}
	w.Threshold = threshold
	return quorum.NewEvent("threshold_changed",
		"threshold", strconv.Itoa(int(threshold)),
	), nil
}
