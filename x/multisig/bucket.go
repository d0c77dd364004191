package multisig

import (
	"encoding/binary"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

const (
	walletBucketName   = "wallet"
	proposalBucketName = "proposal"
	confirmBucketName  = "confirm"
)

// WalletCondition returns the condition a wallet acts under. Its address is
// the identity of the wallet.
func WalletCondition(id []byte) quorum.Condition {
	return quorum.NewCondition("multisig", "wallet", id)
}

// WalletBucket stores wallets under their sequence generated ID.
type WalletBucket struct {
	orm.Bucket
	ids orm.Sequence
}

// NewWalletBucket returns a bucket for managing wallets.
func NewWalletBucket() WalletBucket {
	return WalletBucket{
		Bucket: orm.NewBucket(walletBucketName, &Wallet{}),
		ids:    orm.NewSequence(walletBucketName, "id"),
	}
}

// Create stores a new wallet with the identity derived from a freshly
// acquired ID. The ID is returned.
func (b WalletBucket) Create(db quorum.KVStore, w *Wallet) ([]byte, error) {
	id, err := b.ids.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "wallet id")
	}
	w.Address = WalletCondition(id).Address()
	if err := b.Put(db, id, w); err != nil {
		return nil, err
	}
	return id, nil
}

// GetWallet loads a wallet. ErrNotFound is returned if it does not exist.
func (b WalletBucket) GetWallet(db quorum.ReadOnlyKVStore, id []byte) (*Wallet, error) {
	var w Wallet
	if err := b.One(db, id, &w); err != nil {
		return nil, errors.Wrap(err, "wallet")
	}
	return &w, nil
}

// ProposalBucket is the append only log of proposals of all wallets. Each
// wallet has its own index sequence.
type ProposalBucket struct {
	orm.Bucket
}

// NewProposalBucket returns a bucket for managing proposals.
func NewProposalBucket() ProposalBucket {
	return ProposalBucket{
		Bucket: orm.NewBucket(proposalBucketName, &Proposal{}),
	}
}

func (b ProposalBucket) sequence(walletID []byte) orm.Sequence {
	return orm.NewSequence(proposalBucketName, string(walletID))
}

// Append stores given proposal under the next index of its wallet. Indexes
// start at 0.
func (b ProposalBucket) Append(db quorum.KVStore, p *Proposal) (int64, error) {
	seq := b.sequence(p.WalletID)
	n, err := seq.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "proposal index")
	}
	p.Index = n - 1
	if err := b.Put(db, ProposalKey(p.WalletID, p.Index), p); err != nil {
		return 0, err
	}
	return p.Index, nil
}

// Count returns the number of proposals ever submitted to a wallet.
func (b ProposalBucket) Count(db quorum.ReadOnlyKVStore, walletID []byte) (int64, error) {
	seq := b.sequence(walletID)
	return seq.Latest(db)
}

// GetProposal loads a proposal. ErrNotFound is returned if it does not
// exist.
func (b ProposalBucket) GetProposal(db quorum.ReadOnlyKVStore, walletID []byte, index int64) (*Proposal, error) {
	var p Proposal
	if err := b.One(db, ProposalKey(walletID, index), &p); err != nil {
		return nil, errors.Wrapf(err, "proposal %d", index)
	}
	return &p, nil
}

// Save updates an existing proposal.
func (b ProposalBucket) Save(db quorum.KVStore, p *Proposal) error {
	return b.Put(db, ProposalKey(p.WalletID, p.Index), p)
}

// ProposalKey returns the key of a proposal: the wallet ID followed by the
// big endian index.
func ProposalKey(walletID []byte, index int64) []byte {
	key := make([]byte, len(walletID)+8)
	copy(key, walletID)
	binary.BigEndian.PutUint64(key[len(walletID):], uint64(index))
	return key
}

// ConfirmationBucket keeps one entry per owner that confirmed a proposal.
type ConfirmationBucket struct {
	orm.Bucket
}

// NewConfirmationBucket returns a bucket for managing confirmations.
func NewConfirmationBucket() ConfirmationBucket {
	return ConfirmationBucket{
		Bucket: orm.NewBucket(confirmBucketName, &Confirmation{}),
	}
}

func confirmationKey(walletID []byte, index int64, owner quorum.Address) []byte {
	return append(ProposalKey(walletID, index), owner...)
}

// IsConfirmed returns true if given owner confirmed the proposal.
func (b ConfirmationBucket) IsConfirmed(db quorum.ReadOnlyKVStore, walletID []byte, index int64, owner quorum.Address) (bool, error) {
	return b.Has(db, confirmationKey(walletID, index, owner))
}

// Confirm records the confirmation of an owner.
func (b ConfirmationBucket) Confirm(db quorum.KVStore, walletID []byte, index int64, owner quorum.Address) error {
	return b.Put(db, confirmationKey(walletID, index, owner), &Confirmation{Owner: owner})
}

// Revoke removes the confirmation of an owner.
func (b ConfirmationBucket) Revoke(db quorum.KVStore, walletID []byte, index int64, owner quorum.Address) error {
	return b.Delete(db, confirmationKey(walletID, index, owner))
}

// Confirmers returns all addresses that confirmed a proposal, ordered by
// address.
func (b ConfirmationBucket) Confirmers(db quorum.ReadOnlyKVStore, walletID []byte, index int64) ([]quorum.Address, error) {
	prefix := ProposalKey(walletID, index)
	keys, err := b.Keys(db, prefix)
	if err != nil {
		return nil, err
	}
	out := make([]quorum.Address, len(keys))
	for i, k := range keys {
		out[i] = quorum.Address(k[len(prefix):])
	}
	return out, nil
}
