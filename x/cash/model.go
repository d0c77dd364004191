package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Balance is the amount of native value held by a single address.
type Balance struct {
	Amount int64 `protobuf:"varint,1,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Balance) Reset()         { *m = Balance{} }
func (m *Balance) String() string { return proto.CompactTextString(m) }
func (*Balance) ProtoMessage()    {}

var _ orm.Model = (*Balance)(nil)

// Validate ensures the balance never goes below zero.
func (b *Balance) Validate() error {
	if b.Amount < 0 {
		return errors.Wrap(errors.ErrAmount, "negative balance")
	}
	return nil
}

// Add increases the balance by given amount, failing on overflow.
func (b *Balance) Add(amount int64) error {
	sum := b.Amount + amount
	if (amount > 0 && sum < b.Amount) || (amount < 0 && sum > b.Amount) {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	b.Amount = sum
	return nil
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a cash.Bucket
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, &Balance{}),
	}
}

// GetOrCreate loads the balance of given address. An address that was
// never used has a zero balance.
func (b Bucket) GetOrCreate(db quorum.ReadOnlyKVStore, addr quorum.Address) (*Balance, error) {
	var bal Balance
	switch err := b.One(db, addr, &bal); {
	case err == nil:
		return &bal, nil
	case errors.ErrNotFound.Is(err):
		return &Balance{}, nil
	default:
		return nil, err
	}
}
