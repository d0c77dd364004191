package multisig

import (
	"fmt"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// Wallet is the owner set of a multisig wallet together with the number of
// confirmations required to execute a proposal.
type Wallet struct {
	Owners    []quorum.Address `protobuf:"bytes,1,rep,name=owners,proto3,casttype=github.com/iov-one/quorum.Address" json:"owners,omitempty"`
	Threshold int32            `protobuf:"varint,2,opt,name=threshold,proto3" json:"threshold,omitempty"`
	// Address is the identity of the wallet. It holds the wallet funds.
	Address quorum.Address `protobuf:"bytes,3,opt,name=address,proto3,casttype=github.com/iov-one/quorum.Address" json:"address,omitempty"`
}

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

var _ orm.Model = (*Wallet)(nil)

// Validate returns ErrInvariantViolation if the owner set is not a non empty
// set of distinct, valid identities or the threshold is out of the
// [1, len(owners)] range.
func (w *Wallet) Validate() error {
	if err := validateOwnerSet(w.Owners, w.Threshold); err != nil {
		return err
	}
	if err := w.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	return nil
}

func validateOwnerSet(owners []quorum.Address, threshold int32) error {
	if threshold < 1 {
		return errors.Wrapf(ErrInvariantViolation, "threshold %d below 1", threshold)
	}
	if int(threshold) > len(owners) {
		return errors.Wrapf(ErrInvariantViolation, "threshold %d above %d owners", threshold, len(owners))
	}
	for i, o := range owners {
		if err := o.Validate(); err != nil {
			return errors.Wrapf(ErrInvariantViolation, "owner %d: %s", i, err)
		}
		for _, other := range owners[:i] {
			if o.Equals(other) {
				return errors.Wrapf(ErrInvariantViolation, "duplicated owner %s", o)
			}
		}
	}
	return nil
}

// OwnerIndex returns the position of given address in the owner set or -1.
func (w *Wallet) OwnerIndex(addr quorum.Address) int {
	for i, o := range w.Owners {
		if o.Equals(addr) {
			return i
		}
	}
	return -1
}

// IsOwner returns true if given address is a current owner.
func (w *Wallet) IsOwner(addr quorum.Address) bool {
	return w.OwnerIndex(addr) >= 0
}

// CommandKind declares which governance operation a Command represents.
type CommandKind int32

const (
	CommandNone CommandKind = iota
	CommandAddOwner
	CommandRemoveOwner
	CommandSetThreshold
)

func (k CommandKind) String() string {
	switch k {
	case CommandNone:
		return "none"
	case CommandAddOwner:
		return "add_owner"
	case CommandRemoveOwner:
		return "remove_owner"
	case CommandSetThreshold:
		return "set_threshold"
	default:
		return fmt.Sprintf("unknown(%d)", int32(k))
	}
}

// Command is a governance operation applied to the wallet itself. Only
// fields relevant to the kind are set.
type Command struct {
	Kind CommandKind `protobuf:"varint,1,opt,name=kind,proto3,casttype=CommandKind" json:"kind,omitempty"`
	// Owner is the identity added by CommandAddOwner.
	Owner quorum.Address `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/quorum.Address" json:"owner,omitempty"`
	// OwnerIndex is the position removed by CommandRemoveOwner.
	OwnerIndex int32 `protobuf:"varint,3,opt,name=owner_index,json=ownerIndex,proto3" json:"owner_index,omitempty"`
	// AdjustThreshold increments the threshold when adding an owner and
	// decrements it when removing one.
	AdjustThreshold bool `protobuf:"varint,4,opt,name=adjust_threshold,json=adjustThreshold,proto3" json:"adjust_threshold,omitempty"`
	// Threshold is the value set by CommandSetThreshold.
	Threshold int32 `protobuf:"varint,5,opt,name=threshold,proto3" json:"threshold,omitempty"`
}

func (m *Command) Reset()         { *m = Command{} }
func (m *Command) String() string { return proto.CompactTextString(m) }
func (*Command) ProtoMessage()    {}

// Validate checks the shape of the command. Whether it can be applied to an
// owner set is only known at execution time.
func (c *Command) Validate() error {
	switch c.Kind {
	case CommandAddOwner:
		if err := c.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	case CommandRemoveOwner:
		if c.OwnerIndex < 0 {
			return errors.Wrap(errors.ErrInput, "negative owner index")
		}
	case CommandSetThreshold:
		if c.Threshold < 1 {
			return errors.Wrap(errors.ErrInput, "threshold must be at least 1")
		}
	default:
		return errors.Wrapf(errors.ErrInput, "unknown command %s", c.Kind)
	}
	return nil
}

// Proposal is a single entry in the proposal log of a wallet.
type Proposal struct {
	WalletID []byte `protobuf:"bytes,1,opt,name=wallet_id,json=walletId,proto3" json:"wallet_id,omitempty"`
	Index    int64  `protobuf:"varint,2,opt,name=index,proto3" json:"index"`
	// Target is the identity called. For inner proposals it is the wallet.
	Target quorum.Address `protobuf:"bytes,3,opt,name=target,proto3,casttype=github.com/iov-one/quorum.Address" json:"target,omitempty"`
	Value  int64          `protobuf:"varint,4,opt,name=value,proto3" json:"value"`
	// Payload is the call data delivered to the target.
	Payload   []byte          `protobuf:"bytes,5,opt,name=payload,proto3" json:"payload,omitempty"`
	ExpiresAt quorum.UnixTime `protobuf:"varint,6,opt,name=expires_at,json=expiresAt,proto3,casttype=github.com/iov-one/quorum.UnixTime" json:"expires_at"`
	Executed  bool            `protobuf:"varint,7,opt,name=executed,proto3" json:"executed"`
	// Confirmations is the number of owners that confirmed this proposal.
	Confirmations int32 `protobuf:"varint,8,opt,name=confirmations,proto3" json:"confirmations"`
	// Inner is set when the proposal is a governance command against the
	// wallet itself.
	Inner     bool            `protobuf:"varint,9,opt,name=inner,proto3" json:"inner"`
	Command   *Command        `protobuf:"bytes,10,opt,name=command,proto3" json:"command,omitempty"`
	Proposer  quorum.Address  `protobuf:"bytes,11,opt,name=proposer,proto3,casttype=github.com/iov-one/quorum.Address" json:"proposer,omitempty"`
	CreatedAt quorum.UnixTime `protobuf:"varint,12,opt,name=created_at,json=createdAt,proto3,casttype=github.com/iov-one/quorum.UnixTime" json:"created_at,omitempty"`
}

func (m *Proposal) Reset()         { *m = Proposal{} }
func (m *Proposal) String() string { return proto.CompactTextString(m) }
func (*Proposal) ProtoMessage()    {}

var _ orm.Model = (*Proposal)(nil)

func (p *Proposal) Validate() error {
	if len(p.WalletID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "wallet id")
	}
	if p.Index < 0 {
		return errors.Wrap(errors.ErrInput, "negative index")
	}
	if err := p.Target.Validate(); err != nil {
		return errors.Wrap(err, "target")
	}
	if p.Value < 0 {
		return errors.Wrap(errors.ErrAmount, "negative value")
	}
	if p.ExpiresAt <= 0 {
		return errors.Wrap(errors.ErrEmpty, "expiration")
	}
	if p.Confirmations < 0 {
		return errors.Wrap(errors.ErrState, "negative confirmations")
	}
	if p.Inner {
		if p.Command == nil {
			return errors.Wrap(errors.ErrEmpty, "command")
		}
		if err := p.Command.Validate(); err != nil {
			return errors.Wrap(err, "command")
		}
		if p.Value != 0 || len(p.Payload) != 0 {
			return errors.Wrap(errors.ErrState, "inner proposal cannot carry value or payload")
		}
	} else if p.Command != nil {
		return errors.Wrap(errors.ErrState, "command requires an inner proposal")
	}
	return nil
}

// Confirmation records that an owner approved a proposal.
type Confirmation struct {
	Owner quorum.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/iov-one/quorum.Address" json:"owner,omitempty"`
}

func (m *Confirmation) Reset()         { *m = Confirmation{} }
func (m *Confirmation) String() string { return proto.CompactTextString(m) }
func (*Confirmation) ProtoMessage()    {}

var _ orm.Model = (*Confirmation)(nil)

func (c *Confirmation) Validate() error {
	return errors.Wrap(c.Owner.Validate(), "owner")
}
