package multisig

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

const (
	pathCreateWalletMsg       = "multisig/create_wallet"
	pathSubmitTransactionMsg  = "multisig/submit"
	pathSubmitAddOwnerMsg     = "multisig/submit_add_owner"
	pathSubmitRemoveOwnerMsg  = "multisig/submit_remove_owner"
	pathSubmitSetThresholdMsg = "multisig/submit_threshold"
	pathConfirmMsg            = "multisig/confirm"
	pathRevokeMsg             = "multisig/revoke"
	pathExecuteMsg            = "multisig/execute"

	walletIDLength = 8
)

var (
	_ quorum.Msg = (*CreateWalletMsg)(nil)
	_ quorum.Msg = (*SubmitTransactionMsg)(nil)
	_ quorum.Msg = (*SubmitAddOwnerMsg)(nil)
	_ quorum.Msg = (*SubmitRemoveOwnerMsg)(nil)
	_ quorum.Msg = (*SubmitSetThresholdMsg)(nil)
	_ quorum.Msg = (*ConfirmMsg)(nil)
	_ quorum.Msg = (*RevokeMsg)(nil)
	_ quorum.Msg = (*ExecuteMsg)(nil)
)

func validateWalletID(id []byte) error {
	if len(id) != walletIDLength {
		return errors.Wrapf(errors.ErrInput, "wallet id must be %d bytes", walletIDLength)
	}
	return nil
}

// validateActor checks an optional address. When not set, the main signer
// of the transaction is used.
func validateActor(a quorum.Address) error {
	if len(a) == 0 {
		return nil
	}
	return a.Validate()
}

func validateExpiration(t quorum.UnixTime) error {
	if t <= 0 {
		return errors.Wrap(errors.ErrEmpty, "expiration")
	}
	return t.Validate()
}

// CreateWalletMsg creates a new wallet. Anyone can create a wallet.
type CreateWalletMsg struct {
	Owners    []quorum.Address `protobuf:"bytes,1,rep,name=owners,proto3,casttype=github.com/iov-one/quorum.Address" json:"owners,omitempty"`
	Threshold int32            `protobuf:"varint,2,opt,name=threshold,proto3" json:"threshold,omitempty"`
}

func (m *CreateWalletMsg) Reset()         { *m = CreateWalletMsg{} }
func (m *CreateWalletMsg) String() string { return proto.CompactTextString(m) }
func (*CreateWalletMsg) ProtoMessage()    {}

func (CreateWalletMsg) Path() string { return pathCreateWalletMsg }

func (m *CreateWalletMsg) Validate() error {
	return validateOwnerSet(m.Owners, m.Threshold)
}

// SubmitTransactionMsg proposes a value transfer and an optional call.
//
// Target must not be the address of the wallet itself. Changes of the
// owner set are proposed with SubmitAddOwnerMsg, SubmitRemoveOwnerMsg and
// SubmitSetThresholdMsg, and a SubmitTransactionMsg aimed at the wallet
// fails with ErrInput.
type SubmitTransactionMsg struct {
	WalletID []byte `protobuf:"bytes,1,opt,name=wallet_id,json=walletId,proto3" json:"wallet_id,omitempty"`
	// Proposer is the owner submitting. Defaults to the main signer.
	Proposer  quorum.Address  `protobuf:"bytes,2,opt,name=proposer,proto3,casttype=github.com/iov-one/quorum.Address" json:"proposer,omitempty"`
	Target    quorum.Address  `protobuf:"bytes,3,opt,name=target,proto3,casttype=github.com/iov-one/quorum.Address" json:"target,omitempty"`
	Value     int64           `protobuf:"varint,4,opt,name=value,proto3" json:"value,omitempty"`
	Payload   []byte          `protobuf:"bytes,5,opt,name=payload,proto3" json:"payload,omitempty"`
	ExpiresAt quorum.UnixTime `protobuf:"varint,6,opt,name=expires_at,json=expiresAt,proto3,casttype=github.com/iov-one/quorum.UnixTime" json:"expires_at,omitempty"`
}

func (m *SubmitTransactionMsg) Reset()         { *m = SubmitTransactionMsg{} }
func (m *SubmitTransactionMsg) String() string { return proto.CompactTextString(m) }
func (*SubmitTransactionMsg) ProtoMessage()    {}

func (SubmitTransactionMsg) Path() string { return pathSubmitTransactionMsg }

func (m *SubmitTransactionMsg) Validate() error {
	if err := validateWalletID(m.WalletID); err != nil {
		return err
	}
	if err := validateActor(m.Proposer); err != nil {
		return errors.Wrap(err, "proposer")
	}
	if err := m.Target.Validate(); err != nil {
		return errors.Wrap(err, "target")
	}
	if m.Value < 0 {
		return errors.Wrap(errors.ErrAmount, "negative value")
	}
	return validateExpiration(m.ExpiresAt)
}

// SubmitAddOwnerMsg proposes to extend the owner set.
type SubmitAddOwnerMsg struct {
	WalletID          []byte          `protobuf:"bytes,1,opt,name=wallet_id,json=walletId,proto3" json:"wallet_id,omitempty"`
	Proposer          quorum.Address  `protobuf:"bytes,2,opt,name=proposer,proto3,casttype=github.com/iov-one/quorum.Address" json:"proposer,omitempty"`
	Owner             quorum.Address  `protobuf:"bytes,3,opt,name=owner,proto3,casttype=github.com/iov-one/quorum.Address" json:"owner,omitempty"`
	IncreaseThreshold bool            `protobuf:"varint,4,opt,name=increase_threshold,json=increaseThreshold,proto3" json:"increase_threshold,omitempty"`
	ExpiresAt         quorum.UnixTime `protobuf:"varint,5,opt,name=expires_at,json=expiresAt,proto3,casttype=github.com/iov-one/quorum.UnixTime" json:"expires_at,omitempty"`
}

func (m *SubmitAddOwnerMsg) Reset()         { *m = SubmitAddOwnerMsg{} }
func (m *SubmitAddOwnerMsg) String() string { return proto.CompactTextString(m) }
func (*SubmitAddOwnerMsg) ProtoMessage()    {}

func (SubmitAddOwnerMsg) Path() string { return pathSubmitAddOwnerMsg }

func (m *SubmitAddOwnerMsg) Validate() error {
	if err := validateWalletID(m.WalletID); err != nil {
		return err
	}
	if err := validateActor(m.Proposer); err != nil {
		return errors.Wrap(err, "proposer")
	}
	if err := m.Command().Validate(); err != nil {
		return err
	}
	return validateExpiration(m.ExpiresAt)
}

// Command returns the governance command this message proposes.
func (m *SubmitAddOwnerMsg) Command() *Command {
	return &Command{
		Kind:            CommandAddOwner,
		Owner:           m.Owner,
		AdjustThreshold: m.IncreaseThreshold,
	}
}

// SubmitRemoveOwnerMsg proposes to remove the owner at given position.
type SubmitRemoveOwnerMsg struct {
	WalletID          []byte          `protobuf:"bytes,1,opt,name=wallet_id,json=walletId,proto3" json:"wallet_id,omitempty"`
	Proposer          quorum.Address  `protobuf:"bytes,2,opt,name=proposer,proto3,casttype=github.com/iov-one/quorum.Address" json:"proposer,omitempty"`
	OwnerIndex        int32           `protobuf:"varint,3,opt,name=owner_index,json=ownerIndex,proto3" json:"owner_index"`
	DecreaseThreshold bool            `protobuf:"varint,4,opt,name=decrease_threshold,json=decreaseThreshold,proto3" json:"decrease_threshold,omitempty"`
	ExpiresAt         quorum.UnixTime `protobuf:"varint,5,opt,name=expires_at,json=expiresAt,proto3,casttype=github.com/iov-one/quorum.UnixTime" json:"expires_at,omitempty"`
}

func (m *SubmitRemoveOwnerMsg) Reset()         { *m = SubmitRemoveOwnerMsg{} }
func (m *SubmitRemoveOwnerMsg) String() string { return proto.CompactTextString(m) }
func (*SubmitRemoveOwnerMsg) ProtoMessage()    {}

func (SubmitRemoveOwnerMsg) Path() string { return pathSubmitRemoveOwnerMsg }

func (m *SubmitRemoveOwnerMsg) Validate() error {
	if err := validateWalletID(m.WalletID); err != nil {
		return err
	}
	if err := validateActor(m.Proposer); err != nil {
		return errors.Wrap(err, "proposer")
	}
	if err := m.Command().Validate(); err != nil {
		return err
	}
	return validateExpiration(m.ExpiresAt)
}

// Command returns the governance command this message proposes.
func (m *SubmitRemoveOwnerMsg) Command() *Command {
	return &Command{
		Kind:            CommandRemoveOwner,
		OwnerIndex:      m.OwnerIndex,
		AdjustThreshold: m.DecreaseThreshold,
	}
}

// SubmitSetThresholdMsg proposes a new threshold.
type SubmitSetThresholdMsg struct {
	WalletID  []byte          `protobuf:"bytes,1,opt,name=wallet_id,json=walletId,proto3" json:"wallet_id,omitempty"`
	Proposer  quorum.Address  `protobuf:"bytes,2,opt,name=proposer,proto3,casttype=github.com/iov-one/quorum.Address" json:"proposer,omitempty"`
	Threshold int32           `protobuf:"varint,3,opt,name=threshold,proto3" json:"threshold,omitempty"`
	ExpiresAt quorum.UnixTime `protobuf:"varint,4,opt,name=expires_at,json=expiresAt,proto3,casttype=github.com/iov-one/quorum.UnixTime" json:"expires_at,omitempty"`
}

func (m *SubmitSetThresholdMsg) Reset()         { *m = SubmitSetThresholdMsg{} }
func (m *SubmitSetThresholdMsg) String() string { return proto.CompactTextString(m) }
func (*SubmitSetThresholdMsg) ProtoMessage()    {}

func (SubmitSetThresholdMsg) Path() string { return pathSubmitSetThresholdMsg }

func (m *SubmitSetThresholdMsg) Validate() error {
	if err := validateWalletID(m.WalletID); err != nil {
		return err
	}
	if err := validateActor(m.Proposer); err != nil {
		return errors.Wrap(err, "proposer")
	}
	if err := m.Command().Validate(); err != nil {
		return err
	}
	return validateExpiration(m.ExpiresAt)
}

// Command returns the governance command this message proposes.
func (m *SubmitSetThresholdMsg) Command() *Command {
	return &Command{
		Kind:      CommandSetThreshold,
		Threshold: m.Threshold,
	}
}

// ConfirmMsg approves a proposal.
type ConfirmMsg struct {
	WalletID []byte `protobuf:"bytes,1,opt,name=wallet_id,json=walletId,proto3" json:"wallet_id,omitempty"`
	Index    int64  `protobuf:"varint,2,opt,name=index,proto3" json:"index"`
	// Owner confirming. Defaults to the main signer.
	Owner quorum.Address `protobuf:"bytes,3,opt,name=owner,proto3,casttype=github.com/iov-one/quorum.Address" json:"owner,omitempty"`
}

func (m *ConfirmMsg) Reset()         { *m = ConfirmMsg{} }
func (m *ConfirmMsg) String() string { return proto.CompactTextString(m) }
func (*ConfirmMsg) ProtoMessage()    {}

func (ConfirmMsg) Path() string { return pathConfirmMsg }

func (m *ConfirmMsg) Validate() error {
	return validateIndexed(m.WalletID, m.Index, m.Owner)
}

// RevokeMsg withdraws a confirmation.
type RevokeMsg struct {
	WalletID []byte         `protobuf:"bytes,1,opt,name=wallet_id,json=walletId,proto3" json:"wallet_id,omitempty"`
	Index    int64          `protobuf:"varint,2,opt,name=index,proto3" json:"index"`
	Owner    quorum.Address `protobuf:"bytes,3,opt,name=owner,proto3,casttype=github.com/iov-one/quorum.Address" json:"owner,omitempty"`
}

func (m *RevokeMsg) Reset()         { *m = RevokeMsg{} }
func (m *RevokeMsg) String() string { return proto.CompactTextString(m) }
func (*RevokeMsg) ProtoMessage()    {}

func (RevokeMsg) Path() string { return pathRevokeMsg }

func (m *RevokeMsg) Validate() error {
	return validateIndexed(m.WalletID, m.Index, m.Owner)
}

// ExecuteMsg runs a proposal. It does not require any signature.
type ExecuteMsg struct {
	WalletID []byte `protobuf:"bytes,1,opt,name=wallet_id,json=walletId,proto3" json:"wallet_id,omitempty"`
	Index    int64  `protobuf:"varint,2,opt,name=index,proto3" json:"index"`
}

func (m *ExecuteMsg) Reset()         { *m = ExecuteMsg{} }
func (m *ExecuteMsg) String() string { return proto.CompactTextString(m) }
func (*ExecuteMsg) ProtoMessage()    {}

func (ExecuteMsg) Path() string { return pathExecuteMsg }

func (m *ExecuteMsg) Validate() error {
	return validateIndexed(m.WalletID, m.Index, nil)
}

func validateIndexed(walletID []byte, index int64, actor quorum.Address) error {
	if err := validateWalletID(walletID); err != nil {
		return err
	}
	if index < 0 {
		return errors.Wrap(errors.ErrInput, "negative index")
	}
	if err := validateActor(actor); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}
