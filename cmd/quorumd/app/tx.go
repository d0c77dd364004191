package app

import (
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/cash"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/iov-one/quorum/x/sigs"
)

// Tx is the transaction envelope. Exactly one message field must be set.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`

	SendMsg               *cash.SendMsg                   `protobuf:"bytes,10,opt,name=send_msg,json=sendMsg,proto3" json:"send_msg,omitempty"`
	CreateWalletMsg       *multisig.CreateWalletMsg       `protobuf:"bytes,20,opt,name=create_wallet_msg,json=createWalletMsg,proto3" json:"create_wallet_msg,omitempty"`
	SubmitTransactionMsg  *multisig.SubmitTransactionMsg  `protobuf:"bytes,21,opt,name=submit_transaction_msg,json=submitTransactionMsg,proto3" json:"submit_transaction_msg,omitempty"`
	SubmitAddOwnerMsg     *multisig.SubmitAddOwnerMsg     `protobuf:"bytes,22,opt,name=submit_add_owner_msg,json=submitAddOwnerMsg,proto3" json:"submit_add_owner_msg,omitempty"`
	SubmitRemoveOwnerMsg  *multisig.SubmitRemoveOwnerMsg  `protobuf:"bytes,23,opt,name=submit_remove_owner_msg,json=submitRemoveOwnerMsg,proto3" json:"submit_remove_owner_msg,omitempty"`
	SubmitSetThresholdMsg *multisig.SubmitSetThresholdMsg `protobuf:"bytes,24,opt,name=submit_set_threshold_msg,json=submitSetThresholdMsg,proto3" json:"submit_set_threshold_msg,omitempty"`
	ConfirmMsg            *multisig.ConfirmMsg            `protobuf:"bytes,25,opt,name=confirm_msg,json=confirmMsg,proto3" json:"confirm_msg,omitempty"`
	RevokeMsg             *multisig.RevokeMsg             `protobuf:"bytes,26,opt,name=revoke_msg,json=revokeMsg,proto3" json:"revoke_msg,omitempty"`
	ExecuteMsg            *multisig.ExecuteMsg            `protobuf:"bytes,27,opt,name=execute_msg,json=executeMsg,proto3" json:"execute_msg,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

var (
	_ quorum.Tx     = (*Tx)(nil)
	_ sigs.SignedTx = (*Tx)(nil)
)

// msgs returns all message fields of the envelope that are set.
func (tx *Tx) msgs() []quorum.Msg {
	var out []quorum.Msg
	v := reflect.ValueOf(tx).Elem()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() != reflect.Ptr || f.IsNil() {
			continue
		}
		if msg, ok := f.Interface().(quorum.Msg); ok {
			out = append(out, msg)
		}
	}
	return out
}

// GetMsg returns the single message carried by this transaction.
func (tx *Tx) GetMsg() (quorum.Msg, error) {
	switch msgs := tx.msgs(); len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrEmpty, "transaction without a message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "transaction with %d messages", len(msgs))
	}
}

// SetMsg places given message in its envelope field. Any previously set
// message is removed.
func (tx *Tx) SetMsg(msg quorum.Msg) error {
	v := reflect.ValueOf(tx).Elem()
	target := reflect.TypeOf(msg)
	slot := -1
	for i := 0; i < v.NumField(); i++ {
		if v.Field(i).Type() == target && target.Implements(msgType) {
			slot = i
			break
		}
	}
	if slot < 0 {
		return errors.Wrapf(errors.ErrType, "%T cannot be carried by a transaction", msg)
	}
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() != reflect.Ptr || !f.Type().Implements(msgType) {
			continue
		}
		if i == slot {
			f.Set(reflect.ValueOf(msg))
		} else {
			f.Set(reflect.Zero(f.Type()))
		}
	}
	return nil
}

var msgType = reflect.TypeOf((*quorum.Msg)(nil)).Elem()

// GetSignatures returns the signatures of this transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the serialized transaction without signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	cpy := *tx
	cpy.Signatures = nil
	raw, err := proto.Marshal(&cpy)
	if err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return raw, nil
}

// DecodeTx is the app.TxDecoder for Tx.
func DecodeTx(raw []byte) (quorum.Tx, error) {
	var tx Tx
	if err := proto.Unmarshal(raw, &tx); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &tx, nil
}

// EncodeTx serializes a transaction.
func EncodeTx(tx *Tx) ([]byte, error) {
	raw, err := proto.Marshal(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return raw, nil
}
