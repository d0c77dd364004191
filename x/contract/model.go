package contract

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// Contract is the deployment record of a receiver at an address.
type Contract struct {
	Kind string `protobuf:"bytes,1,opt,name=kind,proto3" json:"kind,omitempty"`
}

func (m *Contract) Reset()         { *m = Contract{} }
func (m *Contract) String() string { return proto.CompactTextString(m) }
func (*Contract) ProtoMessage()    {}

var _ orm.Model = (*Contract)(nil)

func (c *Contract) Validate() error {
	if c.Kind == "" {
		return errors.Wrap(errors.ErrEmpty, "kind")
	}
	return nil
}

// StorageState is the state of a storage contract.
type StorageState struct {
	// Value is the argument of the last call.
	Value int64 `protobuf:"varint,1,opt,name=value,proto3" json:"value,omitempty"`
	// Received is the total value sent to the contract.
	Received int64 `protobuf:"varint,2,opt,name=received,proto3" json:"received,omitempty"`
	// LastCaller is the address that made the last call.
	LastCaller quorum.Address `protobuf:"bytes,3,opt,name=last_caller,json=lastCaller,proto3,casttype=github.com/iov-one/quorum.Address" json:"last_caller,omitempty"`
	// Calls counts the calls that carried a payload.
	Calls int64 `protobuf:"varint,4,opt,name=calls,proto3" json:"calls,omitempty"`
	// RejectValue makes the contract refuse any incoming value.
	RejectValue bool `protobuf:"varint,5,opt,name=reject_value,json=rejectValue,proto3" json:"reject_value,omitempty"`
}

func (m *StorageState) Reset()         { *m = StorageState{} }
func (m *StorageState) String() string { return proto.CompactTextString(m) }
func (*StorageState) ProtoMessage()    {}

var _ orm.Model = (*StorageState)(nil)

func (s *StorageState) Validate() error {
	if s.Received < 0 {
		return errors.Wrap(errors.ErrAmount, "negative received value")
	}
	if s.Calls < 0 {
		return errors.Wrap(errors.ErrState, "negative call count")
	}
	if len(s.LastCaller) != 0 {
		if err := s.LastCaller.Validate(); err != nil {
			return errors.Wrap(err, "last caller")
		}
	}
	return nil
}

// StoreCall is the payload understood by the storage contract.
type StoreCall struct {
	Value int64 `protobuf:"varint,1,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *StoreCall) Reset()         { *m = StoreCall{} }
func (m *StoreCall) String() string { return proto.CompactTextString(m) }
func (*StoreCall) ProtoMessage()    {}

// EncodeStoreCall returns the payload of a storage contract call.
func EncodeStoreCall(value int64) []byte {
	raw, err := proto.Marshal(&StoreCall{Value: value})
	if err != nil {
		// Marshaling a plain integer message cannot fail.
		panic(err)
	}
	return raw
}
