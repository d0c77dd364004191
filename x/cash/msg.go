package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

const (
	pathSendMsg = "cash/send"

	maxMemoSize int = 128
)

// SendMsg moves value from the source to the destination address.
type SendMsg struct {
	Source      quorum.Address `protobuf:"bytes,1,opt,name=source,proto3,casttype=github.com/iov-one/quorum.Address" json:"source,omitempty"`
	Destination quorum.Address `protobuf:"bytes,2,opt,name=destination,proto3,casttype=github.com/iov-one/quorum.Address" json:"destination,omitempty"`
	Amount      int64          `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Memo        string         `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

func (m *SendMsg) Reset()         { *m = SendMsg{} }
func (m *SendMsg) String() string { return proto.CompactTextString(m) }
func (*SendMsg) ProtoMessage()    {}

var _ quorum.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	if s.Amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive SendMsg")
	}
	if len(s.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInput, "memo too long")
	}
	if err := s.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := s.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	return nil
}
