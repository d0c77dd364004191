package quorum

import (
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/stretchr/testify/assert"
)

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		Tx      Tx
		Dest    interface{}
		WantMsg Msg
		WantErr *errors.Error
	}{
		"success": {
			Tx:      &TxMock{Msg: &MsgMock{ID: 4219}},
			Dest:    &MsgMock{},
			WantMsg: &MsgMock{ID: 4219},
		},
		"transaction contains a nil message": {
			Tx:      &TxMock{Msg: nil},
			Dest:    &MsgMock{},
			WantErr: errors.ErrState,
		},
		"transaction fails to provide a message": {
			Tx:      &TxMock{Err: errors.ErrEmpty},
			Dest:    &MsgMock{},
			WantErr: errors.ErrEmpty,
		},
		"invalid destination message, not a pointer": {
			Tx:      &TxMock{Msg: &MsgMock{ID: 81421}},
			Dest:    MsgMock{},
			WantErr: errors.ErrHuman,
		},
		"invalid destination message, wrong message type": {
			Tx:      &TxMock{Msg: &MsgMock{ID: 94151}},
			Dest:    &OtherMsgMock{},
			WantErr: errors.ErrType,
		},
		"invalid destination message, nil interface": {
			Tx:      &TxMock{Msg: &MsgMock{ID: 45192}},
			Dest:    Msg(nil),
			WantErr: errors.ErrHuman,
		},
		"invalid destination message, unaddressable": {
			Tx:      &TxMock{Msg: &MsgMock{ID: 91841231}},
			Dest:    (*MsgMock)(nil),
			WantErr: errors.ErrHuman,
		},
		"invalid message in transaction, failed validation": {
			Tx:      &TxMock{Msg: &MsgMock{ID: 5, Err: errors.ErrExpired}},
			Dest:    &MsgMock{},
			WantErr: errors.ErrExpired,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := LoadMsg(tc.Tx, tc.Dest); !tc.WantErr.Is(err) {
				t.Fatalf("want %q error, got %q", tc.WantErr, err)
			}
			if tc.WantErr == nil {
				assert.Equal(t, tc.WantMsg, tc.Dest)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "mock/path", GetPath(&TxMock{Msg: &MsgMock{}}))
	assert.Equal(t, "(missing)", GetPath(&TxMock{}))
	assert.Equal(t, "(missing)", GetPath(&TxMock{Msg: &MsgMock{}, Err: errors.ErrEmpty}))
}

type TxMock struct {
	Msg Msg
	Err error
}

func (tx *TxMock) GetMsg() (Msg, error) {
	return tx.Msg, tx.Err
}

type MsgMock struct {
	// ID is used only to compare instances if the content is the same.
	ID  int64
	Err error
}

func (*MsgMock) Path() string         { return "mock/path" }
func (mock *MsgMock) Validate() error { return mock.Err }
func (m *MsgMock) Reset()             { *m = MsgMock{} }
func (m *MsgMock) String() string     { return "MsgMock" }
func (*MsgMock) ProtoMessage()        {}

type OtherMsgMock struct {
	MsgMock
}
