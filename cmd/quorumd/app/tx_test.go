package app

import (
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/weavetest/assert"
	"github.com/iov-one/quorum/x/cash"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/iov-one/quorum/x/sigs"
	"github.com/stretchr/testify/require"
)

func TestTxMsg(t *testing.T) {
	var tx Tx
	_, err := tx.GetMsg()
	assert.IsErr(t, errors.ErrEmpty, err)

	send := &cash.SendMsg{Amount: 5}
	require.NoError(t, tx.SetMsg(send))
	msg, err := tx.GetMsg()
	assert.Nil(t, err)
	assert.Equal(t, send, msg)

	// setting another message replaces the previous one
	exec := &multisig.ExecuteMsg{WalletID: weavetest.SequenceID(1), Index: 3}
	require.NoError(t, tx.SetMsg(exec))
	msg, err = tx.GetMsg()
	assert.Nil(t, err)
	assert.Equal(t, exec, msg)
	assert.Nil(t, tx.SendMsg)

	// an unsupported message leaves the envelope untouched
	err = tx.SetMsg(&weavetest.Msg{RoutePath: "test/unknown"})
	assert.IsErr(t, errors.ErrType, err)
	assert.Equal(t, exec, tx.ExecuteMsg)
	msg, err = tx.GetMsg()
	assert.Nil(t, err)
	assert.Equal(t, exec, msg)

	tx.SendMsg = send
	_, err = tx.GetMsg()
	assert.IsErr(t, errors.ErrInput, err)
}

func TestTxCodec(t *testing.T) {
	key := weavetest.NewKey()
	tx := &Tx{}
	require.NoError(t, tx.SetMsg(&multisig.ConfirmMsg{
		WalletID: weavetest.SequenceID(1),
		Index:    2,
		Owner:    key.PublicKey().Address(),
	}))

	unsigned, err := tx.GetSignBytes()
	require.NoError(t, err)

	sig, err := sigs.SignTx(key, tx, "test-chain", 0)
	require.NoError(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}

	// signatures are not part of the signed bytes
	signed, err := tx.GetSignBytes()
	require.NoError(t, err)
	assert.Equal(t, unsigned, signed)

	raw, err := EncodeTx(tx)
	require.NoError(t, err)
	decoded, err := DecodeTx(raw)
	require.NoError(t, err)

	got, ok := decoded.(*Tx)
	require.True(t, ok)
	require.Len(t, got.GetSignatures(), 1)
	assert.Equal(t, int64(0), got.GetSignatures()[0].Sequence)
	msg, err := got.GetMsg()
	require.NoError(t, err)
	confirm, ok := msg.(*multisig.ConfirmMsg)
	require.True(t, ok)
	assert.Equal(t, int64(2), confirm.Index)

	_, err = DecodeTx([]byte{0xff, 0xff, 0xff})
	assert.IsErr(t, errors.ErrInput, err)

}
