package orm

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/weavetest/assert"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()

	cases := []struct {
		bucket     string
		name       string
		init       int64
		increments int64
	}{
		0: {"a", "b", 0, 22},
		1: {"a", "bc", 0, 11},
		2: {"a", "b", 23, 18},
		3: {"c", "d", 0, 77},
		4: {"a", "bc", 12, 248},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			s := NewSequence(tc.bucket, tc.name)
			init, err := s.Latest(db)
			assert.Nil(t, err)
			assert.Equal(t, tc.init, init)
			orig := EncodeSequence(init)

			var val int64
			for i := int64(0); i < tc.increments; i++ {
				val, err = s.NextInt(db)
				assert.Nil(t, err)
			}
			assert.Equal(t, tc.init+tc.increments, val)

			// Raw bytes must preserve the ordering of values.
			last, err := s.NextVal(db)
			assert.Nil(t, err)
			assert.Equal(t, 1, bytes.Compare(last, orig))
		})
	}
}

func TestDecodeSequence(t *testing.T) {
	v, err := DecodeSequence(nil)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), v)

	v, err = DecodeSequence(EncodeSequence(1234567))
	assert.Nil(t, err)
	assert.Equal(t, int64(1234567), v)

	_, err = DecodeSequence([]byte{1, 2})
	assert.IsErr(t, errors.ErrInput, err)
}
