package orm

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/weavetest/assert"
)

type counter struct {
	Count int64  `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
	Label string `protobuf:"bytes,2,opt,name=label,proto3" json:"label,omitempty"`
}

func (m *counter) Reset()         { *m = counter{} }
func (m *counter) String() string { return proto.CompactTextString(m) }
func (*counter) ProtoMessage()    {}

func (m *counter) Validate() error {
	if m.Count < 0 {
		return errors.Wrap(errors.ErrInput, "negative count")
	}
	return nil
}

type other struct {
	Name string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
}

func (m *other) Reset()         { *m = other{} }
func (m *other) String() string { return proto.CompactTextString(m) }
func (*other) ProtoMessage()    {}
func (*other) Validate() error  { return nil }

func TestBucketPutOne(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts", &counter{})

	assert.Nil(t, b.Put(db, []byte("a"), &counter{Count: 7, Label: "seven"}))

	var got counter
	assert.Nil(t, b.One(db, []byte("a"), &got))
	assert.Equal(t, counter{Count: 7, Label: "seven"}, got)

	raw, err := db.Get([]byte("cnts:a"))
	assert.Nil(t, err)
	if len(raw) == 0 {
		t.Fatal("model must be stored under prefixed key")
	}

	err = b.One(db, []byte("missing"), &got)
	assert.IsErr(t, errors.ErrNotFound, err)

	err = b.One(db, []byte("a"), &other{})
	assert.IsErr(t, errors.ErrType, err)
}

func TestBucketZeroValueModel(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts", &counter{})

	assert.Nil(t, b.Put(db, []byte("zero"), &counter{}))
	ok, err := b.Has(db, []byte("zero"))
	assert.Nil(t, err)
	if !ok {
		t.Fatal("zero value model must be present")
	}
	got := counter{Count: 3}
	assert.Nil(t, b.One(db, []byte("zero"), &got))
	assert.Equal(t, counter{}, got)
}

func TestBucketPutValidation(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts", &counter{})

	assert.IsErr(t, errors.ErrInput, b.Put(db, []byte("a"), &counter{Count: -1}))
	assert.IsErr(t, errors.ErrEmpty, b.Put(db, nil, &counter{Count: 1}))
	assert.IsErr(t, errors.ErrType, b.Put(db, []byte("a"), &other{Name: "x"}))

	ok, err := b.Has(db, []byte("a"))
	assert.Nil(t, err)
	if ok {
		t.Fatal("invalid model must not be stored")
	}
}

func TestBucketDelete(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts", &counter{})

	assert.Nil(t, b.Put(db, []byte("a"), &counter{Count: 1}))
	assert.Nil(t, b.Delete(db, []byte("a")))
	assert.IsErr(t, errors.ErrNotFound, b.Delete(db, []byte("a")))
	assert.IsErr(t, errors.ErrNotFound, b.One(db, []byte("a"), &counter{}))
}

func TestBucketKeysAndQuery(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts", &counter{})
	// A different bucket sharing the name prefix must not leak in.
	o := NewBucket("cntsx", &other{})

	for _, k := range []string{"ab", "aa", "b", "ac"} {
		assert.Nil(t, b.Put(db, []byte(k), &counter{Count: 1}))
	}
	assert.Nil(t, o.Put(db, []byte("aa"), &other{Name: "x"}))

	keys, err := b.Keys(db, []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("aa"), []byte("ab"), []byte("ac")}, keys)

	all, err := b.Keys(db, nil)
	assert.Nil(t, err)
	assert.Equal(t, 4, len(all))

	qr := quorum.NewQueryRouter()
	b.Register("", qr)
	h := qr.Handler("/cnts")
	if h == nil {
		t.Fatal("bucket not registered")
	}
	res, err := h.Query(db, quorum.KeyQueryMod, []byte("b"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, []byte("cnts:b"), res[0].Key)

	res, err = h.Query(db, quorum.KeyQueryMod, []byte("zz"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))

	res, err = h.Query(db, quorum.PrefixQueryMod, []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, 3, len(res))

	_, err = h.Query(db, "range", nil)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestBucketIllegalName(t *testing.T) {
	assert.Panics(t, func() { NewBucket("X", &counter{}) })
	assert.Panics(t, func() { NewBucket("ab", &counter{}) })
}

func TestPrefixEnd(t *testing.T) {
	cases := map[string]struct {
		prefix []byte
		want   []byte
	}{
		"simple":         {prefix: []byte{1, 2}, want: []byte{1, 3}},
		"carry":          {prefix: []byte{1, 0xff}, want: []byte{2}},
		"all max":        {prefix: []byte{0xff, 0xff}, want: nil},
		"empty":          {prefix: nil, want: nil},
		"does not alias": {prefix: []byte("a:"), want: []byte("a;")},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, prefixEnd(tc.prefix))
		})
	}
}
