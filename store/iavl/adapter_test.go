package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/weavetest/assert"
)

func assertGetHas(t testing.TB, kv store.ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

func TestCommitStoreCacheWrap(t *testing.T) {
	commit := NewMemCommitStore()
	base := commit.Adapter()

	k, v := []byte("french"), []byte("fry")
	assertGetHas(t, base, k, nil, false)

	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set(k, v))
	assertGetHas(t, cache, k, v, true)
	// not visible before write
	assertGetHas(t, base, k, nil, false)

	discarded := commit.CacheWrap()
	assert.Nil(t, discarded.Set([]byte("gone"), []byte("soon")))
	discarded.Discard()

	assert.Nil(t, cache.Write())
	assertGetHas(t, base, k, v, true)
	assertGetHas(t, base, []byte("gone"), nil, false)

	// committed state only changes after commit
	got, err := commit.Get(k)
	assert.Nil(t, err)
	assert.Nil(t, got)

	id, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)

	got, err = commit.Get(k)
	assert.Nil(t, err)
	assert.Equal(t, v, got)
}

func TestCommitStoreIterator(t *testing.T) {
	commit := NewMemCommitStore()
	base := commit.Adapter()
	for _, k := range []string{"a", "b", "c", "d"} {
		assert.Nil(t, base.Set([]byte(k), []byte(k)))
	}

	it, err := base.Iterator([]byte("b"), []byte("d"))
	assert.Nil(t, err)
	var keys []string
	for ; it.Valid(); it.Next() {
		keys = append(keys, string(it.Key()))
	}
	it.Close()
	assert.Equal(t, []string{"b", "c"}, keys)

	it, err = base.ReverseIterator(nil, nil)
	assert.Nil(t, err)
	keys = nil
	for ; it.Valid(); it.Next() {
		keys = append(keys, string(it.Key()))
	}
	it.Close()
	assert.Equal(t, []string{"d", "c", "b", "a"}, keys)
}

func TestCommitStorePersistence(t *testing.T) {
	dir, err := ioutil.TempDir("", "iavl-adapter-")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	commit, err := NewCommitStore(dir, "base")
	assert.Nil(t, err)
	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set([]byte("owner"), []byte("alice")))
	assert.Nil(t, cache.Write())
	first, err := commit.Commit()
	assert.Nil(t, err)
	commit.Close()

	reopened, err := NewCommitStore(dir, "base")
	assert.Nil(t, err)
	defer reopened.Close()
	latest, err := reopened.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, first.Version, latest.Version)
	assert.Equal(t, first.Hash, latest.Hash)

	val, err := reopened.Get([]byte("owner"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("alice"), val)
}
