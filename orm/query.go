package orm

import (
	"github.com/iov-one/quorum"
)

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(itr quorum.Iterator) ([]quorum.Model, error) {
	defer itr.Close()

	var res []quorum.Model
	for itr.Valid() {
		res = append(res, quorum.Pair(itr.Key(), itr.Value()))
		if err := itr.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func queryPrefix(db quorum.ReadOnlyKVStore, prefix []byte) ([]quorum.Model, error) {
	itr, err := db.Iterator(prefix, prefixEnd(prefix))
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(itr)
}

// prefixEnd returns the smallest key that is greater than all keys starting
// with given prefix, or nil when no such key exists.
func prefixEnd(prefix []byte) []byte {
	if len(prefix) == 0 {
		return nil
	}
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
