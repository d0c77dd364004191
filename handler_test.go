package quorum

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/quorum/weavetest/assert"
)

func TestOptionsReadOptions(t *testing.T) {
	var o Options
	assert.Nil(t, json.Unmarshal([]byte(`{"list": [{"key": 1}, {"key": 2}], "bad": "x"}`), &o))

	var list []struct{ Key int }
	assert.Nil(t, o.ReadOptions("list", &list))
	assert.Equal(t, 2, len(list))
	assert.Equal(t, 2, list[1].Key)

	// missing key is not an error and leaves the destination untouched
	var missing []struct{ Key int }
	assert.Nil(t, o.ReadOptions("missing", &missing))
	assert.Equal(t, 0, len(missing))

	var wrong []struct{ Key int }
	if err := o.ReadOptions("bad", &wrong); err == nil {
		t.Fatal("want decoding error")
	}
}

func TestEvent(t *testing.T) {
	ev := NewEvent("transfer", "source", "a", "amount", "10", "dangling")
	assert.Equal(t, "transfer", ev.Type)
	assert.Equal(t, 2, len(ev.Attributes))

	v, ok := ev.Attr("amount")
	assert.Equal(t, true, ok)
	assert.Equal(t, "10", v)

	_, ok = ev.Attr("dangling")
	assert.Equal(t, false, ok)
}
