package main

import (
	"flag"
	"testing"
	"time"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/weavetest/assert"
	"github.com/stretchr/testify/require"
)

func TestFlags(t *testing.T) {
	a := weavetest.NewCondition().Address()
	b := weavetest.NewCondition().Address()

	fl := flag.NewFlagSet("", flag.ContinueOnError)
	var (
		addrFl   = flAddress(fl, "addr", "", "")
		ownersFl = flAddresses(fl, "owners", "")
		hexFl    = flHex(fl, "payload", "", "")
		timeFl   = flTime(fl, "time", "")
	)
	require.NoError(t, fl.Parse([]string{
		"-addr", a.String(),
		"-owners", a.String() + ", " + b.String(),
		"-payload", "cafe",
		"-time", "2019-03-01T12:00:00+02:00",
	}))

	assert.Equal(t, a, *addrFl)
	assert.Equal(t, []quorum.Address{a, b}, *ownersFl)
	assert.Equal(t, []byte{0xca, 0xfe}, *hexFl)
	assert.Equal(t, time.Date(2019, 3, 1, 10, 0, 0, 0, time.UTC), *timeFl)

	fl = flag.NewFlagSet("", flag.ContinueOnError)
	fl.SetOutput(&nopWriter{})
	flAddresses(fl, "owners", "")
	require.Error(t, fl.Parse([]string{"-owners", "not-hex"}))
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
