package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/iov-one/quorum"
)

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *quorum.Address {
	var a quorum.Address
	if defaultVal != "" {
		var err error
		a, err = quorum.ParseAddress(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q quorum.Address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var((*flagAddress)(&a), name, usage)
	return &a
}

type flagAddress quorum.Address

func (a flagAddress) String() string {
	if len(a) == 0 {
		return ""
	}
	return quorum.Address(a).String()
}

func (a *flagAddress) Set(raw string) error {
	addr, err := quorum.ParseAddress(raw)
	if err != nil {
		return err
	}
	*a = flagAddress(addr)
	return nil
}

// flAddresses returns a list of addresses declared as a comma separated
// value.
func flAddresses(fl *flag.FlagSet, name, usage string) *[]quorum.Address {
	var list []quorum.Address
	fl.Var((*flagAddresses)(&list), name, usage)
	return &list
}

type flagAddresses []quorum.Address

func (l flagAddresses) String() string {
	encoded := make([]string, len(l))
	for i, a := range l {
		encoded[i] = a.String()
	}
	return strings.Join(encoded, ",")
}

func (l *flagAddresses) Set(raw string) error {
	var list []quorum.Address
	for _, enc := range strings.Split(raw, ",") {
		addr, err := quorum.ParseAddress(strings.TrimSpace(enc))
		if err != nil {
			return err
		}
		list = append(list, addr)
	}
	*l = list
	return nil
}

// flHex returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flHex(fl *flag.FlagSet, name, defaultVal, usage string) *[]byte {
	var b []byte
	if defaultVal != "" {
		var err error
		b, err = hex.DecodeString(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q hex encoded flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var((*flagbyte)(&b), name, usage)
	return &b
}

type flagbyte []byte

func (b flagbyte) String() string {
	return hex.EncodeToString(b)
}

func (b *flagbyte) Set(raw string) error {
	val, err := hex.DecodeString(raw)
	if err != nil {
		return err
	}
	*b = val
	return nil
}

// flTime returns a time value declared in RFC3339 format. The current
// time is used when the flag is not provided.
func flTime(fl *flag.FlagSet, name, usage string) *time.Time {
	t := time.Now().UTC()
	fl.Var((*flagTime)(&t), name, usage)
	return &t
}

type flagTime time.Time

func (t flagTime) String() string {
	return time.Time(t).Format(time.RFC3339)
}

func (t *flagTime) Set(raw string) error {
	val, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return err
	}
	*t = flagTime(val.UTC())
	return nil
}
