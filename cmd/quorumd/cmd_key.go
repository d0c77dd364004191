package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ed25519"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key.

When successful a new file with binary content containing private key is
created. This command fails if the private key file already exists.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl    = fl.String("home", defaultHome(), "Directory holding the configuration and the state.")
		keyPathFl = fl.String("key", env("QUORUMD_PRIV_KEY", ""),
			"Path to the private key file. Defaults to the configured key. You can use QUORUMD_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	path, err := keyPath(*keyPathFl, *homeFl)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		// Do not allow to overwrite already existing private key. User
		// must manually delete it first to ensure we do not delete
		// such crucial data by an accident (bad command usage).
		return fmt.Errorf("private key file %q already exists, delete this file and try again", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("cannot create key directory: %s", err)
	}

	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return fmt.Errorf("cannot generate ed25519 key: %s", err)
	}

	fd, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("cannot create private key file: %s", err)
	}
	defer fd.Close()

	if _, err := fd.Write(priv); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("cannot close private key file: %s", err)
	}
	return nil
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out a hex-address associated with your private key.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl    = fl.String("home", defaultHome(), "Directory holding the configuration and the state.")
		keyPathFl = fl.String("key", env("QUORUMD_PRIV_KEY", ""),
			"Path to the private key file. Defaults to the configured key. You can use QUORUMD_PRIV_KEY environment variable to set it.")
		bech32Fl = fl.String("bech32", "", "Print the address in bech32 format using given human readable prefix.")
	)
	fl.Parse(args)

	path, err := keyPath(*keyPathFl, *homeFl)
	if err != nil {
		return err
	}
	key, err := loadKey(path)
	if err != nil {
		return err
	}
	addr := key.PublicKey().Address()
	if *bech32Fl != "" {
		enc, err := addr.Bech32String(*bech32Fl)
		if err != nil {
			return fmt.Errorf("cannot encode bech32: %s", err)
		}
		_, err = fmt.Fprintln(output, enc)
		return err
	}
	_, err = fmt.Fprintln(output, addr)
	return err
}
