package main

import (
	"encoding/hex"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	quorumd "github.com/iov-one/quorum/cmd/quorumd/app"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
	"github.com/iov-one/quorum/x/sigs"
	"github.com/tendermint/tendermint/libs/log"
	"golang.org/x/crypto/ed25519"
	"gopkg.in/yaml.v3"
)

// node is the application loaded from the state of a home directory.
type node struct {
	app  *app.App
	conf *Config
}

func newLogger(level string) (log.Logger, error) {
	allow, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr)).With("module", "quorumd")
	return log.NewFilter(logger, allow), nil
}

func openNode(home string) (*node, error) {
	conf, err := loadConfig(home)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(conf.LogLevel)
	if err != nil {
		return nil, err
	}
	a, err := quorumd.Application("quorumd", filepath.Join(home, "data", "state"), logger)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load state")
	}
	return &node{app: a, conf: conf}, nil
}

func (n *node) Close() {
	n.app.Close()
}

// deliver applies a single message in a block of its own and commits the
// result. A nil key sends the transaction unsigned.
func (n *node) deliver(key *crypto.PrivateKey, msg quorum.Msg, now time.Time) (*quorum.DeliverResult, error) {
	if n.app.ChainID() == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized, run init first")
	}
	tx := &quorumd.Tx{}
	if err := tx.SetMsg(msg); err != nil {
		return nil, err
	}
	if key != nil {
		seq, err := sigs.NextSequence(n.app.DeliverStore(), key.PublicKey())
		if err != nil {
			return nil, errors.Wrap(err, "sequence")
		}
		sig, err := sigs.SignTx(key, tx, n.app.ChainID(), seq)
		if err != nil {
			return nil, errors.Wrap(err, "cannot sign")
		}
		tx.Signatures = []*sigs.StdSignature{sig}
	}
	raw, err := quorumd.EncodeTx(tx)
	if err != nil {
		return nil, err
	}

	n.app.BeginBlock(now)
	if _, err := n.app.CheckTx(raw); err != nil {
		return nil, err
	}
	res, err := n.app.DeliverTx(raw)
	if err != nil {
		return nil, err
	}
	if _, err := n.app.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}

// query loads the first model found under given path into dest. It returns
// false if nothing was found.
func (n *node) query(path string, key []byte, dest proto.Message) (bool, error) {
	models, err := n.app.Query(path, key)
	if err != nil {
		return false, err
	}
	if len(models) == 0 {
		return false, nil
	}
	if err := proto.Unmarshal(models[0].Value, dest); err != nil {
		return false, errors.Wrap(errors.ErrModel, err.Error())
	}
	return true, nil
}

// loadKey reads an ed25519 private key stored as raw bytes.
func loadKey(path string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot read private key file: %s", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "invalid private key length: %d", len(raw))
	}
	return &crypto.PrivateKey{Ed25519: raw}, nil
}

// keyPath returns the flag value if given, otherwise the configured key.
func keyPath(flagVal, home string) (string, error) {
	if flagVal != "" {
		return flagVal, nil
	}
	conf, err := loadConfig(home)
	if err != nil {
		return "", err
	}
	return conf.Key, nil
}

type resultView struct {
	ID     *int64      `yaml:"id,omitempty"`
	Data   string      `yaml:"data,omitempty"`
	Events []eventView `yaml:"events,omitempty"`
}

type eventView struct {
	Type       string            `yaml:"type"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
}

// writeResult prints the delivery result. When withID is set the result data
// is a sequence value printed in its decimal form.
func writeResult(w io.Writer, res *quorum.DeliverResult, withID bool) error {
	var view resultView
	if withID {
		id, err := orm.DecodeSequence(res.Data)
		if err != nil {
			return err
		}
		view.ID = &id
	} else if len(res.Data) != 0 {
		view.Data = hex.EncodeToString(res.Data)
	}
	for _, e := range res.Events {
		ev := eventView{Type: e.Type}
		if len(e.Attributes) != 0 {
			ev.Attributes = make(map[string]string, len(e.Attributes))
			for _, a := range e.Attributes {
				ev.Attributes[a.Key] = a.Value
			}
		}
		view.Events = append(view.Events, ev)
	}
	return writeYAML(w, view)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
