package multisig

import (
	"encoding/hex"
	"strconv"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
	"github.com/iov-one/quorum/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r quorum.Registry, auth x.Authenticator, ctrl *Controller) {
	r.Handle(pathCreateWalletMsg, CreateWalletHandler{ctrl: ctrl})
	r.Handle(pathSubmitTransactionMsg, SubmitHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathSubmitAddOwnerMsg, SubmitHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathSubmitRemoveOwnerMsg, SubmitHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathSubmitSetThresholdMsg, SubmitHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathConfirmMsg, ConfirmHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathRevokeMsg, RevokeHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathExecuteMsg, ExecuteHandler{ctrl: ctrl})
}

// RegisterQuery registers wallets as "/wallets", proposals as "/proposals"
// and confirmations as "/confirmations".
func RegisterQuery(qr quorum.QueryRouter) {
	NewWalletBucket().Register("wallets", qr)
	NewProposalBucket().Register("proposals", qr)
	NewConfirmationBucket().Register("confirmations", qr)
}

// actor returns the address acting in the name of the message. An explicit
// address must be authorized by the transaction, otherwise the main signer
// is used.
func actor(ctx quorum.Context, auth x.Authenticator, declared quorum.Address) (quorum.Address, error) {
	if len(declared) == 0 {
		main := x.MainSigner(ctx, auth)
		if main == nil {
			return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
		}
		return main.Address(), nil
	}
	if !auth.HasAddress(ctx, declared) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s did not sign", declared)
	}
	return declared, nil
}

func walletAttr(id []byte) string {
	return hex.EncodeToString(id)
}

// CreateWalletHandler creates wallets. Anyone can create a wallet.
type CreateWalletHandler struct {
	ctrl *Controller
}

var _ quorum.Handler = CreateWalletHandler{}

func (h CreateWalletHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	var msg CreateWalletMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &quorum.CheckResult{}, nil
}

func (h CreateWalletHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	var msg CreateWalletMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	id, w, err := h.ctrl.CreateWallet(db, msg.Owners, msg.Threshold)
	if err != nil {
		return nil, err
	}
	ev := quorum.NewEvent("wallet_created",
		"wallet", walletAttr(id),
		"address", w.Address.String(),
		"threshold", strconv.Itoa(int(w.Threshold)),
	)
	return &quorum.DeliverResult{Data: id, Events: []quorum.Event{ev}}, nil
}

// SubmitHandler appends proposals. It handles plain transactions and all
// governance helper messages.
type SubmitHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ quorum.Handler = SubmitHandler{}

func (h SubmitHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{}, nil
}

func (h SubmitHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, proposer, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}

	var (
		walletID []byte
		index    int64
	)
	switch m := msg.(type) {
	case *SubmitTransactionMsg:
		walletID = m.WalletID
		index, err = h.ctrl.Submit(ctx, db, m.WalletID, proposer, m.Target, m.Value, m.Payload, m.ExpiresAt)
	case *SubmitAddOwnerMsg:
		walletID = m.WalletID
		index, err = h.ctrl.SubmitCommand(ctx, db, m.WalletID, proposer, m.Command(), m.ExpiresAt)
	case *SubmitRemoveOwnerMsg:
		walletID = m.WalletID
		index, err = h.ctrl.SubmitCommand(ctx, db, m.WalletID, proposer, m.Command(), m.ExpiresAt)
	case *SubmitSetThresholdMsg:
		walletID = m.WalletID
		index, err = h.ctrl.SubmitCommand(ctx, db, m.WalletID, proposer, m.Command(), m.ExpiresAt)
	default:
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	if err != nil {
		return nil, err
	}

	p, err := h.ctrl.Transaction(db, walletID, index)
	if err != nil {
		return nil, err
	}
	kind := "transfer"
	if p.Inner {
		kind = p.Command.Kind.String()
	}
	ev := quorum.NewEvent("proposal_created",
		"wallet", walletAttr(walletID),
		"index", strconv.FormatInt(index, 10),
		"proposer", proposer.String(),
		"target", p.Target.String(),
		"value", strconv.FormatInt(p.Value, 10),
		"kind", kind,
		"expires_at", strconv.FormatInt(int64(p.ExpiresAt), 10),
	)
	return &quorum.DeliverResult{
		Data:   orm.EncodeSequence(index),
		Events: []quorum.Event{ev},
	}, nil
}

func (h SubmitHandler) validate(ctx quorum.Context, tx quorum.Tx) (quorum.Msg, quorum.Address, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if err := msg.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "invalid msg")
	}
	var declared quorum.Address
	switch m := msg.(type) {
	case *SubmitTransactionMsg:
		declared = m.Proposer
	case *SubmitAddOwnerMsg:
		declared = m.Proposer
	case *SubmitRemoveOwnerMsg:
		declared = m.Proposer
	case *SubmitSetThresholdMsg:
		declared = m.Proposer
	default:
		return nil, nil, errors.WithType(errors.ErrMsg, msg)
	}
	proposer, err := actor(ctx, h.auth, declared)
	if err != nil {
		return nil, nil, err
	}
	return msg, proposer, nil
}

// ConfirmHandler records owner confirmations.
type ConfirmHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ quorum.Handler = ConfirmHandler{}

func (h ConfirmHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{}, nil
}

func (h ConfirmHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	p, err := h.ctrl.Confirm(db, msg.WalletID, msg.Index, owner)
	if err != nil {
		return nil, err
	}
	ev := quorum.NewEvent("confirmed",
		"wallet", walletAttr(msg.WalletID),
		"index", strconv.FormatInt(msg.Index, 10),
		"owner", owner.String(),
		"confirmations", strconv.Itoa(int(p.Confirmations)),
	)
	return &quorum.DeliverResult{Events: []quorum.Event{ev}}, nil
}

func (h ConfirmHandler) validate(ctx quorum.Context, tx quorum.Tx) (*ConfirmMsg, quorum.Address, error) {
	var msg ConfirmMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner, err := actor(ctx, h.auth, msg.Owner)
	if err != nil {
		return nil, nil, err
	}
	return &msg, owner, nil
}

// RevokeHandler withdraws owner confirmations.
type RevokeHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ quorum.Handler = RevokeHandler{}

func (h RevokeHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{}, nil
}

func (h RevokeHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	p, err := h.ctrl.Revoke(db, msg.WalletID, msg.Index, owner)
	if err != nil {
		return nil, err
	}
	ev := quorum.NewEvent("revoked",
		"wallet", walletAttr(msg.WalletID),
		"index", strconv.FormatInt(msg.Index, 10),
		"owner", owner.String(),
		"confirmations", strconv.Itoa(int(p.Confirmations)),
	)
	return &quorum.DeliverResult{Events: []quorum.Event{ev}}, nil
}

func (h RevokeHandler) validate(ctx quorum.Context, tx quorum.Tx) (*RevokeMsg, quorum.Address, error) {
	var msg RevokeMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner, err := actor(ctx, h.auth, msg.Owner)
	if err != nil {
		return nil, nil, err
	}
	return &msg, owner, nil
}

// ExecuteHandler runs proposals. Execution does not require a signature.
type ExecuteHandler struct {
	ctrl *Controller
}

var _ quorum.Handler = ExecuteHandler{}

func (h ExecuteHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	var msg ExecuteMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &quorum.CheckResult{}, nil
}

func (h ExecuteHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	var msg ExecuteMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	p, effects, err := h.ctrl.Execute(ctx, db, msg.WalletID, msg.Index)
	if err != nil {
		return nil, err
	}
	ev := quorum.NewEvent("executed",
		"wallet", walletAttr(msg.WalletID),
		"index", strconv.FormatInt(msg.Index, 10),
		"inner", strconv.FormatBool(p.Inner),
	)
	return &quorum.DeliverResult{Events: append([]quorum.Event{ev}, effects...)}, nil
}
