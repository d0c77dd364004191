package cash

import (
	"strconv"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r quorum.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathSendMsg, NewSendHandler(auth, control))
}

// RegisterQuery will register this bucket as "/balances"
func RegisterQuery(qr quorum.QueryRouter) {
	NewBucket().Register("balances", qr)
}

// SendHandler will handle sending value
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ quorum.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and authorized
func (h SendHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{}, nil
}

// Deliver moves the value from source to receiver if
// all preconditions are met
func (h SendHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	ev := quorum.NewEvent("transfer",
		"source", msg.Source.String(),
		"destination", msg.Destination.String(),
		"amount", strconv.FormatInt(msg.Amount, 10),
	)
	return &quorum.DeliverResult{Events: []quorum.Event{ev}}, nil
}

func (h SendHandler) validate(ctx quorum.Context, tx quorum.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	// Make sure we have permission from the source.
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}
