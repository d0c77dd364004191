package utils

import (
	"github.com/iov-one/quorum"
)

// ActionTagger will inspect the message being executed and add an event
// `message` with the attribute `action = msg.Path()`. This gives clients a
// standard way to search for eg. proposal execution.
type ActionTagger struct{}

var _ quorum.Decorator = ActionTagger{}

const (
	// ActionEvent is the type of the event appended by ActionTagger.
	ActionEvent = "message"
	// ActionKey is used by ActionTagger as the attribute key.
	ActionKey = "action"
)

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check just passes the request along
func (ActionTagger) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver appends an event on the result if there is a success.
func (ActionTagger) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	// if we error in reporting, let's do so early before dispatching
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}

	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	ev := quorum.NewEvent(ActionEvent, ActionKey, msg.Path())
	res.Events = append([]quorum.Event{ev}, res.Events...)
	return res, nil
}
