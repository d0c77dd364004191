package multisig

import (
	"strconv"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/cash"
	"github.com/iov-one/quorum/x/contract"
)

// Executor performs the effect of a proposal that cleared the quorum and
// expiration checks. Returning an error aborts the execution.
type Executor interface {
	Execute(ctx quorum.Context, db quorum.KVStore, w *Wallet, p *Proposal) ([]quorum.Event, error)
}

// BaseExecutor moves funds with the cash controller and delivers call data
// to contracts. Inner proposals are handed over to the governance
// dispatcher.
type BaseExecutor struct {
	cash      cash.Controller
	contracts *contract.Registry
	gov       Dispatcher
}

var _ Executor = BaseExecutor{}

// NewExecutor returns an executor using given funds controller and contract
// registry.
func NewExecutor(cashCtrl cash.Controller, contracts *contract.Registry) BaseExecutor {
	return BaseExecutor{
		cash:      cashCtrl,
		contracts: contracts,
		gov:       NewDispatcher(),
	}
}

func (e BaseExecutor) Execute(ctx quorum.Context, db quorum.KVStore, w *Wallet, p *Proposal) ([]quorum.Event, error) {
	if p.Inner {
		return e.gov.Dispatch(ctx, db, p.WalletID, p.Command)
	}

	var events []quorum.Event
	if p.Value > 0 {
		if err := e.cash.MoveCoins(db, w.Address, p.Target, p.Value); err != nil {
			return nil, errors.Wrapf(ErrEffectFailed, "transfer: %s", err)
		}
		events = append(events, quorum.NewEvent("transfer",
			"source", w.Address.String(),
			"destination", p.Target.String(),
			"amount", strconv.FormatInt(p.Value, 10),
		))
	}
	if e.contracts != nil {
		if err := e.contracts.Call(ctx, db, p.Target, w.Address, p.Value, p.Payload); err != nil {
			return nil, errors.Wrapf(ErrEffectFailed, "call: %s", err)
		}
	}
	return events, nil
}
