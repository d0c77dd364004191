package weavetest

import "github.com/iov-one/quorum"

// Decorator is a quorum.Decorator spy. It remembers the route path of
// every transaction it sees and fails with CheckErr or DeliverErr when
// those are set, without calling the next handler.
type Decorator struct {
	CheckErr   error
	DeliverErr error

	checked   []string
	delivered []string
}

var _ quorum.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	d.checked = append(d.checked, routeOf(tx))
	if d.CheckErr != nil {
		return &quorum.CheckResult{}, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	d.delivered = append(d.delivered, routeOf(tx))
	if d.DeliverErr != nil {
		return &quorum.DeliverResult{}, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Delivered returns route paths of all delivered transactions, failed
// ones included.
func (d *Decorator) Delivered() []string { return d.delivered }

func (d *Decorator) CheckCallCount() int { return len(d.checked) }

func (d *Decorator) CallCount() int { return len(d.checked) + len(d.delivered) }

// routeOf returns the path of the transaction message or an empty string
// when it cannot be loaded.
func routeOf(tx quorum.Tx) string {
	if tx == nil {
		return ""
	}
	msg, err := tx.GetMsg()
	if err != nil || msg == nil {
		return ""
	}
	return msg.Path()
}

// Decorate wraps a handler with a single decorator.
func Decorate(h quorum.Handler, d quorum.Decorator) quorum.Handler {
	return decorated{next: h, dec: d}
}

type decorated struct {
	next quorum.Handler
	dec  quorum.Decorator
}

func (d decorated) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	return d.dec.Check(ctx, db, tx, d.next)
}

func (d decorated) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	return d.dec.Deliver(ctx, db, tx, d.next)
}
