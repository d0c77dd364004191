package utils

import (
	"time"

	"github.com/iov-one/quorum"
	"github.com/tendermint/tendermint/libs/log"
)

// Logging writes one log entry per processed transaction. Failures are
// logged as errors, delivered transactions at info level and checks at
// debug level.
//
// Every entry carries the message path and the duration. Wallet and
// proposal index attributes found in the result events are added as well,
// so that the history of a single proposal can be followed in the log.
type Logging struct{}

var _ quorum.Decorator = Logging{}

// NewLogging returns a Logging decorator.
func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	logger := txLogger(ctx, tx, start)
	switch {
	case err != nil:
		logger.Error("check failed", "err", err)
	default:
		logger.Debug("checked", "log", res.Log)
	}
	return res, err
}

func (Logging) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	logger := txLogger(ctx, tx, start)
	if err != nil {
		logger.Error("deliver failed", "err", err)
		return res, err
	}
	logger.Info("delivered", append([]interface{}{"log", res.Log}, proposalKeyvals(res.Events)...)...)
	return res, err
}

func txLogger(ctx quorum.Context, tx quorum.Tx, start time.Time) log.Logger {
	logger := quorum.GetLogger(ctx).With("duration", time.Since(start)/time.Microsecond)
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		logger = logger.With("path", msg.Path())
	}
	return logger
}

// proposalKeyvals returns the first wallet and index attributes found in
// given events.
func proposalKeyvals(events []quorum.Event) []interface{} {
	var kv []interface{}
	for _, key := range []string{"wallet", "index"} {
		for _, ev := range events {
			if v, ok := ev.Attr(key); ok {
				kv = append(kv, key, v)
				break
			}
		}
	}
	return kv
}
