// Package execute implements the retry/backoff/failover state machine shared
// by every request type. Transactions and queries plug in through the
// Executable hooks; all protocol-level failure handling lives here.
package execute

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/hedera"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
)

// State classifies a node's immediate response and decides the engine's next
// move.
type State int

const (
	// StateRetry means the node reported a transient condition; back off and
	// try the next node.
	StateRetry State = iota
	// StateFinished means the request was accepted; map and return.
	StateFinished
	// StateExpired means the transaction's valid-start window elapsed;
	// terminal, resubmission needs a fresh transaction id.
	StateExpired
	// StateError means a terminal precheck failure.
	StateError
)

// MethodFn performs a single network call with the already-built request.
type MethodFn func(ctx context.Context, req proto.Message) (proto.Message, error)

// Executable is the contract a request type implements to be driven by the
// engine. The node for each attempt is threaded through explicitly rather
// than held as shared state, so concurrent executions cannot race on it.
type Executable[T any] interface {
	// Nodes returns the candidate node account ids, or nil to use every
	// node the client knows.
	Nodes(c *client.Client) []hedera.AccountID
	// MakeRequest builds the wire request for an attempt against the given
	// node.
	MakeRequest(node hedera.AccountID) (proto.Message, error)
	// Method returns the call bound to the given channel.
	Method(conn *grpc.ClientConn) MethodFn
	// ShouldRetry classifies the node's immediate response.
	ShouldRetry(resp proto.Message) State
	// MapResponse converts an accepted response into the typed result.
	MapResponse(resp proto.Message, node hedera.AccountID, req proto.Message) (T, error)
	// MapStatusError converts a non-accepted response into its typed error.
	MapStatusError(resp proto.Message) error
}

// Execute drives the submit→classify→retry loop until the request finishes,
// fails terminally, or the attempt budget is spent. Attempt i is submitted to
// node i mod len(nodes), so repeated failures visibly rotate through the
// whole set. Transient conditions (retryable status codes and network-level
// I/O failures) are absorbed here and only surface as a MaxAttemptsError
// once the budget is gone.
func Execute[T any](ctx context.Context, c *client.Client, e Executable[T]) (T, error) {
	var result T

	nodes := e.Nodes(c)
	if len(nodes) == 0 {
		nodes = c.NodeAccountIDs()
	}
	if len(nodes) == 0 {
		return result, errors.New("no nodes available in the network configuration")
	}

	limits := c.Limits()
	attempt := 0
	var lastErr error

	err := retry.Do(ctx, attemptBackoff(limits), func(ctx context.Context) error {
		node := nodes[attempt%len(nodes)]
		attempt++

		conn, err := c.Network().ConnFor(node)
		if err != nil {
			zap.L().Warn("node unreachable", zap.Stringer("node", node), zap.Error(err))
			lastErr = err
			return retry.RetryableError(err)
		}

		req, err := e.MakeRequest(node)
		if err != nil {
			return err
		}

		callCtx, cancel := context.WithTimeout(ctx, limits.RequestTimeout)
		defer cancel()

		resp, err := e.Method(conn)(callCtx, req)
		if err != nil {
			zap.L().Warn("request attempt failed",
				zap.Int("attempt", attempt),
				zap.Stringer("node", node),
				zap.Error(err))
			lastErr = err
			return retry.RetryableError(err)
		}

		switch e.ShouldRetry(resp) {
		case StateRetry:
			lastErr = e.MapStatusError(resp)
			zap.L().Debug("transient status, retrying",
				zap.Int("attempt", attempt),
				zap.Stringer("node", node),
				zap.Error(lastErr))
			return retry.RetryableError(lastErr)
		case StateExpired, StateError:
			return e.MapStatusError(resp)
		}

		result, err = e.MapResponse(resp, node, req)
		return err
	})
	if err == nil {
		return result, nil
	}
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return result, err
	}
	// Terminal classifications and request-build failures pass through
	// unchanged; only an exhausted budget is reported as such.
	if lastErr != nil && errors.Is(err, lastErr) {
		return result, &hedera.MaxAttemptsError{Attempts: attempt, LastErr: lastErr}
	}
	return result, err
}

// attemptBackoff builds the engine's delay schedule: exponential from
// MinBackoff, capped at MaxBackoff, for MaxAttempts total attempts. A zero
// MinBackoff yields no delay at all, which boundary tests rely on.
func attemptBackoff(l client.Limits) retry.Backoff {
	retries := uint64(0)
	if l.MaxAttempts > 1 {
		retries = uint64(l.MaxAttempts - 1)
	}
	if l.MinBackoff <= 0 {
		return retry.WithMaxRetries(retries, retry.BackoffFunc(func() (time.Duration, bool) {
			return 0, false
		}))
	}
	b := retry.WithCappedDuration(l.MaxBackoff, retry.NewExponential(l.MinBackoff))
	return retry.WithMaxRetries(retries, b)
}
