// Package client holds the network-facing state of the SDK: the node set and
// the active channel, the mirror channel, operator credentials, and the
// runtime configuration (node list, attempt budgets, backoff bounds,
// timeouts) with validation and defaulting helpers.
package client

import (
	"errors"
	"time"

	"github.com/shamank/hiero-sdk-go/pkg/hedera"
	"google.golang.org/grpc"
)

// Node is one consensus-node endpoint: its dial address and the account that
// collects its fees (the node account id every request names).
type Node struct {
	Address   string
	AccountID hedera.AccountID
}

// TestnetNodes is the default node set, pointing at the public testnet.
var TestnetNodes = []Node{
	{Address: "0.testnet.hedera.com:50211", AccountID: hedera.NewAccountID(0, 0, 3)},
	{Address: "1.testnet.hedera.com:50211", AccountID: hedera.NewAccountID(0, 0, 4)},
	{Address: "2.testnet.hedera.com:50211", AccountID: hedera.NewAccountID(0, 0, 5)},
	{Address: "3.testnet.hedera.com:50211", AccountID: hedera.NewAccountID(0, 0, 6)},
}

// TestnetMirror is the default mirror-node streaming endpoint.
const TestnetMirror = "hcs.testnet.mirrornode.hedera.com:5600"

// Config holds all settings required to initialize a Client.
// Use Validate to fill implicit defaults and to check for required fields.
type Config struct {
	// Nodes is the consensus-node set. Default: TestnetNodes.
	Nodes []Node
	// MirrorAddress is the mirror endpoint used only for topic-message
	// subscriptions. Default: TestnetMirror.
	MirrorAddress string
	// Limits configures attempt budgets, backoff bounds and timeouts.
	// See Limits.WithDefaults for defaults.
	Limits Limits
	// DialOptions are appended to every channel dial. Tests use this to
	// route channels over an in-memory listener.
	DialOptions []grpc.DialOption
	// Debug enables verbose logging.
	Debug bool
}

// Limits controls the execution engine's budgets and deadlines.
// Zero values will be replaced by sane defaults in WithDefaults.
type Limits struct {
	MaxAttempts         int           // engine attempt budget per execute
	MinBackoff          time.Duration // first retry delay, doubling per attempt
	MaxBackoff          time.Duration // retry delay cap
	RequestTimeout      time.Duration // per-attempt gRPC deadline
	ReceiptPollAttempts int           // receipt polling budget
	ReceiptPollDelay    time.Duration // delay between receipt polls
}

// Validate normalizes the configuration by applying implicit defaults for
// Nodes and MirrorAddress and verifies that the node set is not empty after
// defaulting.
func (c *Config) Validate() error {
	if len(c.Nodes) == 0 {
		c.Nodes = TestnetNodes
	}
	if c.MirrorAddress == "" {
		c.MirrorAddress = TestnetMirror
	}
	for _, n := range c.Nodes {
		if n.Address == "" {
			return errors.New("node address is required")
		}
	}
	return nil
}

// WithDefaults returns a copy of l with zero values replaced by defaults:
//
//	MaxAttempts:         10
//	MinBackoff:          250ms
//	MaxBackoff:          8s
//	RequestTimeout:      60s
//	ReceiptPollAttempts: 20
//	ReceiptPollDelay:    500ms
//
// Negative backoff values are treated as an explicit zero (no delay).
func (l Limits) WithDefaults() Limits {
	ll := l
	if ll.MaxAttempts == 0 {
		ll.MaxAttempts = 10
	}
	if ll.MinBackoff == 0 {
		ll.MinBackoff = 250 * time.Millisecond
	}
	if ll.MinBackoff < 0 {
		ll.MinBackoff = 0
	}
	if ll.MaxBackoff == 0 {
		ll.MaxBackoff = 8 * time.Second
	}
	if ll.RequestTimeout == 0 {
		ll.RequestTimeout = 60 * time.Second
	}
	if ll.ReceiptPollAttempts == 0 {
		ll.ReceiptPollAttempts = 20
	}
	if ll.ReceiptPollDelay == 0 {
		ll.ReceiptPollDelay = 500 * time.Millisecond
	}
	return ll
}
