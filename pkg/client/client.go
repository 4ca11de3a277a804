package client

import (
	"sync"

	"github.com/shamank/hiero-sdk-go/pkg/crypto"
	"github.com/shamank/hiero-sdk-go/pkg/hedera"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// init installs a default global zap logger for the SDK. Applications may
// replace it with zap.ReplaceGlobals(...) if they need custom logging.
func init() {
	c := zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.InfoLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

// Operator is the account/key pair a Client uses to pay fees and
// default-sign transactions.
type Operator struct {
	AccountID  hedera.AccountID
	PrivateKey crypto.PrivateKey
}

// Client owns the operator credentials, the consensus-node Network and the
// mirror channel, and generates transaction identifiers. A Client is not
// designed for concurrent execute calls that race on node switching; callers
// needing concurrency should use independent Clients.
type Client struct {
	config  *Config
	limits  Limits
	network *Network

	mu       sync.Mutex
	operator *Operator
	mirror   *grpc.ClientConn
}

// New initializes a Client with a validated configuration and defaulted
// limits. The initial node channel and the mirror channel are opened lazily.
func New(config *Config) (*Client, error) {
	if config == nil {
		config = &Config{}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config:  config,
		limits:  config.Limits.WithDefaults(),
		network: newNetwork(config.Nodes, config.DialOptions),
	}, nil
}

// ForTestnet returns a Client bound to the default public testnet nodes.
func ForTestnet() *Client {
	c, err := New(&Config{})
	if err != nil {
		// The default configuration always validates.
		panic(err)
	}
	return c
}

// SetOperator sets the operator credentials (account ID and private key).
func (c *Client) SetOperator(accountID hedera.AccountID, key crypto.PrivateKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.operator = &Operator{AccountID: accountID, PrivateKey: key}
}

// Operator returns the configured operator, or nil if none is set.
func (c *Client) Operator() *Operator {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.operator
}

// GenerateTransactionID generates a fresh transaction identifier paid for by
// the operator account. It fails if no operator is configured.
func (c *Client) GenerateTransactionID() (hedera.TransactionID, error) {
	op := c.Operator()
	if op == nil {
		return hedera.TransactionID{}, hedera.ErrNoOperator
	}
	return hedera.NewTransactionID(op.AccountID), nil
}

// Network returns the consensus-node network.
func (c *Client) Network() *Network { return c.network }

// NodeAccountIDs returns the account ids of every node the client can
// submit to, in network order.
func (c *Client) NodeAccountIDs() []hedera.AccountID {
	return c.network.NodeAccountIDs()
}

// Limits returns the defaulted execution limits.
func (c *Client) Limits() Limits { return c.limits }

// Debug reports whether verbose logging is enabled.
func (c *Client) Debug() bool { return c.config.Debug }

// Mirror returns the channel to the mirror endpoint, dialing it on first use.
func (c *Client) Mirror() (*grpc.ClientConn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mirror != nil {
		return c.mirror, nil
	}
	conn, err := dial(c.config.MirrorAddress, c.config.DialOptions)
	if err != nil {
		return nil, err
	}
	c.mirror = conn
	return conn, nil
}

// Close shuts down the node and mirror channels. Call it when done with the
// Client to ensure a clean shutdown.
func (c *Client) Close() error {
	err := c.network.Close()

	c.mu.Lock()
	mirror := c.mirror
	c.mirror = nil
	c.mu.Unlock()

	if mirror != nil {
		if mErr := mirror.Close(); mErr != nil && err == nil {
			err = mErr
		}
	}
	return err
}
