package client

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shamank/hiero-sdk-go/pkg/hedera"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// Network holds the fixed set of consensus-node endpoints and the channel to
// the currently selected one. Node failures never remove entries from the
// set; the execution engine rotates through it across attempts and switching
// tears down and reopens the channel.
type Network struct {
	mu       sync.Mutex
	nodes    []Node
	current  int
	conn     *grpc.ClientConn
	dialOpts []grpc.DialOption
}

func newNetwork(nodes []Node, dialOpts []grpc.DialOption) *Network {
	return &Network{
		nodes:    append([]Node(nil), nodes...),
		dialOpts: dialOpts,
	}
}

// Nodes returns a copy of the node set.
func (n *Network) Nodes() []Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Node(nil), n.nodes...)
}

// NodeAccountIDs returns the account ids of every known node, in set order.
func (n *Network) NodeAccountIDs() []hedera.AccountID {
	n.mu.Lock()
	defer n.mu.Unlock()
	ids := make([]hedera.AccountID, len(n.nodes))
	for i, node := range n.nodes {
		ids[i] = node.AccountID
	}
	return ids
}

// AddressFor resolves a node account id to its dial address.
func (n *Network) AddressFor(id hedera.AccountID) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, node := range n.nodes {
		if node.AccountID == id {
			return node.Address, true
		}
	}
	return "", false
}

// Current returns the currently selected node.
func (n *Network) Current() Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.nodes[n.current]
}

// ConnFor returns an open channel to the given node, switching the active
// node if it differs from the current one. Switching closes the previous
// channel; stubs bound to it must be rebuilt by the caller.
func (n *Network) ConnFor(id hedera.AccountID) (*grpc.ClientConn, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	idx := -1
	for i, node := range n.nodes {
		if node.AccountID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("no node address found for account ID %s", id)
	}

	if n.conn != nil && idx == n.current {
		return n.conn, nil
	}

	if n.conn != nil {
		if err := n.conn.Close(); err != nil {
			zap.L().Warn("failed to close previous node channel", zap.Error(err))
		}
		n.conn = nil
	}

	conn, err := dial(n.nodes[idx].Address, n.dialOpts)
	if err != nil {
		return nil, fmt.Errorf("dial node %s (%s): %w", id, n.nodes[idx].Address, err)
	}
	n.current = idx
	n.conn = conn
	return conn, nil
}

// Close shuts down the active channel, if any.
func (n *Network) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.conn == nil {
		return nil
	}
	err := n.conn.Close()
	n.conn = nil
	return err
}

// dial derives transport security from the endpoint scheme:
//   - "https://": TLS (system defaults)
//   - "http://" or no scheme: insecure
func dial(endpoint string, extra []grpc.DialOption) (*grpc.ClientConn, error) {
	addr := endpoint
	creds := grpc.WithTransportCredentials(insecure.NewCredentials())
	if strings.HasPrefix(endpoint, "https://") {
		addr = strings.TrimPrefix(endpoint, "https://")
		creds = grpc.WithTransportCredentials(credentials.NewTLS(nil))
	} else {
		addr = strings.TrimPrefix(endpoint, "http://")
	}
	opts := append([]grpc.DialOption{creds}, extra...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, err
	}
	conn.Connect()
	return conn, nil
}
