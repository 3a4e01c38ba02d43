package client

import (
	"context"

	"github.com/ckv-io/ckv/rpc/common"
	"github.com/ckv-io/ckv/rpc/route"
	"github.com/ckv-io/ckv/rpc/session"
	"github.com/ckv-io/ckv/rpc/transport"
)

// ClusterClient is the cluster-aware client facade. It enables cluster mode
// in the bootstrap message and accepts an optional route on every command.
// The client itself never tracks cluster topology; the route is a hint
// forwarded to the core, which owns the slot map.
type ClusterClient struct {
	d *dispatcher
}

// NewClusterClient connects to the execution core and returns a cluster
// client. The bootstrap message enables cluster mode.
func NewClusterClient(config common.ClientConfig, connector transport.IClientConnector) (*ClusterClient, error) {
	d, err := newDispatcher(config, connector, true)
	if err != nil {
		return nil, err
	}
	return &ClusterClient{d: d}, nil
}

// Execute dispatches a raw command with default core routing
func (c *ClusterClient) Execute(name string, args ...string) (*Future, error) {
	return c.d.execute(name, args, nil)
}

// ExecuteRoute dispatches a raw command with an explicit route intent. A
// nil route is equivalent to Execute.
func (c *ClusterClient) ExecuteRoute(name string, args []string, r route.Route) (*Future, error) {
	return c.d.execute(name, args, r)
}

// Do dispatches a raw command with default routing and waits for its outcome
func (c *ClusterClient) Do(ctx context.Context, name string, args ...string) ([]byte, error) {
	f, err := c.Execute(name, args...)
	if err != nil {
		return nil, err
	}
	return f.Wait(ctx)
}

// DoRoute dispatches a raw command with an explicit route intent and waits
// for its outcome
func (c *ClusterClient) DoRoute(ctx context.Context, name string, args []string, r route.Route) ([]byte, error) {
	f, err := c.ExecuteRoute(name, args, r)
	if err != nil {
		return nil, err
	}
	return f.Wait(ctx)
}

// State returns the lifecycle state of the underlying session
func (c *ClusterClient) State() session.State {
	return c.d.state()
}

// Close shuts the client down; every in-flight request resolves with
// ErrConnectionClosed
func (c *ClusterClient) Close() error {
	return c.d.close()
}
