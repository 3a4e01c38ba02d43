package client

import (
	"context"

	"github.com/ckv-io/ckv/rpc/command"
	"github.com/ckv-io/ckv/rpc/common"
	"github.com/ckv-io/ckv/rpc/session"
	"github.com/ckv-io/ckv/rpc/transport"
)

// Client is the standard (non-cluster) client facade. It talks to a single
// configured core node; routing is always the core default and supplying an
// explicit route is rejected with UnsupportedRouteError. All methods are
// safe for concurrent use.
type Client struct {
	d *dispatcher
}

// NewClient connects to the execution core and returns a standard client.
// The bootstrap message leaves cluster mode disabled.
func NewClient(config common.ClientConfig, connector transport.IClientConnector) (*Client, error) {
	d, err := newDispatcher(config, connector, false)
	if err != nil {
		return nil, err
	}
	return &Client{d: d}, nil
}

// Execute dispatches a raw command and returns its outcome handle. Typed
// and raw commands share this one dispatch path.
func (c *Client) Execute(name string, args ...string) (*Future, error) {
	return c.d.execute(name, args, nil)
}

// Do dispatches a raw command and waits for its outcome
func (c *Client) Do(ctx context.Context, name string, args ...string) ([]byte, error) {
	f, err := c.Execute(name, args...)
	if err != nil {
		return nil, err
	}
	return f.Wait(ctx)
}

// --------------------------------------------------------------------------
// Typed commands
// --------------------------------------------------------------------------

// Get retrieves the value stored under key
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	cmd, err := command.NewGet(key)
	if err != nil {
		return nil, err
	}
	f, err := c.d.dispatch(cmd, nil)
	if err != nil {
		return nil, err
	}
	return f.Wait(ctx)
}

// Set stores value under key
func (c *Client) Set(ctx context.Context, key, value string) error {
	cmd, err := command.NewSet(key, value)
	if err != nil {
		return err
	}
	f, err := c.d.dispatch(cmd, nil)
	if err != nil {
		return err
	}
	_, err = f.Wait(ctx)
	return err
}

// Del removes one or more keys
func (c *Client) Del(ctx context.Context, keys ...string) error {
	cmd, err := command.NewDel(keys...)
	if err != nil {
		return err
	}
	f, err := c.d.dispatch(cmd, nil)
	if err != nil {
		return err
	}
	_, err = f.Wait(ctx)
	return err
}

// Exists reports the core's existence payload for one or more keys
func (c *Client) Exists(ctx context.Context, keys ...string) ([]byte, error) {
	cmd, err := command.NewExists(keys...)
	if err != nil {
		return nil, err
	}
	f, err := c.d.dispatch(cmd, nil)
	if err != nil {
		return nil, err
	}
	return f.Wait(ctx)
}

// Ping checks the session end to end
func (c *Client) Ping(ctx context.Context) error {
	cmd, err := command.NewPing()
	if err != nil {
		return err
	}
	f, err := c.d.dispatch(cmd, nil)
	if err != nil {
		return err
	}
	_, err = f.Wait(ctx)
	return err
}

// State returns the lifecycle state of the underlying session
func (c *Client) State() session.State {
	return c.d.state()
}

// Close shuts the client down; every in-flight request resolves with
// ErrConnectionClosed
func (c *Client) Close() error {
	return c.d.close()
}
