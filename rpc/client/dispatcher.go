package client

import (
	"fmt"

	"github.com/ckv-io/ckv/rpc/command"
	"github.com/ckv-io/ckv/rpc/common"
	"github.com/ckv-io/ckv/rpc/route"
	"github.com/ckv-io/ckv/rpc/session"
	"github.com/ckv-io/ckv/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("rpc")

// dispatcher is the dispatch engine shared by the standard and cluster
// facades. The two variants differ only in the cluster flag sent with the
// bootstrap message and in whether explicit routes are accepted; everything
// else, building the descriptor, resolving the route, reserving an
// identifier and writing the frame, is written once here.
type dispatcher struct {
	config      common.ClientConfig
	session     *session.Session
	allowRoutes bool
}

// newDispatcher connects a session and wraps it with the route policy
func newDispatcher(config common.ClientConfig, connector transport.IClientConnector, clusterMode bool) (*dispatcher, error) {
	sess, err := session.Dial(config, connector, clusterMode)
	if err != nil {
		return nil, err
	}

	return &dispatcher{
		config:      config,
		session:     sess,
		allowRoutes: clusterMode,
	}, nil
}

// execute builds a command descriptor from name and args and dispatches it.
// This is the single dispatch path for all commands, typed or raw.
func (d *dispatcher) execute(name string, args []string, r route.Route) (*Future, error) {
	cmd, err := command.New(name, args...)
	if err != nil {
		return nil, err
	}
	return d.dispatch(cmd, r)
}

// dispatch applies the route policy, resolves the route and hands the frame
// to the session. All failures here happen before any write and leave no
// reservation behind.
func (d *dispatcher) dispatch(cmd command.Command, r route.Route) (*Future, error) {
	if r != nil && !d.allowRoutes {
		return nil, &common.UnsupportedRouteError{Route: fmt.Sprintf("%T", r)}
	}

	dir, err := route.Resolve(r)
	if err != nil {
		return nil, err
	}

	ch, err := d.session.Send(cmd, dir)
	if err != nil {
		return nil, err
	}

	return &Future{ch: ch}, nil
}

// state returns the session lifecycle state
func (d *dispatcher) state() session.State {
	return d.session.State()
}

// close shuts the underlying session down
func (d *dispatcher) close() error {
	return d.session.Close()
}
