package session

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ckv-io/ckv/rpc/codec"
	"github.com/ckv-io/ckv/rpc/command"
	"github.com/ckv-io/ckv/rpc/common"
	"github.com/ckv-io/ckv/rpc/route"
	"github.com/ckv-io/ckv/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("rpc/session")

// --------------------------------------------------------------------------
// Session state
// --------------------------------------------------------------------------

// State is the lifecycle state of a session. Transitions only move forward:
// Connecting -> Open -> Closing -> Closed. No transitions leave Closed.
type State uint32

const (
	StateConnecting State = iota
	StateOpen
	StateClosing
	StateClosed
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// --------------------------------------------------------------------------
// Session
// --------------------------------------------------------------------------

// Session owns one persistent duplex connection to the execution core. It
// serializes all frame writes, runs a single read pump that decodes
// incoming frames, and demultiplexes them onto the pending request table by
// request identifier. Callers never touch the connection directly.
type Session struct {
	config    common.ClientConfig
	connector transport.IClientConnector
	conn      net.Conn
	state     uint32
	writeMu   sync.Mutex // Protects the connection for writing
	pending   *pendingTable
	done      chan struct{}
	closeOnce sync.Once
}

// Dial connects to the execution core, performs the bootstrap handshake and
// starts the read pump. clusterMode is forwarded in the bootstrap message.
func Dial(config common.ClientConfig, connector transport.IClientConnector, clusterMode bool) (*Session, error) {
	conn, err := connector.Connect(config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", config.Endpoint, err)
	}

	// Apply protocol-specific socket settings
	if err := connector.UpgradeConnection(conn, config); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to upgrade connection to %s: %w", config.Endpoint, err)
	}

	s := &Session{
		config:    config,
		connector: connector,
		conn:      conn,
		state:     uint32(StateConnecting),
		pending:   newPendingTable(),
		done:      make(chan struct{}),
	}

	if err := s.handshake(clusterMode); err != nil {
		conn.Close()
		return nil, err
	}

	s.setState(StateOpen)
	go s.readLoop()

	Logger.Infof("Session to %s open (%s, cluster mode: %t)", config.Endpoint, connector.GetName(), clusterMode)
	return s, nil
}

// handshake sends the bootstrap message and waits synchronously for its
// acknowledgement. The read pump is not running yet, so the ack is read
// inline.
func (s *Session) handshake(clusterMode bool) error {
	if s.config.TimeoutSecond > 0 {
		timeout := time.Duration(s.config.TimeoutSecond) * time.Second
		s.conn.SetDeadline(time.Now().Add(timeout))
		defer s.conn.SetDeadline(time.Time{})
	}

	payload := codec.EncodeBootstrap(s.config, clusterMode)
	if err := codec.WriteFrame(s.conn, payload); err != nil {
		return fmt.Errorf("handshake write failed: %w", err)
	}

	ack, err := codec.ReadFrame(s.conn, nil)
	if err != nil {
		return fmt.Errorf("handshake read failed: %w", err)
	}

	resp, err := codec.DecodeResponse(ack)
	if err != nil {
		return fmt.Errorf("handshake ack malformed: %w", err)
	}
	if resp.ID != codec.BootstrapID {
		return fmt.Errorf("handshake ack carries request id %d, expected %d", resp.ID, codec.BootstrapID)
	}
	if resp.Err != nil {
		return fmt.Errorf("handshake rejected by core: %w", resp.Err)
	}

	return nil
}

// State returns the current lifecycle state
func (s *Session) State() State {
	return State(atomic.LoadUint32(&s.state))
}

func (s *Session) setState(state State) {
	atomic.StoreUint32(&s.state, uint32(state))
}

// Send registers a pending entry, encodes the command frame and writes it.
// It returns the channel on which the outcome will be delivered. If
// encoding or the write fails, the reservation is dropped before returning
// so no entry is orphaned; a write failure additionally tears the session
// down because the stream may carry a partial frame.
func (s *Session) Send(cmd command.Command, dir *route.Directive) (<-chan Result, error) {
	if s.State() != StateOpen {
		return nil, common.ErrConnectionClosed
	}

	id, ch := s.pending.reserve()

	payload, err := codec.EncodeRequest(id, cmd, dir)
	if err != nil {
		s.pending.abort(id)
		return nil, err
	}

	if s.config.TimeoutSecond > 0 {
		timeout := time.Duration(s.config.TimeoutSecond) * time.Second
		s.conn.SetWriteDeadline(time.Now().Add(timeout))
	}

	// Lock the connection only for writing, one whole frame at a time
	s.writeMu.Lock()
	err = codec.WriteFrame(s.conn, payload)
	s.writeMu.Unlock()

	if err != nil {
		s.pending.abort(id)
		s.fail(fmt.Errorf("write failed: %w", err))
		return nil, fmt.Errorf("failed to send request %d: %w", id, err)
	}

	return ch, nil
}

// readLoop is the single read pump: it decodes incoming frames and resolves
// the matching pending entries. Responses may arrive in any order;
// correlation happens exclusively by request identifier. Any stream error
// transitions the session to Closing and fails all pending requests.
func (s *Session) readLoop() {
	for {
		payload, err := codec.ReadFrame(s.conn, nil)
		if err != nil {
			if s.State() == StateOpen {
				Logger.Errorf("Read pump terminated: %v", err)
			}
			s.fail(err)
			return
		}

		resp, err := codec.DecodeResponse(payload)
		if err != nil {
			// A complete frame that does not decode means the stream is corrupt
			Logger.Errorf("Undecodable response frame: %v", err)
			s.fail(err)
			return
		}

		var res Result
		if resp.Err != nil {
			res = Result{Err: resp.Err}
		} else {
			res = Result{Payload: resp.Payload}
		}

		if !s.pending.resolve(resp.ID, res) {
			Logger.Warningf("Received response for unknown request id %d", resp.ID)
		}
	}
}

// Close shuts the session down. Every still-pending request resolves with
// ErrConnectionClosed. Close is idempotent and safe to call from any
// goroutine.
func (s *Session) Close() error {
	s.teardown(nil)
	return nil
}

// fail tears the session down after a stream-level error
func (s *Session) fail(cause error) {
	s.teardown(cause)
}

func (s *Session) teardown(cause error) {
	s.closeOnce.Do(func() {
		s.setState(StateClosing)

		if cause != nil {
			Logger.Warningf("Session to %s failed: %v", s.config.Endpoint, cause)
		} else {
			Logger.Infof("Closing session to %s", s.config.Endpoint)
		}

		// Closing the connection unblocks the read pump
		s.conn.Close()

		if n := s.pending.failAll(common.ErrConnectionClosed); n > 0 {
			Logger.Infof("Failed %d pending request(s) on teardown", n)
		}

		s.setState(StateClosed)
		close(s.done)
	})
}

// Done is closed once the session has reached the Closed state
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// PendingCount returns the number of requests currently in flight
func (s *Session) PendingCount() int {
	return s.pending.size()
}
