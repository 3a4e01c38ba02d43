package codec

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/ckv-io/ckv/rpc/command"
	"github.com/ckv-io/ckv/rpc/common"
	"github.com/ckv-io/ckv/rpc/route"
)

func mustCommand(t *testing.T, name string, args ...string) command.Command {
	t.Helper()
	cmd, err := command.New(name, args...)
	if err != nil {
		t.Fatalf("command.New(%q) failed: %v", name, err)
	}
	return cmd
}

// TestRequestRoundTrip tests encode/decode for requests with every
// directive shape and with an absent directive
func TestRequestRoundTrip(t *testing.T) {
	directives := []*route.Directive{
		nil,
		{Kind: route.KindAllPrimaries},
		{Kind: route.KindAllNodes},
		{Kind: route.KindRandomNode},
		{Kind: route.KindSlotKey, SlotType: route.Primary, SlotKey: "user:42"},
		{Kind: route.KindSlotKey, SlotType: route.Replica, SlotKey: "user:42"},
		{Kind: route.KindSlotID, SlotType: route.Primary, SlotID: 1234},
		{Kind: route.KindSlotID, SlotType: route.Replica, SlotID: 1234},
	}

	cmd := mustCommand(t, "CLIENT", "LIST", "TYPE", "PUBSUB")

	for i, dir := range directives {
		payload, err := EncodeRequest(uint64(i)+7, cmd, dir)
		if err != nil {
			t.Fatalf("EncodeRequest with directive %v failed: %v", dir, err)
		}

		req, err := DecodeRequest(payload)
		if err != nil {
			t.Fatalf("DecodeRequest with directive %v failed: %v", dir, err)
		}

		if req.ID != uint64(i)+7 {
			t.Errorf("ID mismatch: expected %d, got %d", i+7, req.ID)
		}
		if req.Cmd.Name() != cmd.Name() || !reflect.DeepEqual(req.Cmd.Args(), cmd.Args()) {
			t.Errorf("command mismatch: expected %v, got %v", cmd, req.Cmd)
		}
		if !reflect.DeepEqual(req.Route, dir) {
			t.Errorf("directive mismatch:\nexpected: %+v\ngot:      %+v", dir, req.Route)
		}
	}
}

// TestAbsentRouteNotEncoded tests that an absent directive leaves no trace
// in the encoded frame (no sentinel "default" variant)
func TestAbsentRouteNotEncoded(t *testing.T) {
	cmd := mustCommand(t, "GET", "foo")

	payload, err := EncodeRequest(1, cmd, nil)
	if err != nil {
		t.Fatalf("EncodeRequest failed: %v", err)
	}

	// flags byte sits after the type byte and the 8-byte id
	if payload[9]&hasRoute != 0 {
		t.Error("absent route set the route flag")
	}

	req, err := DecodeRequest(payload)
	if err != nil {
		t.Fatalf("DecodeRequest failed: %v", err)
	}
	if req.Route != nil {
		t.Errorf("absent route decoded as %+v", req.Route)
	}
}

// TestSlotDirectiveBytesDistinct tests that the four slot directive shapes
// stay pairwise distinct after encoding
func TestSlotDirectiveBytesDistinct(t *testing.T) {
	cmd := mustCommand(t, "GET", "user:42")

	encoded := make([][]byte, 0, 4)
	for _, dir := range []*route.Directive{
		{Kind: route.KindSlotKey, SlotType: route.Primary, SlotKey: "user:42"},
		{Kind: route.KindSlotKey, SlotType: route.Replica, SlotKey: "user:42"},
		{Kind: route.KindSlotID, SlotType: route.Primary, SlotID: 42},
		{Kind: route.KindSlotID, SlotType: route.Replica, SlotID: 42},
	} {
		payload, err := EncodeRequest(1, cmd, dir)
		if err != nil {
			t.Fatalf("EncodeRequest failed: %v", err)
		}
		encoded = append(encoded, payload)
	}

	for i := 0; i < len(encoded); i++ {
		for j := i + 1; j < len(encoded); j++ {
			if bytes.Equal(encoded[i], encoded[j]) {
				t.Errorf("encodings %d and %d identical", i, j)
			}
		}
	}
}

// TestResponseRoundTrip tests success and error outcome payloads
func TestResponseRoundTrip(t *testing.T) {
	// Success outcome
	payload := EncodeResponse(42, []byte("bar"))
	resp, err := DecodeResponse(payload)
	if err != nil {
		t.Fatalf("DecodeResponse failed: %v", err)
	}
	if resp.ID != 42 || resp.Err != nil || string(resp.Payload) != "bar" {
		t.Errorf("unexpected response: %+v", resp)
	}

	// Empty success payload
	payload = EncodeResponse(43, nil)
	resp, err = DecodeResponse(payload)
	if err != nil {
		t.Fatalf("DecodeResponse failed: %v", err)
	}
	if resp.ID != 43 || resp.Err != nil || len(resp.Payload) != 0 {
		t.Errorf("unexpected response: %+v", resp)
	}

	// Error outcome
	payload = EncodeErrorResponse(44, "WRONGTYPE", "operation against a key holding the wrong kind of value")
	resp, err = DecodeResponse(payload)
	if err != nil {
		t.Fatalf("DecodeResponse failed: %v", err)
	}
	if resp.ID != 44 || resp.Err == nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Err.Kind != "WRONGTYPE" || resp.Err.Message == "" {
		t.Errorf("unexpected remote error: %+v", resp.Err)
	}
}

// TestDecodeIncomplete tests that every strict prefix of a valid payload
// signals "need more bytes" instead of a hard error
func TestDecodeIncomplete(t *testing.T) {
	payload := EncodeResponse(42, []byte("bar"))

	for cut := 0; cut < len(payload); cut++ {
		_, err := DecodeResponse(payload[:cut])
		if !errors.Is(err, ErrIncomplete) {
			t.Errorf("DecodeResponse of %d/%d bytes: expected ErrIncomplete, got %v", cut, len(payload), err)
		}
	}

	reqPayload, err := EncodeRequest(1, mustCommand(t, "GET", "foo"),
		&route.Directive{Kind: route.KindSlotKey, SlotType: route.Primary, SlotKey: "foo"})
	if err != nil {
		t.Fatalf("EncodeRequest failed: %v", err)
	}
	for cut := 0; cut < len(reqPayload); cut++ {
		_, err := DecodeRequest(reqPayload[:cut])
		if !errors.Is(err, ErrIncomplete) {
			t.Errorf("DecodeRequest of %d/%d bytes: expected ErrIncomplete, got %v", cut, len(reqPayload), err)
		}
	}
}

// TestDecodeCorrupt tests that malformed complete payloads fail hard
func TestDecodeCorrupt(t *testing.T) {
	// Wrong frame type
	payload := EncodeResponse(1, []byte("x"))
	payload[0] = byte(FrameCommand)
	if _, err := DecodeResponse(payload); err == nil || errors.Is(err, ErrIncomplete) {
		t.Errorf("wrong frame type: expected hard error, got %v", err)
	}

	// Unknown status byte
	payload = EncodeResponse(1, []byte("x"))
	payload[9] = 99
	if _, err := DecodeResponse(payload); err == nil || errors.Is(err, ErrIncomplete) {
		t.Errorf("unknown status: expected hard error, got %v", err)
	}

	// Unknown directive kind
	reqPayload, err := EncodeRequest(1, mustCommand(t, "GET", "foo"),
		&route.Directive{Kind: route.KindAllNodes})
	if err != nil {
		t.Fatalf("EncodeRequest failed: %v", err)
	}
	reqPayload[10] = 99 // directive kind byte
	if _, err := DecodeRequest(reqPayload); err == nil || errors.Is(err, ErrIncomplete) {
		t.Errorf("unknown directive kind: expected hard error, got %v", err)
	}
}

// TestEncodeRejectsMalformedInput tests EncodingError conditions
func TestEncodeRejectsMalformedInput(t *testing.T) {
	// Zero-value descriptor produced outside the builder
	var zero command.Command
	_, err := EncodeRequest(1, zero, nil)
	var encErr *common.EncodingError
	if !errors.As(err, &encErr) {
		t.Errorf("zero descriptor: expected *common.EncodingError, got %v", err)
	}

	// Directive with an unknown kind
	_, err = EncodeRequest(1, mustCommand(t, "GET", "foo"), &route.Directive{Kind: route.DirectiveKind(99)})
	if !errors.As(err, &encErr) {
		t.Errorf("unknown directive kind: expected *common.EncodingError, got %v", err)
	}
}

// TestFrameRoundTrip tests the length-delimited frame helpers
func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	payloads := [][]byte{
		[]byte("first"),
		{},
		[]byte("third frame with more bytes"),
	}
	for _, p := range payloads {
		if err := WriteFrame(&buf, p); err != nil {
			t.Fatalf("WriteFrame failed: %v", err)
		}
	}

	// Reuse one read buffer across frames, as the read pump does
	readBuf := make([]byte, 8)
	for i, want := range payloads {
		got, err := ReadFrame(&buf, readBuf)
		if err != nil {
			t.Fatalf("ReadFrame %d failed: %v", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("frame %d mismatch: expected %q, got %q", i, want, got)
		}
	}
}

// TestSplitFrame tests frame extraction from a caller-managed buffer
func TestSplitFrame(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, []byte("hello")); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	if err := WriteFrame(&buf, []byte("world")); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	stream := buf.Bytes()

	// Partial header and partial body both signal ErrIncomplete
	for cut := 0; cut < 9; cut++ {
		if _, _, err := SplitFrame(stream[:cut]); !errors.Is(err, ErrIncomplete) {
			t.Errorf("SplitFrame of %d bytes: expected ErrIncomplete, got %v", cut, err)
		}
	}

	payload, rest, err := SplitFrame(stream)
	if err != nil {
		t.Fatalf("SplitFrame failed: %v", err)
	}
	if string(payload) != "hello" {
		t.Errorf("first payload mismatch: %q", payload)
	}

	payload, rest, err = SplitFrame(rest)
	if err != nil {
		t.Fatalf("SplitFrame failed on rest: %v", err)
	}
	if string(payload) != "world" || len(rest) != 0 {
		t.Errorf("second payload mismatch: %q (rest %d bytes)", payload, len(rest))
	}
}

// TestBootstrapRoundTrip tests the handshake message codec
func TestBootstrapRoundTrip(t *testing.T) {
	testCases := []struct {
		desc        string
		config      common.ClientConfig
		clusterMode bool
	}{
		{
			desc:        "plain standard client",
			config:      common.ClientConfig{Endpoint: "localhost:6380"},
			clusterMode: false,
		},
		{
			desc: "cluster client with auth and tls",
			config: common.ClientConfig{
				Endpoint:   "localhost:6380",
				Username:   "app",
				Password:   "secret",
				UseTLS:     true,
				DatabaseID: 3,
			},
			clusterMode: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			payload := EncodeBootstrap(tc.config, tc.clusterMode)

			b, err := DecodeBootstrap(payload)
			if err != nil {
				t.Fatalf("DecodeBootstrap failed: %v", err)
			}

			if b.ClusterMode != tc.clusterMode {
				t.Errorf("ClusterMode mismatch: expected %t, got %t", tc.clusterMode, b.ClusterMode)
			}
			if b.Username != tc.config.Username || b.Password != tc.config.Password {
				t.Errorf("auth mismatch: %+v", b)
			}
			if b.UseTLS != tc.config.UseTLS || b.DatabaseID != tc.config.DatabaseID {
				t.Errorf("options mismatch: %+v", b)
			}
		})
	}
}
