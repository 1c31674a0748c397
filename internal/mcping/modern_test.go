package mcping

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Drakiz3/ServerSeekerV2-1/internal/target"
	"github.com/Drakiz3/ServerSeekerV2-1/internal/varint"
)

// mockSLPServer simulates a modern Minecraft status server for one
// connection, grounded on the retrieved pack's mock-listener test style.
type mockSLPServer struct {
	listener net.Listener
	handle   func(conn net.Conn)
}

func newMockSLPServer(t *testing.T, handle func(conn net.Conn)) *mockSLPServer {
	t.Helper()
	l, err := net.Listen("tcp4", "127.0.0.1:0")
	require.NoError(t, err)
	s := &mockSLPServer{listener: l, handle: handle}
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		s.handle(conn)
	}()
	return s
}

func (s *mockSLPServer) target(t *testing.T) target.Target {
	t.Helper()
	_, portStr, err := net.SplitHostPort(s.listener.Addr().String())
	require.NoError(t, err)
	port := mustAtoi(t, portStr)
	tg, err := target.New(net.ParseIP("127.0.0.1"), uint16(port))
	require.NoError(t, err)
	return tg
}

func mustAtoi(t *testing.T, s string) int {
	t.Helper()
	n := 0
	for _, c := range s {
		require.True(t, c >= '0' && c <= '9')
		n = n*10 + int(c-'0')
	}
	return n
}

func writeStatusResponse(t *testing.T, conn net.Conn, body string) {
	t.Helper()
	payload := &bytes.Buffer{}
	require.NoError(t, varint.EncodeVarInt(payload, 0x00))
	require.NoError(t, varint.EncodeString(payload, body))
	require.NoError(t, varint.WritePacket(conn, payload.Bytes()))
}

func TestModernPingHappyPath(t *testing.T) {
	const statusJSON = `{"version":{"name":"Paper 1.20.4","protocol":765},"players":{"max":20,"online":3,"sample":[]},"description":{"text":"Hi"}}`

	server := newMockSLPServer(t, func(conn net.Conn) {
		// Handshake
		if _, err := readFramedPacket(conn); err != nil {
			return
		}
		// Status request
		if _, err := readFramedPacket(conn); err != nil {
			return
		}
		writeStatusResponse(t, conn, statusJSON)
	})
	defer server.listener.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := ModernPing(ctx, server.target(t))
	require.NoError(t, err)
	require.JSONEq(t, statusJSON, got)
}

func TestModernPingRejectsWrongPacketID(t *testing.T) {
	server := newMockSLPServer(t, func(conn net.Conn) {
		if _, err := readFramedPacket(conn); err != nil {
			return
		}
		if _, err := readFramedPacket(conn); err != nil {
			return
		}
		payload := &bytes.Buffer{}
		_ = varint.EncodeVarInt(payload, 0x01) // wrong packet id
		_ = varint.EncodeString(payload, "{}")
		_ = varint.WritePacket(conn, payload.Bytes())
	})
	defer server.listener.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := ModernPing(ctx, server.target(t))
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestModernPingRejectsOverCeilingLength(t *testing.T) {
	server := newMockSLPServer(t, func(conn net.Conn) {
		if _, err := readFramedPacket(conn); err != nil {
			return
		}
		if _, err := readFramedPacket(conn); err != nil {
			return
		}
		payload := &bytes.Buffer{}
		_ = varint.EncodeVarInt(payload, 0x00)
		_ = varint.EncodeVarInt(payload, int32(MaxStatusJSONLen+1))
		_ = varint.WritePacket(conn, payload.Bytes())
	})
	defer server.listener.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := ModernPing(ctx, server.target(t))
	require.ErrorIs(t, err, ErrMalformedResponse)
}

// readFramedPacket drains one varint-length-prefixed packet from conn
// without interpreting it, mirroring a server that doesn't care about the
// handshake/status-request body contents.
func readFramedPacket(conn net.Conn) ([]byte, error) {
	length, _, err := varint.DecodeVarInt(conn)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	_, err = conn.Read(buf)
	return buf, err
}
