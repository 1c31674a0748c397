package mcping

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/Drakiz3/ServerSeekerV2-1/internal/target"
	"github.com/Drakiz3/ServerSeekerV2-1/internal/varint"
)

// protocolVersion is the 1.8 baseline handshake protocol number used for
// the status exchange; the server ignores it for status requests.
const protocolVersion = 47

const defaultAttemptTimeout = 5 * time.Second

// ModernPing performs the modern handshake/status exchange against target
// over a single fresh TCP connection and returns the raw status JSON.
func ModernPing(ctx context.Context, tgt target.Target) (string, error) {
	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp4", tgt.Addr())
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(defaultAttemptTimeout))
	}

	if err := writeHandshake(conn, tgt); err != nil {
		return "", err
	}
	if err := writeStatusRequest(conn); err != nil {
		return "", err
	}
	return readStatusResponse(conn)
}

func writeHandshake(w io.Writer, tgt target.Target) error {
	payload := &bytes.Buffer{}
	if err := varint.EncodeVarInt(payload, 0x00); err != nil {
		return err
	}
	if err := varint.EncodeVarInt(payload, protocolVersion); err != nil {
		return err
	}
	if err := varint.EncodeString(payload, tgt.IP().String()); err != nil {
		return err
	}
	if err := binary.Write(payload, binary.BigEndian, tgt.Port()); err != nil {
		return err
	}
	if err := varint.EncodeVarInt(payload, 0x01); err != nil {
		return err
	}
	return varint.WritePacket(w, payload.Bytes())
}

func writeStatusRequest(w io.Writer) error {
	payload := &bytes.Buffer{}
	if err := varint.EncodeVarInt(payload, 0x00); err != nil {
		return err
	}
	return varint.WritePacket(w, payload.Bytes())
}

// readStatusResponse implements the Status Response framing policy from
// spec.md §4.2: packet_length is read and discarded (never used for
// sizing); the packet id must be 0x00; the inner string_length is trusted
// but bounded by MaxStatusJSONLen before any allocation.
func readStatusResponse(r io.Reader) (string, error) {
	if _, _, err := varint.DecodeVarInt(r); err != nil {
		return "", fmt.Errorf("mcping: reading packet length: %w", err)
	}

	packetID, _, err := varint.DecodeVarInt(r)
	if err != nil {
		return "", fmt.Errorf("mcping: reading packet id: %w", err)
	}
	if packetID != 0x00 {
		return "", fmt.Errorf("%w: unexpected status packet id %d", ErrMalformedResponse, packetID)
	}

	json, err := varint.DecodeString(r, MaxStatusJSONLen)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return json, nil
}
