package mcping

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/Drakiz3/ServerSeekerV2-1/internal/target"
)

const maxLegacyResponseBytes = 1024

// legacyStatusJSON is the synthetic status document the legacy paths
// produce, shaped like the modern status response so internal/status can
// parse either uniformly.
type legacyStatusJSON struct {
	Version struct {
		Name     string `json:"name"`
		Protocol int32  `json:"protocol"`
	} `json:"version"`
	Players struct {
		Max    int32 `json:"max"`
		Online int32 `json:"online"`
	} `json:"players"`
	Description string `json:"description"`
}

// LegacyPing performs the pre-1.7 "0xFE 0x01" server-list-ping probe
// against target over a fresh TCP connection and returns a synthesized
// status JSON document equivalent to the modern shape.
func LegacyPing(ctx context.Context, tgt target.Target) (string, error) {
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

	if _, err := conn.Write([]byte{0xFE, 0x01}); err != nil {
		return "", err
	}

	buf := make([]byte, maxLegacyResponseBytes)
	n, err := conn.Read(buf)
	if err != nil {
		return "", err
	}
	return parseLegacyResponse(buf[:n])
}

func parseLegacyResponse(buf []byte) (string, error) {
	if len(buf) < 3 {
		return "", fmt.Errorf("%w: legacy response too short (%d bytes)", ErrMalformedResponse, len(buf))
	}
	if buf[0] != 0xFF {
		return "", fmt.Errorf("%w: expected server-kick packet 0xFF, got 0x%02x", ErrMalformedResponse, buf[0])
	}

	count := binary.BigEndian.Uint16(buf[1:3])
	byteLen := int(count) * 2
	if 3+byteLen > len(buf) {
		return "", fmt.Errorf("%w: declared utf16 length %d exceeds payload", ErrMalformedResponse, byteLen)
	}

	text, err := decodeUTF16BE(buf[3 : 3+byteLen])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if strings.HasPrefix(text, "§1\x00") {
		return synthesize16(text)
	}
	return synthesizePre16(text)
}

// synthesize16 handles the 1.6 format: exactly six "\0"-separated fields
// — §1, protocol, version, motd, online, max (Open Question 2: require
// exactly 6, not >= 6).
func synthesize16(text string) (string, error) {
	fields := strings.Split(text, "\x00")
	if len(fields) != 6 {
		return "", fmt.Errorf("%w: expected exactly 6 fields in 1.6 legacy response, got %d", ErrMalformedResponse, len(fields))
	}

	protocol, err := strconv.Atoi(fields[1])
	if err != nil {
		return "", fmt.Errorf("%w: invalid protocol field %q", ErrMalformedResponse, fields[1])
	}
	online, err := strconv.Atoi(fields[4])
	if err != nil {
		return "", fmt.Errorf("%w: invalid online-players field %q", ErrMalformedResponse, fields[4])
	}
	max, err := strconv.Atoi(fields[5])
	if err != nil {
		return "", fmt.Errorf("%w: invalid max-players field %q", ErrMalformedResponse, fields[5])
	}

	doc := legacyStatusJSON{}
	doc.Version.Name = fields[2]
	doc.Version.Protocol = int32(protocol)
	doc.Players.Online = int32(online)
	doc.Players.Max = int32(max)
	doc.Description = fields[3]

	out, err := json.Marshal(doc)
	return string(out), err
}

// synthesizePre16 handles the pre-1.6 format: motd, online, max joined by
// section signs.
func synthesizePre16(text string) (string, error) {
	parts := strings.Split(text, "§")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: expected exactly 3 fields in pre-1.6 legacy response, got %d", ErrMalformedResponse, len(parts))
	}

	online, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("%w: invalid online-players field %q", ErrMalformedResponse, parts[1])
	}
	max, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", fmt.Errorf("%w: invalid max-players field %q", ErrMalformedResponse, parts[2])
	}

	doc := legacyStatusJSON{}
	doc.Version.Name = "Legacy < 1.6"
	doc.Version.Protocol = 0
	doc.Players.Online = int32(online)
	doc.Players.Max = int32(max)
	doc.Description = parts[0]

	out, err := json.Marshal(doc)
	return string(out), err
}

func decodeUTF16BE(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", fmt.Errorf("odd utf16 byte length %d", len(b))
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = binary.BigEndian.Uint16(b[i*2 : i*2+2])
	}
	return string(utf16.Decode(units)), nil
}
