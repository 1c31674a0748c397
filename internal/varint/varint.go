// Package varint implements the length-prefixed variable-length integer and
// string framing used by the Minecraft Server List Ping wire protocol.
package varint

import (
	"fmt"
	"io"
)

// MaxVarIntBytes is the maximum number of bytes a 32-bit varint can occupy.
const MaxVarIntBytes = 5

// EncodeVarInt writes value to w using the protocol's base-128 encoding:
// 7 bits of payload per byte, LSB first, continuation bit set on every byte
// but the last.
func EncodeVarInt(w io.Writer, value int32) error {
	uv := uint32(value)
	for {
		if uv&^uint32(0x7F) == 0 {
			_, err := w.Write([]byte{byte(uv)})
			return err
		}
		if _, err := w.Write([]byte{byte(uv&0x7F) | 0x80}); err != nil {
			return err
		}
		uv >>= 7
	}
}

// DecodeVarInt reads a varint from r, returning the decoded value and the
// number of bytes consumed. It rejects encodings longer than MaxVarIntBytes.
func DecodeVarInt(r io.Reader) (int32, int, error) {
	var result int32
	var read int
	var b [1]byte
	for {
		if read >= MaxVarIntBytes {
			return 0, read, fmt.Errorf("varint: value exceeds %d bytes", MaxVarIntBytes)
		}
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, read, err
		}
		result |= int32(b[0]&0x7F) << (7 * read)
		read++
		if b[0]&0x80 == 0 {
			break
		}
	}
	return result, read, nil
}

// EncodeString writes a length-prefixed UTF-8 string: varint(byte length)
// followed by the raw bytes.
func EncodeString(w io.Writer, s string) error {
	if err := EncodeVarInt(w, int32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// DecodeString reads a length-prefixed string from r. maxLen bounds the
// declared length before any allocation happens; a declared length beyond
// maxLen is rejected without being read. The returned buffer is sized from
// the verified length, never from raw attacker-controlled input.
func DecodeString(r io.Reader, maxLen int) (string, error) {
	length, _, err := DecodeVarInt(r)
	if err != nil {
		return "", err
	}
	if length < 0 || int(length) > maxLen {
		return "", fmt.Errorf("varint: declared string length %d exceeds ceiling %d", length, maxLen)
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// WritePacket frames payload as a Minecraft protocol packet: a varint body
// length followed by the body itself. The body is expected to already begin
// with its own packet-id varint.
func WritePacket(w io.Writer, payload []byte) error {
	if err := EncodeVarInt(w, int32(len(payload))); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}
