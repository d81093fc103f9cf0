// Package wire provides the low-level byte layout shared by the calendar
// date encodings: big-endian integers and length-prefixed strings. The
// wire format is deliberately independent of the in-memory field layout
// of the date types.
package wire

import (
	"encoding/binary"

	"almanac"
)

func corrupt(what string) error {
	return almanac.Errorf(almanac.InvalidDate, "corrupt date encoding: %s", what)
}

// AppendUint8 appends one byte.
func AppendUint8(b []byte, v uint8) []byte {
	return append(b, v)
}

// ReadUint8 consumes one byte.
func ReadUint8(b []byte) (uint8, []byte, error) {
	if len(b) < 1 {
		return 0, nil, corrupt("truncated byte")
	}
	return b[0], b[1:], nil
}

// AppendInt32 appends a big-endian signed 32-bit integer.
func AppendInt32(b []byte, v int32) []byte {
	return binary.BigEndian.AppendUint32(b, uint32(v))
}

// ReadInt32 consumes a big-endian signed 32-bit integer.
func ReadInt32(b []byte) (int32, []byte, error) {
	if len(b) < 4 {
		return 0, nil, corrupt("truncated int32")
	}
	return int32(binary.BigEndian.Uint32(b)), b[4:], nil
}

// AppendString appends a uint8 length prefix and the string bytes.
func AppendString(b []byte, s string) []byte {
	b = append(b, uint8(len(s)))
	return append(b, s...)
}

// ReadString consumes a length-prefixed string.
func ReadString(b []byte) (string, []byte, error) {
	if len(b) < 1 {
		return "", nil, corrupt("truncated string length")
	}
	n := int(b[0])
	if len(b) < 1+n {
		return "", nil, corrupt("truncated string")
	}
	return string(b[1 : 1+n]), b[1+n:], nil
}
