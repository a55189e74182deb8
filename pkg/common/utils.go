package common

import (
	"bytes"
)

// ComposeString encodes s as UTF-8 and null-pads it to exactly size bytes.
func ComposeString(s string, size int) ([]byte, error) {
	if len(s) > size {
		return nil, Errorf(KindInvalidInput, "compose", ErrStringTooLong, len(s), size)
	}
	buffer := make([]byte, size)
	copy(buffer, s)
	return buffer, nil
}

// ParseString reads the field buffer[start:end] and strips its trailing null bytes.
func ParseString(buffer []byte, start, end int) string {
	if end > len(buffer) {
		end = len(buffer)
	}
	if start >= end {
		return ""
	}
	return string(bytes.TrimRight(buffer[start:end], "\x00"))
}
