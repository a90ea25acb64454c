package view

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	EncodingHex    = "hex"
	EncodingBase64 = "base64"
)

var ErrUnknownEncoding = errors.New("view: unknown input encoding")

// ParseInput turns textual input into raw bytes. Hex input may contain
// whitespace and a 0x prefix; base64 input may use the standard or URL
// alphabet, padded or not.
func ParseInput(raw, encoding string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingHex:
		return parseHex(raw)
	case EncodingBase64:
		return parseBase64(raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, encoding)
	}
}

func parseHex(raw string) ([]byte, error) {
	s := stripSpace(raw)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	out, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("view: invalid hex input: %w", err)
	}
	return out, nil
}

func parseBase64(raw string) ([]byte, error) {
	s := stripSpace(raw)
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		if out, err := enc.DecodeString(s); err == nil {
			return out, nil
		}
	}
	return nil, errors.New("view: invalid base64 input")
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
