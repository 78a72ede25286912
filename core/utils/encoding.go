package utils

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"blob-manager/core/storage"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultEncoding is used when no encoding name is given.
const DefaultEncoding = "utf-8"

// asciiNames are decoded strictly; the WHATWG index maps them to windows-1252.
var asciiNames = map[string]bool{
	"ascii":          true,
	"us-ascii":       true,
	"us_ascii":       true,
	"646":            true,
	"iso646-us":      true,
	"ansi_x3.4-1968": true,
}

// DecodeText decodes data using the named character encoding. Bytes that
// are not valid in that encoding fail with storage.ErrDecoding.
func DecodeText(data []byte, name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch {
	case name == "" || name == "utf-8" || name == "utf8":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("invalid utf-8 content: %w", storage.ErrDecoding)
		}
		return string(data), nil
	case asciiNames[name]:
		if i := bytes.IndexFunc(data, func(r rune) bool { return r >= utf8.RuneSelf }); i >= 0 {
			return "", fmt.Errorf("invalid %s byte at offset %d: %w", name, i, storage.ErrDecoding)
		}
		return string(data), nil
	}

	enc, err := lookup(name)
	if err != nil {
		return "", err
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w: %w", name, storage.ErrDecoding, err)
	}

	// Decoders replace invalid input with U+FFFD. The output is only accepted
	// when it encodes back to the input, i.e. the input held a real U+FFFD.
	if bytes.ContainsRune(out, utf8.RuneError) {
		back, err := enc.NewEncoder().Bytes(out)
		if err != nil || !bytes.Equal(back, data) {
			return "", fmt.Errorf("invalid %s content: %w", name, storage.ErrDecoding)
		}
	}
	return string(out), nil
}

func lookup(name string) (encoding.Encoding, error) {
	if enc, err := htmlindex.Get(name); err == nil {
		return enc, nil
	}
	// ianaindex returns a nil encoding for registered but unsupported names.
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("unknown encoding %q: %w", name, storage.ErrDecoding)
}
