// Package utils provides small helpers shared by the blob-manager packages
// that do not belong to a single domain package.
//
// # Text decoding
//
// DecodeText turns downloaded blob bytes into a string using a named
// character encoding. Names are resolved through the WHATWG label index
// first and the IANA registry second, so "utf-8", "latin1", "iso-8859-1",
// "windows-1252" and "shift_jis" all work. The empty name means UTF-8.
//
// UTF-8 is validated strictly: invalid sequences fail with
// storage.ErrDecoding instead of being replaced.
package utils
