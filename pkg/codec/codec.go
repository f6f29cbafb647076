// Package codec detects a source file's text encoding from its byte-order mark
// and round-trips the text through that same encoding.
package codec

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/text/encoding"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Encoding identifies a text encoding together with its BOM variant.
type Encoding int

const (
	UTF8 Encoding = iota // UTF-8 without BOM, the default
	UTF8BOM
	UTF16LE
	UTF16BE
	UTF32LE
	UTF32BE
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF32LE = []byte{0xFF, 0xFE, 0x00, 0x00}
	bomUTF32BE = []byte{0x00, 0x00, 0xFE, 0xFF}
)

// String returns a human-readable name for the encoding.
func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf-8"
	case UTF8BOM:
		return "utf-8-bom"
	case UTF16LE:
		return "utf-16le"
	case UTF16BE:
		return "utf-16be"
	case UTF32LE:
		return "utf-32le"
	case UTF32BE:
		return "utf-32be"
	default:
		return fmt.Sprintf("encoding(%d)", int(e))
	}
}

// BOM returns the byte-order mark written in front of the encoded body.
func (e Encoding) BOM() []byte {
	switch e {
	case UTF8BOM:
		return bomUTF8
	case UTF16LE:
		return bomUTF16LE
	case UTF16BE:
		return bomUTF16BE
	case UTF32LE:
		return bomUTF32LE
	case UTF32BE:
		return bomUTF32BE
	default:
		return nil
	}
}

// transcoder returns the x/text encoding for the body, or nil for UTF-8 which
// is passed through byte for byte.
func (e Encoding) transcoder() encoding.Encoding {
	switch e {
	case UTF16LE:
		return xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM)
	case UTF16BE:
		return xunicode.UTF16(xunicode.BigEndian, xunicode.IgnoreBOM)
	case UTF32LE:
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
	case UTF32BE:
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
	default:
		return nil
	}
}

// Detect sniffs the byte-order mark. UTF-32 LE is checked before UTF-16 LE
// because its mark starts with the UTF-16 LE mark.
func Detect(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return UTF8BOM
	case bytes.HasPrefix(data, bomUTF32LE):
		return UTF32LE
	case bytes.HasPrefix(data, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		return UTF16BE
	case bytes.HasPrefix(data, bomUTF32BE):
		return UTF32BE
	default:
		return UTF8
	}
}

// Decode strips exactly the detected BOM and decodes the remaining body.
func Decode(data []byte) (string, Encoding, error) {
	enc := Detect(data)
	body := data[len(enc.BOM()):]

	t := enc.transcoder()
	if t == nil {
		return string(body), enc, nil
	}

	decoded, err := t.NewDecoder().Bytes(body)
	if err != nil {
		return "", enc, fmt.Errorf("decode %s: %w", enc, err)
	}
	return string(decoded), enc, nil
}

// Encode writes the BOM of enc (if any) followed by the encoded text.
func Encode(text string, enc Encoding) ([]byte, error) {
	bom := enc.BOM()

	t := enc.transcoder()
	if t == nil {
		out := make([]byte, 0, len(bom)+len(text))
		out = append(out, bom...)
		return append(out, text...), nil
	}

	body, err := t.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", enc, err)
	}
	out := make([]byte, 0, len(bom)+len(body))
	out = append(out, bom...)
	return append(out, body...), nil
}

// ReadFile reads path and decodes it.
func ReadFile(path string) (string, Encoding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", UTF8, err
	}
	return Decode(data)
}
