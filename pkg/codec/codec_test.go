package codec

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Encoding
	}{
		{"utf-8 bom", []byte{0xEF, 0xBB, 0xBF, 'a'}, UTF8BOM},
		{"utf-32 le", []byte{0xFF, 0xFE, 0x00, 0x00, 'a', 0, 0, 0}, UTF32LE},
		{"utf-16 le", []byte{0xFF, 0xFE, 'a', 0}, UTF16LE},
		{"utf-16 be", []byte{0xFE, 0xFF, 0, 'a'}, UTF16BE},
		{"utf-32 be", []byte{0x00, 0x00, 0xFE, 0xFF, 0, 0, 0, 'a'}, UTF32BE},
		{"no bom", []byte("using System;"), UTF8},
		{"empty", nil, UTF8},
		{"short utf-8 bom prefix", []byte{0xEF, 0xBB}, UTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			req.Equal(tt.want, Detect(tt.data), "Detect(%v)", tt.data)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	text := "using System;\r\n\r\n// héllo wörld ✓ 𝄞\nclass C { }\n"

	for _, enc := range []Encoding{UTF8, UTF8BOM, UTF16LE, UTF16BE, UTF32LE, UTF32BE} {
		t.Run(enc.String(), func(t *testing.T) {
			req := require.New(t)

			encoded, err := Encode(text, enc)
			req.NoError(err)
			req.True(bytes.HasPrefix(encoded, enc.BOM()), "encoded text starts with the %s BOM", enc)
			req.Equal(len(enc.BOM()) > 0, enc != UTF8)
			req.Equal(enc, Detect(encoded))

			decoded, detected, err := Decode(encoded)
			req.NoError(err)
			req.Equal(enc, detected)
			req.Equal(text, decoded)

			again, err := Encode(decoded, detected)
			req.NoError(err)
			req.Equal(encoded, again, "re-encoding must be byte-identical")
		})
	}
}

func TestDecode_PreservesInvalidUTF8(t *testing.T) {
	req := require.New(t)
	data := []byte{'a', 0xC3, 0x28, 'b'}

	text, enc, err := Decode(data)
	req.NoError(err)
	req.Equal(UTF8, enc)

	out, err := Encode(text, enc)
	req.NoError(err)
	req.Equal(data, out)
}

func TestDecode_StripsOnlyBOM(t *testing.T) {
	req := require.New(t)
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("\uFEFFx")...)

	text, enc, err := Decode(data)
	req.NoError(err)
	req.Equal(UTF8BOM, enc)
	req.Equal("\uFEFFx", text)
}

func TestReadFile(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "a.cs")
	data, err := Encode("class C { }\n", UTF16BE)
	req.NoError(err)
	req.NoError(os.WriteFile(path, data, 0644))

	text, enc, err := ReadFile(path)
	req.NoError(err)
	req.Equal(UTF16BE, enc)
	req.Equal("class C { }\n", text)

	_, _, err = ReadFile(filepath.Join(t.TempDir(), "missing.cs"))
	req.Error(err)
}
