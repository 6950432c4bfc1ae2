// Package encoding normalizes uploaded text files to UTF-8 before
// parsing. Spreadsheet exports arrive in whatever encoding the source
// application favored, so nothing downstream should touch raw bytes.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader detects the encoding of the input and returns a reader
// that yields UTF-8.
//
// Detection order:
//  1. BOM (UTF-8 BOM stripped; UTF-16 LE/BE decoded)
//  2. Valid UTF-8 passes through unchanged
//  3. chardet heuristic for the common single-byte charsets
//  4. Windows-1252 fallback
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	// Peek enough bytes for BOM detection and charset heuristics.
	buf, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if rd, ok := bomReader(br, buf); ok {
		return rd, nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	return transform.NewReader(br, singleByteDecoder(buf)), nil
}

// bomReader handles the byte-order-mark cases; ok is false when no BOM
// is present.
func bomReader(br *bufio.Reader, buf []byte) (io.Reader, bool) {
	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		// Discard the 3-byte BOM; the rest is already UTF-8.
		_, _ = br.Discard(len(bomUTF8))
		return br, true
	case bytes.HasPrefix(buf, bomUTF16LE):
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), true
	case bytes.HasPrefix(buf, bomUTF16BE):
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), true
	}

	return nil, false
}

// singleByteDecoder picks a legacy charset decoder for non-UTF-8 input.
// Windows-1252 is a superset of Latin-1 over the printable range, so it
// doubles as the fallback when detection comes back empty-handed.
func singleByteDecoder(buf []byte) transform.Transformer {
	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err == nil {
		switch result.Charset {
		case "ISO-8859-1", "windows-1252":
			return charmap.Windows1252.NewDecoder()
		case "ISO-8859-15":
			return charmap.ISO8859_15.NewDecoder()
		case "ISO-8859-9":
			return charmap.ISO8859_9.NewDecoder()
		}
	}

	return charmap.Windows1252.NewDecoder()
}
