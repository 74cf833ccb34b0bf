// Package encoding exposes the legacy codepage decode/encode pair used
// outside the process package's stream pumps -- for instance when reading a
// tool's output file directly from disk instead of from a live pipe.
// Grounded on the same golang.org/x/text/encoding/charmap and
// golang.org/x/text/encoding/unicode stack internal/core/process uses for
// stream decoding.
package encoding

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Codepage identifies a supported legacy text encoding.
type Codepage int

const (
	UTF8 Codepage = iota
	Windows1252
	IBM866
	UTF16LE
)

func codec(cp Codepage) encoding.Encoding {
	switch cp {
	case Windows1252:
		return charmap.Windows1252
	case IBM866:
		return charmap.CodePage866
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	default:
		return encoding.Nop
	}
}

// Decode converts raw bytes in the given codepage into a UTF-8 Go string.
func Decode(data []byte, cp Codepage) (string, error) {
	out, err := codec(cp).NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Encode converts a UTF-8 Go string into raw bytes in the given codepage.
func Encode(text string, cp Codepage) ([]byte, error) {
	return codec(cp).NewEncoder().Bytes([]byte(text))
}
