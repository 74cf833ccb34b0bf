package process

import (
	"bufio"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// splitLinesPreserveOrder splits decoded text on both LF and CRLF, skipping
// empty lines, matching the spec's "mixed line endings ... both recognised;
// empty lines are skipped".
func splitLinesPreserveOrder(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	raw := strings.Split(normalized, "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

func decodeLegacy(data []byte, enc Encoding) (string, error) {
	switch enc {
	case EncodingWindows1252:
		out, err := charmap.Windows1252.NewDecoder().Bytes(data)
		return string(out), err
	case EncodingIBM866:
		out, err := charmap.CodePage866.NewDecoder().Bytes(data)
		return string(out), err
	case EncodingUTF16LE:
		out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(data)
		return string(out), err
	default:
		return string(data), nil
	}
}

// streamLines spawns a goroutine that reads r, decoding according to plan,
// and sends complete lines on the returned channel (capacity 100, per
// SPEC_FULL.md §4.1). The channel is closed when r is exhausted.
func streamLines(r io.Reader, plan streamPlan) <-chan string {
	ch := make(chan string, 100)
	go func() {
		defer close(ch)

		switch plan.encoding {
		case EncodingUTF8, EncodingUnknown:
			scanner := bufio.NewScanner(r)
			scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			for scanner.Scan() {
				line := scanner.Text()
				if line == "" {
					continue
				}
				ch <- line
			}
		default:
			data, err := io.ReadAll(r)
			if err != nil {
				return
			}
			text, err := decodeLegacy(data, plan.encoding)
			if err != nil {
				return
			}
			for _, line := range splitLinesPreserveOrder(text) {
				ch <- line
			}
		}
	}()
	return ch
}

// pumpStream wires a stream according to its policy: ForwardToLog logs each
// line, Capture accumulates into a strings.Builder and returns the result,
// Discard/Inherit are handled by the caller at exec.Cmd construction time
// and never reach pumpStream.
func pumpStream(r io.Reader, plan streamPlan, log *logrus.Entry, label string) *string {
	var captured strings.Builder
	lines := streamLines(r, plan)
	for line := range lines {
		switch plan.policy {
		case Capture:
			captured.WriteString(line)
			captured.WriteByte('\n')
		case ForwardToLog:
			log.Infof("%s: %s", label, line)
		}
	}
	out := captured.String()
	return &out
}
