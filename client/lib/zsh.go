package lib

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/zshtools/z2f/client/data"
)

// 512KB ought to be enough for any reasonable cmd. zsh itself happily writes
// history lines far longer than bufio.Scanner's default 64KB limit.
var maxSupportedLineLength = 512_000

// zsh's EXTENDED_HISTORY format prefixes each record with ": <start>:<duration>;".
var zshMetadataRegex = regexp.MustCompile(`^: (\d+):(\d+);(.*)$`)

// zsh stores bytes in the 0x80-0x9f range (and the meta character itself) as
// 0x83 followed by the byte XORed with 0x20.
const zshMetaChar = 0x83

// MalformedRecordError means the source bytes violate the zsh history
// grammar. It is terminal for the whole conversion: emitting a best-effort
// fish file from a corrupt source would silently lose history.
type MalformedRecordError struct {
	// Line is the 1-based physical line number at which parsing failed.
	Line   int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed zsh history record at line %d: %s", e.Line, e.Reason)
}

// ParseZshHistory parses the contents of a .zsh_history file into entries in
// file order (oldest first). Records may or may not carry an EXTENDED_HISTORY
// timestamp prefix, may span multiple physical lines via trailing-backslash
// continuations, and may contain metafied bytes; all three are decoded here
// so that entries hold the literal command text.
func ParseZshHistory(r io.Reader) ([]data.HistoryEntry, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, maxSupportedLineLength)
	scanner.Buffer(buf, maxSupportedLineLength)

	entries := make([]data.HistoryEntry, 0)
	lineNum := 0
	var cmd strings.Builder
	var when *int64
	inContinuation := false
	for scanner.Scan() {
		lineNum++
		line, err := unmetafy(scanner.Bytes(), lineNum)
		if err != nil {
			return nil, err
		}

		var text string
		if inContinuation {
			text = line
		} else {
			when = nil
			if strings.HasPrefix(line, ": ") {
				matches := zshMetadataRegex.FindStringSubmatch(line)
				if matches == nil {
					return nil, &MalformedRecordError{lineNum, `expected metadata of the form ": <timestamp>:<duration>;<command>"`}
				}
				ts, err := strconv.ParseInt(matches[1], 10, 64)
				if err != nil {
					return nil, &MalformedRecordError{lineNum, fmt.Sprintf("timestamp %s is out of range", matches[1])}
				}
				when = &ts
				text = matches[3]
			} else {
				text = line
			}
		}

		body, continued := decodeLineEnding(text)
		cmd.WriteString(body)
		if continued {
			cmd.WriteByte('\n')
			inContinuation = true
			continue
		}
		inContinuation = false
		command := cmd.String()
		cmd.Reset()
		if command == "" {
			if when != nil {
				return nil, &MalformedRecordError{lineNum, "metadata line with no command"}
			}
			// zsh never writes blank lines, but hand-edited files often end with one
			continue
		}
		entries = append(entries, data.HistoryEntry{Command: command, When: when})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read zsh history: %w", err)
	}
	if inContinuation {
		return nil, &MalformedRecordError{lineNum, "line continuation at end of file"}
	}
	return entries, nil
}

// decodeLineEnding decodes the trailing backslash run of one physical line.
// An odd-length run means the record continues on the next line (the odd
// backslash escapes an embedded newline); the rest of the run decodes two
// backslashes to one, so commands that genuinely end in backslashes survive.
func decodeLineEnding(line string) (body string, continued bool) {
	n := 0
	for n < len(line) && line[len(line)-1-n] == '\\' {
		n++
	}
	body = line[:len(line)-n]
	if n%2 == 1 {
		return body + strings.Repeat(`\`, (n-1)/2), true
	}
	return body + strings.Repeat(`\`, n/2), false
}

// unmetafy reverses zsh's metafication of one physical line.
func unmetafy(line []byte, lineNum int) (string, error) {
	if bytes.IndexByte(line, zshMetaChar) == -1 {
		return string(line), nil
	}
	decoded := make([]byte, 0, len(line))
	for i := 0; i < len(line); i++ {
		if line[i] != zshMetaChar {
			decoded = append(decoded, line[i])
			continue
		}
		i++
		if i == len(line) {
			return "", &MalformedRecordError{lineNum, "meta character at end of line"}
		}
		decoded = append(decoded, line[i]^0x20)
	}
	return string(decoded), nil
}
