// Package input reads lines of sentence text for the LFG REPL, either
// directly from any io.Reader or interactively via GNU readline when
// attached to a real terminal. Grounded on the teacher's own
// input.DirectCommandReader/InteractiveCommandReader pair, generalized from
// "read a game command" to "read a line of text to parse".
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Reader reads one line of non-blank input at a time.
type Reader interface {
	ReadLine() (string, error)
	AllowBlank(allow bool)
	Close() error
}

// DirectReader reads lines from any io.Reader, with no line editing or
// history. Suitable for piped input or non-TTY streams.
type DirectReader struct {
	r             *bufio.Reader
	blanksAllowed bool
}

// NewDirectReader wraps r for line-oriented reading.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{r: bufio.NewReader(r)}
}

// ReadLine reads the next non-blank line, or io.EOF at end of input.
func (dr *DirectReader) ReadLine() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = dr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" && dr.blanksAllowed {
			return line, nil
		}
	}
	return line, nil
}

// AllowBlank sets whether an empty line is returned as-is rather than
// skipped. Off by default.
func (dr *DirectReader) AllowBlank(allow bool) { dr.blanksAllowed = allow }

// Close is a no-op; DirectReader owns no resources of its own.
func (dr *DirectReader) Close() error { return nil }

// InteractiveReader reads lines from stdin via GNU readline, giving the
// user history and line editing. Must have Close called on it before
// disposal.
type InteractiveReader struct {
	rl            *readline.Instance
	blanksAllowed bool
	prompt        string
}

// NewInteractiveReader starts a readline session with the given prompt.
func NewInteractiveReader(prompt string) (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}
	return &InteractiveReader{rl: rl, prompt: prompt}, nil
}

// ReadLine reads the next non-blank line, or io.EOF at end of input.
func (ir *InteractiveReader) ReadLine() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = ir.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" && ir.blanksAllowed {
			return line, nil
		}
	}
	return line, nil
}

// AllowBlank sets whether an empty line is returned as-is rather than
// skipped. Off by default.
func (ir *InteractiveReader) AllowBlank(allow bool) { ir.blanksAllowed = allow }

// SetPrompt updates the readline prompt.
func (ir *InteractiveReader) SetPrompt(p string) {
	ir.prompt = p
	ir.rl.SetPrompt(p)
}

// GetPrompt returns the current prompt.
func (ir *InteractiveReader) GetPrompt() string { return ir.prompt }

// Close tears down the underlying readline session.
func (ir *InteractiveReader) Close() error { return ir.rl.Close() }
