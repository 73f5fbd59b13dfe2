// Package lfgo ties the grammar loader, the core parsing pipeline, and a
// line-at-a-time REPL together into the thing an interactive session or a
// one-shot CLI invocation actually drives. Grounded on the teacher's own
// top-level tunaq package (Engine/New/RunUntilQuit), generalized from
// "advance a game one command at a time" to "parse one sentence at a time
// and print its F-structures".
package lfgo

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dekarrin/lfgo/internal/input"
	"github.com/dekarrin/lfgo/internal/lfg"
	"github.com/dekarrin/lfgo/internal/lfgfile"
	"github.com/dekarrin/rosed"
)

const consoleOutputWidth = 80

// Engine reads sentences from an input stream and prints their F-structures
// to an output stream until the input is exhausted or a "QUIT" line is read.
type Engine struct {
	driver      *lfg.Driver
	in          input.Reader
	out         *bufio.Writer
	forceDirect bool
	running     bool
}

// New loads the grammar at grammarFilePath and returns an Engine ready to
// read from inputStream and write to outputStream.
//
// If inputStream is nil, stdin is used. If outputStream is nil, stdout is
// used. Interactive (readline-backed) input is only used when attached to
// stdin/stdout and forceDirectInput is false.
func New(inputStream io.Reader, outputStream io.Writer, grammarFilePath string, forceDirectInput bool) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	g, err := lfgfile.LoadFile(grammarFilePath)
	if err != nil {
		return nil, fmt.Errorf("loading grammar: %w", err)
	}

	eng := &Engine{
		driver:      lfg.NewDriver(g),
		out:         bufio.NewWriter(outputStream),
		forceDirect: forceDirectInput,
	}

	useReadline := !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout
	if useReadline {
		eng.in, err = input.NewInteractiveReader("> ")
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = input.NewDirectReader(inputStream)
	}

	return eng, nil
}

// Close tears down any resources the Engine holds (readline, if in use).
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running engine")
	}
	if err := eng.in.Close(); err != nil {
		return fmt.Errorf("close input reader: %w", err)
	}
	return nil
}

// RunUntilQuit reads sentences one line at a time, printing each one's
// F-structures, until input is exhausted or a line reading exactly "QUIT"
// (case-insensitive) is read. startSentences, if non-empty, are parsed
// immediately before the REPL starts reading further input.
func (eng *Engine) RunUntilQuit(startSentences []string) error {
	introMsg := "LFGO interactive session\n"
	if eng.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "========================\n\n"
	if err := eng.writeString(introMsg); err != nil {
		return err
	}

	eng.running = true
	defer func() { eng.running = false }()

	for _, s := range startSentences {
		if err := eng.parseAndPrint(s); err != nil {
			return err
		}
	}

	for eng.running {
		line, err := eng.in.ReadLine()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("read input: %w", err)
		}

		if isQuit(line) {
			eng.running = false
			break
		}

		if err := eng.parseAndPrint(line); err != nil {
			return err
		}
	}

	return eng.writeString("Goodbye\n")
}

func isQuit(line string) bool {
	return len(line) == 4 &&
		(line[0] == 'Q' || line[0] == 'q') &&
		(line[1] == 'U' || line[1] == 'u') &&
		(line[2] == 'I' || line[2] == 'i') &&
		(line[3] == 'T' || line[3] == 't')
}

func (eng *Engine) parseAndPrint(sentence string) error {
	results, err := eng.driver.Parse(sentence)
	if err != nil {
		msg := rosed.Edit(fmt.Sprintf("no parse: %s", err.Error())).Wrap(consoleOutputWidth).String()
		return eng.writeString(msg + "\n")
	}
	if len(results) == 0 {
		reason := eng.driver.LastFailureReason()
		if reason == "" {
			reason = "no F-structure was coherent and complete"
		}
		msg := rosed.Edit("no parse: " + reason).Wrap(consoleOutputWidth).String()
		return eng.writeString(msg + "\n")
	}

	for i, fv := range results {
		header := fmt.Sprintf("--- result %d of %d ---", i+1, len(results))
		if err := eng.writeString(header + "\n" + fv.String() + "\n"); err != nil {
			return err
		}
	}
	return nil
}

func (eng *Engine) writeString(s string) error {
	if _, err := eng.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	return eng.out.Flush()
}
