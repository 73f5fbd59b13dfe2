/*
Lfgi starts an interactive LFGO parsing session.

It reads in a grammar file and starts an interactive prompt, printing the
F-structures of each sentence typed in until input ends or the "QUIT" line
is entered.

Usage:

	lfgi [flags]

The flags are:

	-v, --version
		Give the current version of LFGO and then exit.

	-g, --grammar FILE
		Use the provided LFGO grammar TOML file. Defaults to the file
		"grammar.lfg.toml" in the current working directory.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading input even if launched in a tty
		with stdin and stdout.

	-c, --sentence SENTENCES
		Immediately parse the given sentence(s) at start. Can be multiple
		sentences separated by the ";" character.
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dekarrin/lfgo"
	"github.com/dekarrin/lfgo/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitParseError indicates an unsuccessful program execution due to a
	// problem during a parse session.
	ExitParseError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue initializing the engine.
	ExitInitError
)

var (
	returnCode  int     = ExitSuccess
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	grammarFile *string = pflag.StringP("grammar", "g", "grammar.lfg.toml", "The LFGO grammar TOML file that defines the grammar to parse with")
	forceDirect *bool   = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
	startSent   *string = pflag.StringP("sentence", "c", "", "Parse the given sentence(s) immediately at start and leave the interpreter open")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	var startSentences []string
	if *startSent != "" {
		startSentences = strings.Split(*startSent, ";")
	}

	eng, initErr := lfgo.New(os.Stdin, os.Stdout, *grammarFile, *forceDirect)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer eng.Close()

	if err := eng.RunUntilQuit(startSentences); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitParseError
		return
	}
}
