/*
Lfgserver starts an LFGO parsing server and begins listening for new
connections.

Usage:

	lfgserver [flags]
	lfgserver [flags] -l [[ADDRESS]:PORT]

Once started, the server listens for HTTP requests and responds to them
using REST protocol. By default, it listens on localhost:8080. This can be
changed with the --listen/-l flag (or the LFGO_LISTEN_ADDRESS environment
variable). The flag argument must be either a full address with port, such
as "192.168.0.2:6001", or just the port preceeded by a colon, such as
":6001".

The flags are:

	-v, --version
		Give the current version of the LFGO server and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment
		variable LFGO_LISTEN_ADDRESS, and if that is not given, will default
		to localhost:8080.

	-g, --grammar FILE
		Use the provided LFGO grammar TOML file. If not given, will default
		to the value of environment variable LFGO_GRAMMAR, and if that is not
		given, will default to the file "grammar.lfg.toml" in the current
		working directory.
*/
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dekarrin/lfgo/internal/version"
	"github.com/dekarrin/lfgo/server"
	"github.com/spf13/pflag"
)

const (
	EnvListen  = "LFGO_LISTEN_ADDRESS"
	EnvGrammar = "LFGO_GRAMMAR"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of the LFGO server and then exit.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagGrammar = pflag.StringP("grammar", "g", "", "Use the given LFGO grammar TOML file.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	args := pflag.Args()
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	listenAddr := os.Getenv(EnvListen)
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	if listenAddr == "" {
		listenAddr = "localhost:8080"
	}
	if !strings.Contains(listenAddr, ":") {
		fmt.Fprintf(os.Stderr, "Listen address is not in ADDRESS:PORT or :PORT format.\nDo -h for help.\n")
		os.Exit(1)
	}
	if _, portStr, _ := strings.Cut(listenAddr, ":"); portStr != "" {
		if _, err := strconv.Atoi(portStr); err != nil {
			fmt.Fprintf(os.Stderr, "%q is not a valid port number.\nDo -h for help.\n", portStr)
			os.Exit(1)
		}
	}

	grammarFile := os.Getenv(EnvGrammar)
	if pflag.Lookup("grammar").Changed {
		grammarFile = *flagGrammar
	}
	if grammarFile == "" {
		grammarFile = "grammar.lfg.toml"
	}

	srv, err := server.New(grammarFile)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	log.Printf("DEBUG Server initialized with grammar %q", grammarFile)

	log.Printf("INFO  Starting LFGO server %s on %s...", version.Current, listenAddr)
	if err := srv.ServeForever(listenAddr); err != nil {
		log.Fatalf("FATAL server stopped: %s", err.Error())
	}
}
