// Package server exposes the LFG parsing pipeline over HTTP: POST a
// sentence to /parse and get back the F-structure(s) it solves to.
// Grounded on the teacher's own server package (chi router, the
// result/serr response helpers), stripped of everything that belonged
// to its session/auth/game-hosting surface since a parser has no
// notion of a logged-in user.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/dekarrin/lfgo/internal/lfg"
	"github.com/dekarrin/lfgo/internal/lfgfile"
	"github.com/dekarrin/lfgo/internal/version"
	"github.com/dekarrin/lfgo/server/result"
	"github.com/dekarrin/lfgo/server/serr"
	"github.com/go-chi/chi/v5"
)

// ParseRequest is the JSON body accepted by POST /parse.
type ParseRequest struct {
	Sentence string `json:"sentence"`
}

// ParseResponse is the JSON body returned by POST /parse. Results holds
// the String() rendering of each coherent-and-complete F-structure the
// sentence solves to; Ambiguous is true when there was more than one.
type ParseResponse struct {
	Sentence  string   `json:"sentence"`
	Results   []string `json:"results"`
	Ambiguous bool     `json:"ambiguous"`
}

// InfoResponse is the JSON body returned by GET /info.
type InfoResponse struct {
	Version string `json:"version"`
}

// Server parses sentences against a single loaded grammar and serves the
// results over HTTP.
type Server struct {
	router *chi.Mux
	driver *lfg.Driver
}

// New loads the grammar at grammarFilePath and returns a Server ready to
// have ServeForever called on it.
func New(grammarFilePath string) (*Server, error) {
	g, err := lfgfile.LoadFile(grammarFilePath)
	if err != nil {
		return nil, fmt.Errorf("loading grammar: %w", err)
	}

	srv := &Server{driver: lfg.NewDriver(g)}
	srv.router = chi.NewRouter()
	srv.routes()

	return srv, nil
}

func (srv *Server) routes() {
	srv.router.Post("/parse", endpoint(srv.handleParse))
	srv.router.Get("/info", endpoint(srv.handleInfo))
}

// ServeForever blocks, serving HTTP on addr (e.g. ":8080") until the
// listener fails.
func (srv *Server) ServeForever(addr string) error {
	return http.ListenAndServe(addr, srv.router)
}

func (srv *Server) handleParse(req *http.Request) result.Result {
	var parseReq ParseRequest
	if err := parseJSON(req, &parseReq); err != nil {
		return result.BadRequest(err.Error(), "decode /parse request: %v", err)
	}

	sentence := strings.TrimSpace(parseReq.Sentence)
	if sentence == "" {
		return result.BadRequest("sentence must not be empty", "empty sentence in /parse request")
	}

	fvs, err := srv.driver.Parse(sentence)
	if err != nil {
		return result.BadRequest(err.Error(), "grammar error parsing %q: %v", sentence, err)
	}
	if len(fvs) == 0 {
		reason := srv.driver.LastFailureReason()
		if reason == "" {
			reason = "no F-structure was coherent and complete"
		}
		return result.BadRequest(reason, "no parse for %q: %s", sentence, reason)
	}

	strs := make([]string, len(fvs))
	for i, fv := range fvs {
		strs[i] = fv.String()
	}

	resp := ParseResponse{Sentence: sentence, Results: strs, Ambiguous: len(strs) > 1}
	return result.OK(resp, "parsed %q into %d result(s)", sentence, len(strs))
}

func (srv *Server) handleInfo(req *http.Request) result.Result {
	return result.OK(InfoResponse{Version: version.Current}, "served version info")
}

// endpointFunc is the shape of a handler that produces a result.Result
// instead of writing directly to the ResponseWriter.
type endpointFunc func(req *http.Request) result.Result

// endpoint adapts an endpointFunc to an http.HandlerFunc, recovering any
// panic into an HTTP-500 rather than letting it escape to the listener.
func endpoint(ep endpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer panicTo500(w)
		ep(req).WriteResponse(w)
	}
}

func panicTo500(w http.ResponseWriter) {
	if panicErr := recover(); panicErr != nil {
		errRes := result.InternalServerError("panic: %v\n%s", panicErr, string(debug.Stack()))
		errRes.WriteResponse(w)
	}
}

// v must be a pointer to a type.
func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(contentType), "application/json") {
		return serr.New("request content-type is not application/json", serr.ErrBadArgument)
	}

	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		return serr.New("malformed JSON in request", serr.ErrBodyUnmarshal)
	}
	return nil
}
