package lfg

import (
	"errors"
	"fmt"

	"github.com/dekarrin/lfgo/internal/ictiobus/lex"
	"github.com/dekarrin/lfgo/internal/ictiobus/parse"
	"github.com/dekarrin/lfgo/internal/ictiobus/types"
)

// Driver composes the external collaborators (tokenizer, CFG parser) and
// the core stages (annotation, f-description, solving) into the single
// end-to-end operation spec.md §2 describes: text in, F-structures out.
// Grounded on internal/ictiobus/ictiobus.go's Frontend[E].Analyze, which
// composes lex -> parse -> evaluate the same way this composes
// tokenize -> CFG-parse -> annotate -> solve.
type Driver struct {
	Grammar *Grammar

	lastFailure string
}

// NewDriver returns a Driver backed by g. It does not validate g; call
// ValidateGrammar(g) first if the grammar was built by hand rather than
// loaded through internal/lfgfile, which validates on load.
func NewDriver(g *Grammar) *Driver {
	return &Driver{Grammar: g}
}

// LastFailureReason describes why the most recent Parse/ParseTokens call
// returned an empty result set, for callers that want diagnostics without
// that information being part of the error-return contract (spec.md §7:
// parse-time failures are absorbed silently into an empty result, not
// surfaced as an error). Empty if the most recent call produced at least
// one F-structure, or if no call has been made yet.
func (d *Driver) LastFailureReason() string {
	return d.lastFailure
}

// Parse runs the full pipeline over input, returning every distinct
// F-structure that any parse tree of input, under any choice of
// annotations, can produce (spec.md §2). An empty result with a nil error means the input failed to
// parse at all, or parsed but no resulting description was coherent and
// complete; call LastFailureReason for which. A non-nil error indicates a
// malformed grammar, not a property of the input sentence.
func (d *Driver) Parse(input string) ([]*FValue, error) {
	toks := lex.Tokenize(input)
	return d.ParseTokens(toks)
}

// ParseTokens runs the pipeline starting from an already-tokenized input,
// for callers (tests, REPLs replaying a transcript) that want to bypass
// internal/ictiobus/lex.
func (d *Driver) ParseTokens(toks []types.Token) ([]*FValue, error) {
	d.lastFailure = ""

	cfg := d.Grammar.Compile()
	trees, err := parse.Parse(cfg, toks, d.Grammar.TerminalMatcher())
	if err != nil {
		var noParse *parse.NoParseError
		if errors.As(err, &noParse) {
			d.lastFailure = noParse.Error()
			return []*FValue{}, nil
		}
		return nil, fmt.Errorf("lfg: parse: %w", err)
	}

	var results []*FValue
	seen := map[string]bool{}
	for _, tree := range trees {
		for _, annotated := range Drain(Annotate(d.Grammar, tree)) {
			gen := NewIDGenerator()
			desc := BuildFDescription(gen, annotated)
			for _, fv := range Solve(desc) {
				key := fv.String()
				if seen[key] {
					continue
				}
				seen[key] = true
				results = append(results, fv)
			}
		}
	}
	if len(results) == 0 {
		d.lastFailure = "parsed, but no f-structure was coherent and complete"
	}
	return results, nil
}
