package tape

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/floatdesk/internal/geom"
)

// ParseError is a problem on one script line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string { return fmt.Sprintf("line %d: %s", e.Line, e.Msg) }

// Parser turns lexer tokens into commands, collecting every error instead of
// stopping at the first one.
type Parser struct {
	lexer  *Lexer
	errors []error
}

// NewParser returns a parser reading from l.
func NewParser(l *Lexer) *Parser { return &Parser{lexer: l} }

// Parse reads the whole script. Lines with errors are skipped; see Errors.
func (p *Parser) Parse() []Command {
	var cmds []Command
	for {
		line, tokens, eof := p.readLine()
		if len(tokens) > 0 {
			if cmd, err := parseLine(line, tokens); err != nil {
				p.errors = append(p.errors, err)
			} else {
				cmds = append(cmds, cmd)
			}
		}
		if eof {
			return cmds
		}
	}
}

// Errors returns the errors found by Parse.
func (p *Parser) Errors() []error { return p.errors }

// Err joins the errors found by Parse, or returns nil.
func (p *Parser) Err() error { return errors.Join(p.errors...) }

func (p *Parser) readLine() (int, []Token, bool) {
	var tokens []Token
	line := 0
	for {
		tok := p.lexer.Next()
		switch tok.Kind {
		case TokenEOF:
			return line, tokens, true
		case TokenNewline:
			if len(tokens) > 0 {
				return line, tokens, false
			}
		default:
			if len(tokens) == 0 {
				line = tok.Line
			}
			tokens = append(tokens, tok)
		}
	}
}

// Parse parses src and returns its commands, or every parse error joined.
func Parse(src string) ([]Command, error) {
	p := NewParser(New(src))
	cmds := p.Parse()
	return cmds, p.Err()
}

func parseLine(line int, tokens []Token) (Command, error) {
	fail := func(format string, args ...any) (Command, error) {
		return Command{}, &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
	}

	for _, t := range tokens {
		if t.Kind == TokenIllegal {
			return fail("%s", t.Literal)
		}
	}
	if tokens[0].Kind != TokenWord {
		return fail("expected a command, got %q", tokens[0].Literal)
	}
	typ, ok := lookupCommand(tokens[0].Literal)
	if !ok {
		return fail("unknown command %q", tokens[0].Literal)
	}

	args := make([]string, 0, len(tokens)-1)
	for _, t := range tokens[1:] {
		args = append(args, t.Literal)
	}
	if !arityOK(commandArity[typ], len(args)) {
		return fail("%s: wrong number of arguments (%d)", typ, len(args))
	}

	if err := checkArgs(typ, args); err != nil {
		return fail("%s: %v", typ, err)
	}
	return Command{Type: typ, Args: args, Line: line}, nil
}

func arityOK(accepted []int, n int) bool {
	for _, a := range accepted {
		if a == n || (a < 0 && n >= -a) {
			return true
		}
	}
	return false
}

func checkArgs(typ CommandType, args []string) error {
	ints := func(vals ...string) error {
		for _, v := range vals {
			if _, err := strconv.Atoi(v); err != nil {
				return fmt.Errorf("%q is not an integer", v)
			}
		}
		return nil
	}

	switch typ {
	case CommandTypeViewport, CommandTypeMove, CommandTypeUp:
		return ints(args...)
	case CommandTypeDrag, CommandTypeResize:
		return ints(args[1:]...)
	case CommandTypeExpectCount:
		return ints(args...)
	case CommandTypeSnap:
		side, err := geom.ParseSnapSide(args[1])
		if err != nil {
			return err
		}
		if side == geom.SnapNone {
			return fmt.Errorf("side must be left or right")
		}
	case CommandTypeSleep:
		if _, err := time.ParseDuration(args[0]); err != nil {
			return err
		}
	case CommandTypeExpect:
		for _, a := range args[1:] {
			if _, err := ParseAssertion(a); err != nil {
				return err
			}
		}
	}
	return nil
}

// Assertion is one key/op/value check of an Expect command.
type Assertion struct {
	Key   string
	Op    string // "=", "<" or ">"
	Value string
}

var assertionKeys = []string{
	"state", "snapped", "maximized", "minimized", "front",
	"x", "y", "width", "height", "z", "title",
}

var orderedKeys = []string{"x", "y", "width", "height", "z"}

// ParseAssertion parses key=value, key<value or key>value.
func ParseAssertion(s string) (Assertion, error) {
	i := strings.IndexAny(s, "=<>")
	if i <= 0 || i == len(s)-1 {
		return Assertion{}, fmt.Errorf("malformed assertion %q, want key=value", s)
	}
	a := Assertion{Key: strings.ToLower(s[:i]), Op: s[i : i+1], Value: s[i+1:]}
	if !slices.Contains(assertionKeys, a.Key) {
		return Assertion{}, fmt.Errorf("unknown assertion key %q", a.Key)
	}
	if a.Op != "=" && !slices.Contains(orderedKeys, a.Key) {
		return Assertion{}, fmt.Errorf("%s only supports =", a.Key)
	}
	return a, nil
}

func (a Assertion) String() string { return a.Key + a.Op + a.Value }
