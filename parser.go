// parser.go — reader from tokens to the unified value tree.
//
// Both surface syntaxes land in the same Value space. A parenthesised list
// whose head is a special-form symbol becomes a *SpecialNode; any other list
// stays a VTList call form. An angle-bracket message send is folded into a
// *SendNode at read time: the elements after the receiver alternate between
// name parts (symbols or labels) and argument expressions, and the name parts
// concatenate into the canonical method name. `<p to: 5 do: f>` names
// "to:do:", `<1 + 2>` names "+:", `<v first>` names "first".
//
// Errors are *ParseError; an unexpected end of input sets Incomplete so the
// REPL can prompt for more.
package huckleberry

import "fmt"

// ParseError reports a reader failure. Line is 1-based, Col 0-based.
type ParseError struct {
	Line       int
	Col        int
	Msg        string
	Incomplete bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("SyntaxError at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// IsIncomplete reports whether err describes source that more input could
// complete, such as an unclosed bracket or an unterminated string.
func IsIncomplete(err error) bool {
	switch e := err.(type) {
	case *ParseError:
		return e.Incomplete
	case *LexError:
		return e.Incomplete
	}
	return false
}

// specialForms are the list heads the reader lifts into *SpecialNode.
var specialForms = map[string]bool{
	"def":       true,
	"var":       true,
	"set!":      true,
	"fn":        true,
	"if":        true,
	"defm":      true,
	"defmethod": true,
	"class":     true,
	"for-each":  true,
	"foreach":   true,
}

// Parser turns a token stream into top-level forms.
type Parser struct {
	tokens []Token
	cur    int
}

// ParseSource scans and parses a whole source string into top-level forms.
func ParseSource(src string) ([]Value, error) {
	tokens, err := Scan(src)
	if err != nil {
		return nil, err
	}
	return (&Parser{tokens: tokens}).parse()
}

func (p *Parser) parse() ([]Value, error) {
	var program []Value
	for !p.isAtEnd() {
		form, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		program = append(program, form)
	}
	return program, nil
}

func (p *Parser) peek() Token { return p.tokens[p.cur] }

func (p *Parser) advance() Token {
	tok := p.tokens[p.cur]
	if tok.Type != EOF {
		p.cur++
	}
	return tok
}

func (p *Parser) isAtEnd() bool { return p.peek().Type == EOF }

func (p *Parser) errAt(tok Token, format string, args ...interface{}) error {
	return &ParseError{Line: tok.Line, Col: tok.Col, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) errIncomplete(open Token, msg string) error {
	return &ParseError{Line: open.Line, Col: open.Col, Msg: msg, Incomplete: true}
}

func (p *Parser) parseExpression() (Value, error) {
	tok := p.peek()
	switch tok.Type {
	case LPAREN:
		return p.parseList(tok)
	case LANGLE:
		return p.parseSend(tok)
	case LSQUARE:
		elems, err := p.parseDelimited(tok, RSQUARE, "vector opened here was not closed")
		if err != nil {
			return Nil, err
		}
		return Vector(elems), nil
	case LCURLY:
		return p.parseMap(tok)
	case NUMBER:
		p.advance()
		return Number(tok.Literal.(float64)), nil
	case STRING:
		p.advance()
		return Str(tok.Literal.(string)), nil
	case BOOLEAN:
		p.advance()
		return Bool(tok.Literal.(bool)), nil
	case NIL:
		p.advance()
		return Nil, nil
	case SYMBOL:
		p.advance()
		return Symbol(tok.Literal.(string)), nil
	case KEYWORD:
		p.advance()
		return Keyword(tok.Literal.(string)), nil
	case LABEL:
		p.advance()
		return Label(tok.Literal.(string)), nil
	case AMP:
		p.advance()
		return Value{Tag: VTAmp}, nil
	case EOF:
		return Nil, p.errIncomplete(tok, "unexpected end of input")
	default:
		return Nil, p.errAt(tok, "unexpected token %q", tok.Lexeme)
	}
}

func (p *Parser) parseDelimited(open Token, closer TokenType, incompleteMsg string) ([]Value, error) {
	p.advance() // opener
	var elems []Value
	for {
		if p.isAtEnd() {
			return nil, p.errIncomplete(open, incompleteMsg)
		}
		if p.peek().Type == closer {
			p.advance()
			return elems, nil
		}
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
}

// parseList reads a parenthesised form. Special-form heads are recognised
// here so the evaluator never has to re-inspect raw symbols.
func (p *Parser) parseList(open Token) (Value, error) {
	elems, err := p.parseDelimited(open, RPAREN, "list opened here was not closed")
	if err != nil {
		return Nil, err
	}
	if len(elems) > 0 && elems[0].Tag == VTSymbol {
		if name := elems[0].Data.(string); specialForms[name] {
			return Value{Tag: VTSpecial, Data: &SpecialNode{
				Name: name,
				Args: elems[1:],
				Line: open.Line,
				Col:  open.Col + 1,
			}}, nil
		}
	}
	return List(elems), nil
}

// parseSend reads an angle-bracket send and folds the name parts into the
// canonical method name.
func (p *Parser) parseSend(open Token) (Value, error) {
	elems, err := p.parseDelimited(open, RANGLE, "message send opened here was not closed")
	if err != nil {
		return Nil, err
	}
	if len(elems) == 0 {
		return Nil, p.errAt(open, "a message send cannot be empty")
	}
	if len(elems) == 1 {
		return Nil, p.errAt(open, "a message send needs a method name after the receiver")
	}

	recv := elems[0]
	rest := elems[1:]

	// A single symbol after the receiver is a no-argument send.
	if len(rest) == 1 && rest[0].Tag == VTSymbol {
		return sendValue(recv, rest[0].Data.(string), nil, open), nil
	}

	var name string
	var args []Value
	for i := 0; i < len(rest); i += 2 {
		part := rest[i]
		var partName string
		switch part.Tag {
		case VTLabel, VTSymbol:
			partName = part.Data.(string)
		default:
			return Nil, p.errAt(open, "expected a method name part, got %s", TypeName(part))
		}
		if i+1 >= len(rest) {
			return Nil, p.errAt(open, "keyword label %s: is missing a value", partName)
		}
		name += partName + ":"
		args = append(args, rest[i+1])
	}
	return sendValue(recv, name, args, open), nil
}

func sendValue(recv Value, name string, args []Value, open Token) Value {
	return Value{Tag: VTSend, Data: &SendNode{
		Recv: recv,
		Name: name,
		Args: args,
		Line: open.Line,
		Col:  open.Col + 1,
	}}
}

// parseMap reads a curly-brace literal. The element count must be even;
// keys and values stay unevaluated until the form itself is evaluated.
func (p *Parser) parseMap(open Token) (Value, error) {
	elems, err := p.parseDelimited(open, RCURLY, "map opened here was not closed")
	if err != nil {
		return Nil, err
	}
	if len(elems)%2 != 0 {
		return Nil, p.errAt(open, "a map literal needs an even number of elements")
	}
	m := NewMapObject()
	for i := 0; i < len(elems); i += 2 {
		m.Set(elems[i], elems[i+1])
	}
	return MapVal(m), nil
}
