package dejson

import (
	"bytes"
	"strconv"
)

// parser drives the lexer and a root Visitor through exactly one JSON value.
// All of its state is scoped to one parse call.
type parser struct {
	lex      *lexer
	faults   Sink
	depth    int
	maxDepth int
}

func (p *parser) parse(root Visitor) error {
	if err := p.value(root); err != nil {
		return err
	}
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	if tok.kind != tokenEOF {
		return p.faults.FormatError(tok.line, tok.column, "unexpected trailing input")
	}
	return nil
}

func (p *parser) value(v Visitor) error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	return p.valueToken(tok, v)
}

func (p *parser) valueToken(tok token, v Visitor) error {
	switch tok.kind {
	case tokenNull:
		return v.Null()
	case tokenTrue:
		return v.Bool(true)
	case tokenFalse:
		return v.Bool(false)
	case tokenString:
		return v.String(tok.str)
	case tokenNumber:
		return p.number(tok, v)
	case tokenBeginArray:
		return p.sequence(tok, v)
	case tokenBeginObject:
		return p.object(tok, v)
	case tokenEOF:
		return p.faults.FormatError(tok.line, tok.column, "unexpected end of input")
	default:
		return p.faults.FormatError(tok.line, tok.column, "unexpected token")
	}
}

func (p *parser) number(tok token, v Visitor) error {
	raw := string(tok.raw)
	if bytes.ContainsAny(tok.raw, ".eE") {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			// The grammar is already validated, so this is a range failure.
			return p.faults.Unexpected("number out of range")
		}
		return v.Float(f)
	}
	if raw[0] == '-' {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return v.Int(n)
		}
	} else {
		if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
			return v.Uint(n)
		}
	}
	// Integer literal beyond 64 bits falls back to the float callback.
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return p.faults.Unexpected("number out of range")
	}
	return v.Float(f)
}

func (p *parser) descend(tok token) error {
	if p.depth >= p.maxDepth {
		return p.faults.FormatError(tok.line, tok.column, "maximum nesting depth exceeded")
	}
	p.depth++
	return nil
}

func (p *parser) sequence(open token, v Visitor) error {
	if err := p.descend(open); err != nil {
		return err
	}
	defer func() { p.depth-- }()
	seq, err := v.Seq()
	if err != nil {
		return err
	}
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	if tok.kind == tokenEndArray {
		return seq.Finish()
	}
	for {
		element, err := seq.Element()
		if err != nil {
			return err
		}
		if err := p.valueToken(tok, element); err != nil {
			return err
		}
		sep, err := p.lex.next()
		if err != nil {
			return err
		}
		switch sep.kind {
		case tokenEndArray:
			return seq.Finish()
		case tokenComma:
			if tok, err = p.lex.next(); err != nil {
				return err
			}
		default:
			return p.faults.FormatError(sep.line, sep.column, "expected ',' or ']'")
		}
	}
}

func (p *parser) object(open token, v Visitor) error {
	if err := p.descend(open); err != nil {
		return err
	}
	defer func() { p.depth-- }()
	m, err := v.Map()
	if err != nil {
		return err
	}
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	if tok.kind == tokenEndObject {
		return m.Finish()
	}
	for {
		if tok.kind != tokenString {
			return p.faults.FormatError(tok.line, tok.column, "expected object key")
		}
		colon, err := p.lex.next()
		if err != nil {
			return err
		}
		if colon.kind != tokenColon {
			return p.faults.FormatError(colon.line, colon.column, "expected ':'")
		}
		value, err := m.Key(tok.str)
		if err != nil {
			return err
		}
		if err := p.value(value); err != nil {
			return err
		}
		sep, err := p.lex.next()
		if err != nil {
			return err
		}
		switch sep.kind {
		case tokenEndObject:
			return m.Finish()
		case tokenComma:
			if tok, err = p.lex.next(); err != nil {
				return err
			}
		default:
			return p.faults.FormatError(sep.line, sep.column, "expected ',' or '}'")
		}
	}
}
