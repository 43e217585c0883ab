package fastjson

// parser is a recursive-descent consumer of the lexer's tokens. It holds one
// token of lookahead.
type parser struct {
	lex *lexer
	tok token
}

// parse runs the parser over a complete document: exactly one value, with
// nothing but whitespace after it.
func (p *parser) parse() (*Value, *Error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, newSyntaxError(KindUnexpectedToken, p.tok.pos,
			"expected end of input, found %s", p.tok.kind)
	}
	return v, nil
}

func (p *parser) advance() *Error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) parseValue() (*Value, *Error) {
	switch p.tok.kind {
	case tokObjectStart:
		return p.parseObject()
	case tokArrayStart:
		return p.parseArray()
	case tokString:
		v := &Value{kind: KindString, str: p.tok.str}
		return v, p.advance()
	case tokNumber:
		v := NewNumber(NumberFromLexeme(p.tok.lex))
		return v, p.advance()
	case tokTrue:
		return valueTrue, p.advance()
	case tokFalse:
		return valueFalse, p.advance()
	case tokNull:
		return Null, p.advance()
	default:
		return nil, newSyntaxError(KindUnexpectedToken, p.tok.pos,
			"expected value, found %s", p.tok.kind)
	}
}

func (p *parser) parseObject() (*Value, *Error) {
	// cursor is on '{'
	if err := p.advance(); err != nil {
		return nil, err
	}
	obj := &Value{kind: KindObject}
	if p.tok.kind == tokObjectEnd {
		return obj, p.advance()
	}
	for {
		if p.tok.kind != tokString {
			return nil, newSyntaxError(KindUnexpectedToken, p.tok.pos,
				"expected string key, found %s", p.tok.kind)
		}
		key := p.tok.str
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokColon {
			return nil, newSyntaxError(KindUnexpectedToken, p.tok.pos,
				"expected ':', found %s", p.tok.kind)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		obj.setMember(key, val)

		switch p.tok.kind {
		case tokComma:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case tokObjectEnd:
			return obj, p.advance()
		default:
			return nil, newSyntaxError(KindUnexpectedToken, p.tok.pos,
				"expected ',' or '}', found %s", p.tok.kind)
		}
	}
}

func (p *parser) parseArray() (*Value, *Error) {
	// cursor is on '['
	if err := p.advance(); err != nil {
		return nil, err
	}
	arr := &Value{kind: KindArray}
	if p.tok.kind == tokArrayEnd {
		return arr, p.advance()
	}
	for {
		elem, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr.arr = append(arr.arr, elem)

		switch p.tok.kind {
		case tokComma:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case tokArrayEnd:
			return arr, p.advance()
		default:
			return nil, newSyntaxError(KindUnexpectedToken, p.tok.pos,
				"expected ',' or ']', found %s", p.tok.kind)
		}
	}
}
