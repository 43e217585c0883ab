package fastjson

// tokenKind identifies a lexical token.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokObjectStart
	tokObjectEnd
	tokArrayStart
	tokArrayEnd
	tokColon
	tokComma
	tokString
	tokNumber
	tokTrue
	tokFalse
	tokNull
)

var tokenNames = map[tokenKind]string{
	tokEOF:         "end of input",
	tokObjectStart: "'{'",
	tokObjectEnd:   "'}'",
	tokArrayStart:  "'['",
	tokArrayEnd:    "']'",
	tokColon:       "':'",
	tokComma:       "','",
	tokString:      "string",
	tokNumber:      "number",
	tokTrue:        "'true'",
	tokFalse:       "'false'",
	tokNull:        "'null'",
}

func (k tokenKind) String() string {
	return tokenNames[k]
}

// token is one lexical unit. For tokString, str holds the decoded or borrowed
// text; for tokNumber, lex holds the raw lexeme span.
type token struct {
	kind tokenKind
	pos  Pos
	str  StringRef
	lex  string
}
