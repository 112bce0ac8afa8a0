package writer

// charClass groups units for deciding where transcribed text needs a new
// mapping.
type charClass int

const (
	classNone charClass = iota
	classSpace
	classWord
	classOther
	classComma
	classSemicolon
	classOpenParen
	classCloseParen
	classOpenBrace
	classCloseBrace
	classOpenBracket
	classCloseBracket
)

func classify(c uint16) charClass {
	switch {
	case c == ' ' || c == '\t':
		return classSpace
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
		c == '_', c == '$', c > 0x7f:
		return classWord
	}

	switch c {
	case ',':
		return classComma
	case ';':
		return classSemicolon
	case '(':
		return classOpenParen
	case ')':
		return classCloseParen
	case '{':
		return classOpenBrace
	case '}':
		return classCloseBrace
	case '[':
		return classOpenBracket
	case ']':
		return classCloseBracket
	default:
		return classOther
	}
}
