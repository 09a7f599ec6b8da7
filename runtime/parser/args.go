package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Arg is one named argument from an invocation's argument list.
type Arg struct {
	Name  string
	Value Value
}

// argScanner walks the text between an invocation's parentheses.
// It is a plain byte scanner: arguments are short single-line lists, so
// there is no token stream, just a cursor.
type argScanner struct {
	src []byte
	pos int
}

// ParseArgs parses a comma-separated `key=value` list (the content between
// an invocation's parentheses, without the parens themselves).
func ParseArgs(src string) ([]Arg, error) {
	s := &argScanner{src: []byte(src)}
	var args []Arg

	s.skipSpaces()
	if s.eof() {
		return args, nil
	}

	for {
		arg, err := s.scanArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		s.skipSpaces()
		if s.eof() {
			return args, nil
		}
		if s.peek() != ',' {
			return nil, fmt.Errorf("expected ',' or end of arguments at offset %d, got %q", s.pos, string(s.peek()))
		}
		s.pos++ // consume ','
		s.skipSpaces()
		if s.eof() {
			return nil, fmt.Errorf("trailing ',' in argument list")
		}
	}
}

func (s *argScanner) scanArg() (Arg, error) {
	s.skipSpaces()

	name := s.scanIdentifier()
	if name == "" {
		return Arg{}, fmt.Errorf("expected parameter name at offset %d", s.pos)
	}

	s.skipSpaces()
	if s.eof() || s.peek() != '=' {
		return Arg{}, fmt.Errorf("expected '=' after parameter %q", name)
	}
	s.pos++ // consume '='
	s.skipSpaces()

	value, err := s.scanValue()
	if err != nil {
		return Arg{}, fmt.Errorf("parameter %q: %w", name, err)
	}
	return Arg{Name: name, Value: value}, nil
}

func (s *argScanner) scanValue() (Value, error) {
	if s.eof() {
		return Value{}, fmt.Errorf("expected value")
	}

	switch s.peek() {
	case '"', '\'':
		return s.scanQuoted()
	case '[':
		return s.scanArray()
	default:
		return s.scanBare()
	}
}

// scanQuoted reads a quoted string with backslash escapes for the quote
// character and backslash itself.
func (s *argScanner) scanQuoted() (Value, error) {
	quote := s.peek()
	s.pos++ // consume opening quote

	var sb strings.Builder
	for !s.eof() {
		ch := s.src[s.pos]
		switch ch {
		case '\\':
			if s.pos+1 >= len(s.src) {
				return Value{}, fmt.Errorf("unterminated escape in string")
			}
			next := s.src[s.pos+1]
			if next == quote || next == '\\' {
				sb.WriteByte(next)
				s.pos += 2
				continue
			}
			sb.WriteByte(ch)
			s.pos++
		case quote:
			s.pos++ // consume closing quote
			return StringValue(sb.String()), nil
		default:
			sb.WriteByte(ch)
			s.pos++
		}
	}
	return Value{}, fmt.Errorf("unterminated string literal")
}

// scanArray reads a bracketed list of values.
func (s *argScanner) scanArray() (Value, error) {
	s.pos++ // consume '['
	var elems []Value

	s.skipSpaces()
	if !s.eof() && s.peek() == ']' {
		s.pos++
		return ArrayValue(), nil
	}

	for {
		s.skipSpaces()
		elem, err := s.scanValue()
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, elem)

		s.skipSpaces()
		if s.eof() {
			return Value{}, fmt.Errorf("unterminated array literal")
		}
		switch s.peek() {
		case ',':
			s.pos++
		case ']':
			s.pos++
			return ArrayValue(elems...), nil
		default:
			return Value{}, fmt.Errorf("expected ',' or ']' in array at offset %d", s.pos)
		}
	}
}

// scanBare reads an unquoted token: a number, a boolean, or a bare
// identifier (treated as a string).
func (s *argScanner) scanBare() (Value, error) {
	start := s.pos
	for !s.eof() {
		ch := s.peek()
		if ch == ',' || ch == ']' || ch == ' ' || ch == '\t' {
			break
		}
		s.pos++
	}
	token := string(s.src[start:s.pos])
	if token == "" {
		return Value{}, fmt.Errorf("expected value at offset %d", start)
	}

	// Booleans are case-insensitive in source, canonical lowercase out
	if strings.EqualFold(token, "true") {
		return BoolValue(true), nil
	}
	if strings.EqualFold(token, "false") {
		return BoolValue(false), nil
	}

	if n, err := strconv.ParseFloat(token, 64); err == nil {
		return NumberValue(n), nil
	}

	// Bare identifier: letters, digits, underscore, dots and dashes
	for i := 0; i < len(token); i++ {
		if !isBareChar(token[i]) {
			return Value{}, fmt.Errorf("invalid bare value %q", token)
		}
	}
	return StringValue(token), nil
}

func (s *argScanner) scanIdentifier() string {
	start := s.pos
	for !s.eof() && isIdentifierChar(s.peek()) {
		s.pos++
	}
	return string(s.src[start:s.pos])
}

func (s *argScanner) skipSpaces() {
	for !s.eof() && (s.peek() == ' ' || s.peek() == '\t') {
		s.pos++
	}
}

func (s *argScanner) peek() byte { return s.src[s.pos] }
func (s *argScanner) eof() bool  { return s.pos >= len(s.src) }

// isIdentifierChar checks if a character can be part of an identifier
func isIdentifierChar(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '_'
}

func isBareChar(ch byte) bool {
	return isIdentifierChar(ch) || ch == '.' || ch == '-'
}
