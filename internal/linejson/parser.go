package linejson

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"
	"unicode/utf8"
)

var dateRegex = regexp.MustCompile(`^/Date\((-?\d+)\)/$`)

// Option configures Parse.
type Option func(*parser)

// Strict makes Parse reject anything but whitespace and comments after the
// top-level value. Without it trailing input is ignored.
func Strict() Option {
	return func(p *parser) { p.strict = true }
}

// Parse parses exactly one JSON value from text. It never fails outward:
// malformed input yields a KindError value whose Err is a *SyntaxError.
//
// Besides standard JSON the parser accepts single-quoted strings, a trailing
// comma before '}' or ']', C and C++ style comments, and the "/Date(ms)/"
// string convention, which becomes a KindTime value.
func Parse(text string, opts ...Option) Value {
	p := &parser{src: text, line: 1}
	for _, opt := range opts {
		opt(p)
	}

	v, err := p.document()
	if err != nil {
		var se *SyntaxError
		if errors.As(err, &se) {
			return Value{kind: KindError, err: se}
		}
		return Error(p.line, err.Error())
	}
	return v
}

type parser struct {
	src    string
	pos    int
	line   int
	strict bool
}

func (p *parser) fail(msg string) error {
	return &SyntaxError{Line: p.line, Msg: msg}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(off int) byte {
	if p.pos+off >= len(p.src) {
		return 0
	}
	return p.src[p.pos+off]
}

// advance consumes one byte, counting newlines.
func (p *parser) advance() {
	if p.src[p.pos] == '\n' {
		p.line++
	}
	p.pos++
}

func (p *parser) skipSpace() {
	for !p.eof() {
		c := p.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			p.advance()
		case c == '/' && p.peekAt(1) == '/':
			for !p.eof() && p.peek() != '\n' {
				p.advance()
			}
		case c == '/' && p.peekAt(1) == '*':
			p.pos += 2
			for !p.eof() && !(p.peek() == '*' && p.peekAt(1) == '/') {
				p.advance()
			}
			if !p.eof() {
				p.pos += 2
			}
		default:
			return
		}
	}
}

// char consumes c if it is the next non-space byte.
func (p *parser) char(c byte) bool {
	p.skipSpace()
	if p.peek() == c && !p.eof() {
		p.advance()
		return true
	}
	return false
}

func (p *parser) passChar(c byte) error {
	if !p.char(c) {
		return p.fail("missing '" + string(c) + "'")
	}
	return nil
}

func (p *parser) document() (Value, error) {
	v, err := p.value()
	if err != nil {
		return Value{}, err
	}
	if p.strict {
		p.skipSpace()
		if !p.eof() {
			return Value{}, p.fail("unexpected trailing data")
		}
	}
	return v, nil
}

func (p *parser) value() (Value, error) {
	p.skipSpace()
	c := p.peek()

	switch {
	case p.eof():
		return Value{}, p.fail("Unrecognized JSON element")
	case isDigit(c) || ((c == '-' || c == '+') && isDigit(p.peekAt(1))):
		return p.number()
	case c == '"' || c == '\'':
		s, err := p.str()
		if err != nil {
			return Value{}, err
		}
		if t, ok := parseDate(s); ok {
			return Time(t), nil
		}
		return String(s), nil
	case c == '{':
		p.advance()
		return p.object()
	case c == '[':
		p.advance()
		return p.array()
	case isIdentStart(c):
		switch p.ident() {
		case "null":
			return Null(), nil
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		}
	}
	return Value{}, p.fail("Unrecognized JSON element")
}

func (p *parser) object() (Value, error) {
	obj := NewObject()
	for !p.char('}') {
		if c := p.peek(); p.eof() || (c != '"' && c != '\'') {
			return Value{}, p.fail("missing string")
		}
		line := p.line
		key, err := p.str()
		if err != nil {
			return Value{}, err
		}
		if err := p.passChar(':'); err != nil {
			return Value{}, err
		}
		v, err := p.value()
		if err != nil {
			return Value{}, err
		}
		obj.Set(Key{Text: key, Line: line}, v)
		if p.char('}') {
			break
		}
		if err := p.passChar(','); err != nil {
			return Value{}, err
		}
	}
	return ObjectValue(obj), nil
}

func (p *parser) array() (Value, error) {
	items := make([]Value, 0)
	for !p.char(']') {
		v, err := p.value()
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
		if p.char(']') {
			break
		}
		if err := p.passChar(','); err != nil {
			return Value{}, err
		}
	}
	return Array(items...), nil
}

func (p *parser) number() (Value, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
	}
	p.digits()
	if p.peek() == '.' {
		p.pos++
		p.digits()
	}
	if c := p.peek(); c == 'e' || c == 'E' {
		next := p.peekAt(1)
		if isDigit(next) || ((next == '-' || next == '+') && isDigit(p.peekAt(2))) {
			p.pos += 2
			p.digits()
		}
	}

	n, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return Value{}, p.fail("invalid number " + strconv.Quote(p.src[start:p.pos]))
	}
	return Number(n), nil
}

func (p *parser) digits() {
	for isDigit(p.peek()) {
		p.pos++
	}
}

func (p *parser) ident() string {
	start := p.pos
	for isIdentStart(p.peek()) || isDigit(p.peek()) {
		p.pos++
	}
	return p.src[start:p.pos]
}

// str reads a quoted string starting at the current byte.
func (p *parser) str() (string, error) {
	quote := p.peek()
	p.pos++

	var b strings.Builder
	for {
		if p.eof() || p.peek() == '\n' {
			return "", p.fail("unterminated string")
		}
		c := p.peek()
		if c == quote {
			p.pos++
			return b.String(), nil
		}
		if c != '\\' {
			b.WriteByte(c)
			p.pos++
			continue
		}

		p.pos++
		if p.eof() {
			return "", p.fail("unterminated string")
		}
		esc := p.peek()
		p.pos++
		switch esc {
		case '"', '\'', '\\', '/':
			b.WriteByte(esc)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case 'x':
			n, ok := p.hex(2)
			if !ok {
				return "", p.fail("invalid \\x escape")
			}
			b.WriteByte(byte(n))
		case 'u':
			r, err := p.unicodeEscape()
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
		default:
			return "", p.fail("invalid escape sequence \\" + string(esc))
		}
	}
}

// unicodeEscape decodes the XXXX of \uXXXX, joining a following low
// surrogate escape when the first one is a high surrogate.
func (p *parser) unicodeEscape() (rune, error) {
	n, ok := p.hex(4)
	if !ok {
		return 0, p.fail("invalid \\u escape")
	}
	r := rune(n)
	if utf16.IsSurrogate(r) && p.peek() == '\\' && p.peekAt(1) == 'u' {
		save := p.pos
		p.pos += 2
		if lo, ok := p.hex(4); ok {
			if dec := utf16.DecodeRune(r, rune(lo)); dec != utf8.RuneError {
				return dec, nil
			}
		}
		p.pos = save
	}
	if utf16.IsSurrogate(r) {
		return utf8.RuneError, nil
	}
	return r, nil
}

func (p *parser) hex(width int) (uint64, bool) {
	if p.pos+width > len(p.src) {
		return 0, false
	}
	n, err := strconv.ParseUint(p.src[p.pos:p.pos+width], 16, 32)
	if err != nil {
		return 0, false
	}
	p.pos += width
	return n, true
}

// parseDate recognizes "/Date(ms)/" with ms counted from the Unix epoch.
func parseDate(s string) (time.Time, bool) {
	m := dateRegex.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
