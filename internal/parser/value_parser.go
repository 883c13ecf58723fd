package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/mdt-route/backend/internal/models"
)

// FormatRevision is the only supported revision tag of the value format.
const FormatRevision = "1"

// Control codes of the value format.
const (
	codeTerminator = '^'
	codeString     = 'S'
	codeNumber     = 'N'
	codeFloat      = 'F'
	codeExponent   = 'f'
	codeTrue       = 'B'
	codeFalse      = 'b'
	codeNull       = 'Z'
	codeTable      = 'T'
	codeTableEnd   = 't'
)

// segment is one caret-delimited token: a control code and its payload.
type segment struct {
	code    byte
	payload string
	index   int
}

// segmentCursor walks the pre-split segments. It is passed explicitly
// through the recursive descent.
type segmentCursor struct {
	parts []string
	pos   int
}

func (c *segmentCursor) done() bool {
	return c.pos >= len(c.parts)
}

// peek returns the next segment without consuming it.
func (c *segmentCursor) peek() (segment, bool) {
	if c.done() {
		return segment{}, false
	}
	part := c.parts[c.pos]
	if part == "" {
		// Adjacent carets: the second caret is the control code.
		return segment{code: codeTerminator, index: c.pos}, true
	}
	return segment{code: part[0], payload: part[1:], index: c.pos}, true
}

// next consumes and returns the next segment.
func (c *segmentCursor) next() (segment, bool) {
	seg, ok := c.peek()
	if ok {
		c.pos++
	}
	return seg, ok
}

// stripIgnored removes ASCII control characters and spaces from the whole
// document. Spaces inside string payloads are lost; the format has no escape
// for them.
func stripIgnored(text string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == ' ' || r == 0x7F {
			return -1
		}
		return r
	}, text)
}

func newCursor(text string) (*segmentCursor, error) {
	parts := strings.Split(stripIgnored(text), "^")
	if len(parts) < 2 || parts[0] != "" || parts[1] != FormatRevision {
		return nil, models.NewDecodeError(models.KindNotRecognizedFormat,
			"data is not in the value format (revision %s)", FormatRevision)
	}
	return &segmentCursor{parts: parts, pos: 2}, nil
}

// ParseValue decodes the first value of a value-format document.
func ParseValue(text string) (Value, error) {
	c, err := newCursor(text)
	if err != nil {
		return Value{}, err
	}
	v, ok, err := readValue(c)
	if err != nil {
		return Value{}, err
	}
	if !ok {
		return Value{}, models.NewDecodeErrorAt(models.KindUnexpectedEndOfData, c.pos-1,
			"terminator where a value was expected")
	}
	return v, nil
}

// ParseValues decodes every top-level value up to the terminator or the end of input.
func ParseValues(text string) ([]Value, error) {
	c, err := newCursor(text)
	if err != nil {
		return nil, err
	}
	var values []Value
	for !c.done() {
		v, ok, err := readValue(c)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, models.NewDecodeError(models.KindUnexpectedEndOfData, "document holds no value")
	}
	return values, nil
}

// readValue reads one value. ok is false when a terminator segment was
// consumed instead of a value.
func readValue(c *segmentCursor) (v Value, ok bool, err error) {
	seg, more := c.next()
	if !more {
		return Value{}, false, models.NewDecodeErrorAt(models.KindUnexpectedEndOfData, c.pos,
			"unexpected end of data")
	}

	switch seg.code {
	case codeTerminator:
		return Value{}, false, nil
	case codeString:
		s, err := unescapeString(seg)
		if err != nil {
			return Value{}, false, err
		}
		return String(s), true, nil
	case codeNumber:
		n, err := parseNumber(seg)
		if err != nil {
			return Value{}, false, err
		}
		return Number(n), true, nil
	case codeFloat:
		n, err := parseScaledFloat(c, seg)
		if err != nil {
			return Value{}, false, err
		}
		return Number(n), true, nil
	case codeTrue:
		return Bool(true), true, nil
	case codeFalse:
		return Bool(false), true, nil
	case codeNull:
		return Null(), true, nil
	case codeTable:
		t, err := readTable(c)
		if err != nil {
			return Value{}, false, err
		}
		return TableValue(t), true, nil
	default:
		return Value{}, false, models.NewDecodeErrorAt(models.KindUnknownControlCode, seg.index,
			"unknown control code ^%c", seg.code)
	}
}

// readTable reads key/value pairs until the table end marker. Running out
// of input or hitting a terminator ends the table without an error.
func readTable(c *segmentCursor) (*Table, error) {
	t := NewTable()
	for {
		seg, more := c.peek()
		if !more {
			return t, nil
		}
		if seg.code == codeTableEnd {
			c.next()
			return t, nil
		}

		key, ok, err := readValue(c)
		if err != nil {
			return nil, err
		}
		if !ok || c.done() {
			return t, nil
		}

		val, ok, err := readValue(c)
		if err != nil {
			return nil, err
		}
		if !ok {
			return t, nil
		}
		t.Set(key, val)
	}
}

func unescapeString(seg segment) (string, error) {
	s := seg.payload
	if strings.IndexByte(s, '~') < 0 {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '~' || i+1 >= len(s) {
			b.WriteByte(ch)
			continue
		}
		i++
		esc := s[i]
		switch {
		case esc >= 64 && esc < 'z':
			b.WriteByte(esc - 64)
		case esc == 'z':
			b.WriteByte(0x1E)
		case esc == '{':
			b.WriteByte(0x7F)
		case esc == '|':
			b.WriteByte('~')
		case esc == '}':
			b.WriteByte('^')
		default:
			return "", models.NewDecodeErrorAt(models.KindInvalidEscape, seg.index,
				"invalid escape sequence ~%c", esc)
		}
	}
	return b.String(), nil
}

func parseNumber(seg segment) (float64, error) {
	switch seg.payload {
	case "inf", "1.#INF":
		return math.Inf(1), nil
	case "-inf", "-1.#INF":
		return math.Inf(-1), nil
	}
	n, err := strconv.ParseFloat(seg.payload, 64)
	if err != nil {
		return 0, models.NewDecodeErrorAt(models.KindInvalidNumber, seg.index,
			"invalid number %q", seg.payload)
	}
	return n, nil
}

// parseScaledFloat combines an F mantissa with the mandatory f exponent segment.
func parseScaledFloat(c *segmentCursor, seg segment) (float64, error) {
	exp, ok := c.next()
	if !ok || exp.code != codeExponent {
		return 0, models.NewDecodeErrorAt(models.KindInvalidFloatFormat, seg.index,
			"float mantissa is not followed by an exponent")
	}
	m, err := strconv.ParseFloat(seg.payload, 64)
	if err != nil {
		return 0, models.NewDecodeErrorAt(models.KindInvalidFloatFormat, seg.index,
			"invalid float mantissa %q", seg.payload)
	}
	e, err := strconv.Atoi(exp.payload)
	if err != nil {
		return 0, models.NewDecodeErrorAt(models.KindInvalidFloatFormat, exp.index,
			"invalid float exponent %q", exp.payload)
	}
	return math.Ldexp(m, e), nil
}
