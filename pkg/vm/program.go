package vm

import (
	"fmt"
	"strconv"
	"strings"
)

// Address of the noun and verb inputs in a program.
const (
	NounAddr = 1
	VerbAddr = 2
)

// Program is an initial memory image.
type Program []int64

// Parse reads comma-separated base-10 integers into a Program. Whitespace
// and newlines around tokens are ignored.
func Parse(text string) (Program, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Program{}, nil
	}

	tokens := strings.Split(text, ",")
	p := make(Program, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseInt(strings.TrimSpace(tok), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: token %d %q", ErrMalformedProgram, i, tok)
		}
		p[i] = v
	}
	return p, nil
}

// MustParse is like Parse but panics if the text is malformed.
func MustParse(text string) Program {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}

// String renders the program in its comma-separated text form.
func (p Program) String() string {
	var b strings.Builder
	for i, v := range p {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(v, 10))
	}
	return b.String()
}

// Clone returns a copy of the program.
func (p Program) Clone() Program {
	c := make(Program, len(p))
	copy(c, p)
	return c
}

// Equal reports whether two programs hold the same words.
func (p Program) Equal(q Program) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// WithNounVerb returns a copy of the program with the words at NounAddr and
// VerbAddr replaced. The receiver is not modified.
func (p Program) WithNounVerb(noun, verb int64) (Program, error) {
	if len(p) <= VerbAddr {
		return nil, fmt.Errorf("%w: program has %d words, noun and verb need %d", ErrOutOfBounds, len(p), VerbAddr+1)
	}
	c := p.Clone()
	c[NounAddr] = noun
	c[VerbAddr] = verb
	return c, nil
}

// WithNounVerb is the text form of Program.WithNounVerb.
func WithNounVerb(text string, noun, verb int64) (string, error) {
	p, err := Parse(text)
	if err != nil {
		return "", err
	}
	p, err = p.WithNounVerb(noun, verb)
	if err != nil {
		return "", err
	}
	return p.String(), nil
}
