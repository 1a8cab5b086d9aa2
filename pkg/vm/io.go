package vm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// IO is the machine's I/O channel. ReadInt is called by the input
// instruction, WriteInt by the output instruction.
type IO interface {
	ReadInt() (int64, error)
	WriteInt(v int64) error
}

// LineIO reads one integer per line from a reader and writes one integer
// per line to a writer.
type LineIO struct {
	in     *bufio.Scanner
	out    io.Writer
	prompt string
}

// NewLineIO creates a LineIO over r and w.
func NewLineIO(r io.Reader, w io.Writer) *LineIO {
	return &LineIO{in: bufio.NewScanner(r), out: w}
}

// SetPrompt sets text written to the output before every read.
func (l *LineIO) SetPrompt(prompt string) {
	l.prompt = prompt
}

// ReadInt reads the next line and parses it as an integer.
func (l *LineIO) ReadInt() (int64, error) {
	if l.prompt != "" {
		fmt.Fprint(l.out, l.prompt)
	}
	if !l.in.Scan() {
		if err := l.in.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	line := strings.TrimSpace(l.in.Text())
	v, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", line)
	}
	return v, nil
}

// WriteInt writes v followed by a newline.
func (l *LineIO) WriteInt(v int64) error {
	_, err := fmt.Fprintln(l.out, v)
	return err
}

// ScriptedIO serves canned inputs and captures outputs.
type ScriptedIO struct {
	Inputs  []int64
	Outputs []int64
	next    int
}

// NewScriptedIO creates a ScriptedIO that will serve inputs in order.
func NewScriptedIO(inputs ...int64) *ScriptedIO {
	return &ScriptedIO{Inputs: inputs}
}

// ReadInt returns the next canned input, or io.EOF once they are used up.
func (s *ScriptedIO) ReadInt() (int64, error) {
	if s.next >= len(s.Inputs) {
		return 0, io.EOF
	}
	v := s.Inputs[s.next]
	s.next++
	return v, nil
}

// WriteInt appends v to Outputs.
func (s *ScriptedIO) WriteInt(v int64) error {
	s.Outputs = append(s.Outputs, v)
	return nil
}

// Reset rewinds the inputs and clears captured outputs.
func (s *ScriptedIO) Reset() {
	s.next = 0
	s.Outputs = nil
}
