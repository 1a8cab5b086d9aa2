package vm

import "fmt"

// Mode is a parameter addressing mode.
type Mode uint8

const (
	ModePosition  Mode = 0 // parameter is an address
	ModeImmediate Mode = 1 // parameter is the value itself
)

// String returns the name of the mode.
func (m Mode) String() string {
	switch m {
	case ModePosition:
		return "position"
	case ModeImmediate:
		return "immediate"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Instruction is a decoded opcode word together with its raw parameters.
//
// Opcode word layout, in decimal digits:
//
//	 ... C  B  A  D  E
//	     |  |  |  └──┴─ operation code (word mod 100)
//	     |  |  └─────── mode of parameter 1
//	     |  └────────── mode of parameter 2
//	     └───────────── mode of parameter 3
//
// Missing mode digits are zero (position mode).
type Instruction struct {
	Addr   int
	Word   int64
	Op     Opcode
	Modes  [MaxParams]Mode
	Params []int64
}

// DecodeWord splits an opcode word into its operation code and the modes of
// its parameters. Only the digits of read parameters are checked. The digit
// of a write target is kept when it is 0 or 1 and never resolved, and digits
// beyond the operation's parameter count are ignored.
func DecodeWord(word int64) (Opcode, [MaxParams]Mode, error) {
	var modes [MaxParams]Mode
	if word < 0 {
		return Opcode(word), modes, fmt.Errorf("%w: %d", ErrUnknownOpcode, word)
	}
	op := Opcode(word % 100)
	n, ok := op.Params()
	if !ok {
		return op, modes, fmt.Errorf("%w: %d", ErrUnknownOpcode, op)
	}

	digits := word / 100
	for i := 0; i < n; i++ {
		d := digits % 10
		digits /= 10
		if op.Writes() && i == n-1 {
			if d == int64(ModeImmediate) {
				modes[i] = ModeImmediate
			}
			continue
		}
		if d > int64(ModeImmediate) {
			return op, modes, fmt.Errorf("%w: digit %d for parameter %d", ErrInvalidMode, d, i+1)
		}
		modes[i] = Mode(d)
	}
	return op, modes, nil
}

// EncodeWord builds an opcode word from an operation code and per-parameter
// modes. It is the inverse of DecodeWord.
func EncodeWord(op Opcode, modes ...Mode) int64 {
	word := int64(op)
	scale := int64(100)
	for _, m := range modes {
		word += int64(m) * scale
		scale *= 10
	}
	return word
}

// String renders the instruction in assembly syntax.
func (i Instruction) String() string {
	s := i.Op.String()
	for n, p := range i.Params {
		if n == 0 {
			s += " "
		} else {
			s += ", "
		}
		if i.Modes[n] == ModeImmediate && !(i.Op.Writes() && n == len(i.Params)-1) {
			s += fmt.Sprintf("#%d", p)
		} else {
			s += fmt.Sprintf("%d", p)
		}
	}
	return s
}

// stepKind tags how the execution loop moves the instruction pointer.
type stepKind uint8

const (
	stepAdvance stepKind = iota
	stepJump
	stepHalt
)

// step is the outcome of executing one instruction.
type step struct {
	kind stepKind
	n    int // words to advance past the opcode word, or the jump target
}

func advance(n int) step { return step{kind: stepAdvance, n: n} }
func jumpTo(addr int) step { return step{kind: stepJump, n: addr} }
func halt() step { return step{kind: stepHalt} }
