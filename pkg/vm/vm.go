// Package vm implements the Intcode virtual machine.
//
// A Machine owns one memory image, created from a Program and reset to it at
// the start of every Execute call. Execution is a synchronous
// decode-dispatch-advance loop that runs until the halt instruction or the
// first fault.
//
// Basic usage:
//
//	m, err := vm.New("3,9,8,9,10,9,4,9,99,-1,8")
//	m.SetIO(vm.NewScriptedIO(8))
//	mem, err := m.Execute()
//
// A Machine is safe to re-run sequentially but not from two goroutines at once.
package vm

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tliron/commonlog"
)

// Error kinds. Faults raised during execution wrap one of these in a *Fault.
var (
	ErrMalformedProgram  = errors.New("malformed program")
	ErrUnknownOpcode     = errors.New("unknown opcode")
	ErrInvalidMode       = errors.New("invalid addressing mode")
	ErrOutOfBounds       = errors.New("address out of range")
	ErrMissingHalt       = errors.New("program ended without HALT")
	ErrInput             = errors.New("input error")
	ErrOutput            = errors.New("output error")
	ErrStepLimitExceeded = errors.New("step limit exceeded")
)

var log = commonlog.GetLogger("intcode.vm")

// Fault describes an execution failure at a specific instruction.
type Fault struct {
	Addr   int    // address of the opcode word
	Word   int64  // opcode word, 0 if Addr is outside memory
	Op     Opcode // decoded operation code
	Params int    // parameter count expected by Op
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("address %d: %s (word %d, %d params): %v", f.Addr, f.Op, f.Word, f.Params, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

// ExecutionStats contains metrics about the last Execute call.
type ExecutionStats struct {
	StepsExecuted   int64          // instructions executed, including HALT
	ExecutionTimeNs int64          // wall time in nanoseconds
	InputsRead      int            // values consumed by IN
	OutputsWritten  int            // values produced by OUT
	OpCounts        map[string]int // executions per mnemonic
}

// Machine is an Intcode computer.
type Machine struct {
	program Program
	memory  Program
	io      IO
	ip      int

	maxSteps  int64
	stepCount int64

	stats        ExecutionStats
	statsEnabled bool
}

// New parses program text and returns a machine for it.
func New(text string) (*Machine, error) {
	p, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return NewMachine(p), nil
}

// NewMachine returns a machine that runs a copy of p. Until SetIO is called
// the machine reads lines from stdin and writes lines to stdout.
func NewMachine(p Program) *Machine {
	m := &Machine{program: p.Clone()}
	m.reset()
	return m
}

// SetIO sets the machine's I/O channel.
func (m *Machine) SetIO(io IO) {
	m.io = io
}

// SetProgram replaces the program the machine resets from.
func (m *Machine) SetProgram(p Program) {
	m.program = p.Clone()
	m.reset()
}

// SetNounVerb replaces the noun and verb of the machine's program. The
// change persists across Execute calls.
func (m *Machine) SetNounVerb(noun, verb int64) error {
	p, err := m.program.WithNounVerb(noun, verb)
	if err != nil {
		return err
	}
	m.program = p
	m.reset()
	return nil
}

// Program returns a copy of the program the machine resets from.
func (m *Machine) Program() Program {
	return m.program.Clone()
}

// Memory returns a copy of the current memory image.
func (m *Machine) Memory() Program {
	return m.memory.Clone()
}

// SetMaxSteps limits the number of instructions one Execute call may run.
// Zero, the default, means unlimited.
func (m *Machine) SetMaxSteps(n int64) {
	m.maxSteps = n
}

// EnableStats enables execution statistics collection.
func (m *Machine) EnableStats() {
	m.statsEnabled = true
	m.stats = ExecutionStats{OpCounts: make(map[string]int)}
}

// Stats returns the statistics of the last Execute call, or nil if stats
// were not enabled.
func (m *Machine) Stats() *ExecutionStats {
	if !m.statsEnabled {
		return nil
	}
	return &m.stats
}

func (m *Machine) reset() {
	m.memory = m.program.Clone()
	m.ip = 0
	m.stepCount = 0
}

// Execute runs the program from a fresh copy of its memory image and
// returns the final memory.
func (m *Machine) Execute() (Program, error) {
	m.reset()
	if m.io == nil {
		m.io = NewLineIO(os.Stdin, os.Stdout)
	}

	var startTime time.Time
	if m.statsEnabled {
		startTime = time.Now()
		m.stats = ExecutionStats{OpCounts: make(map[string]int)}
		defer func() {
			m.stats.ExecutionTimeNs = time.Since(startTime).Nanoseconds()
		}()
	}

	for {
		if m.ip >= len(m.memory) {
			return nil, m.fault(m.ip, ErrMissingHalt)
		}

		m.stepCount++
		if m.maxSteps > 0 && m.stepCount > m.maxSteps {
			return nil, m.fault(m.ip, ErrStepLimitExceeded)
		}

		inst, err := m.decode(m.ip)
		if err != nil {
			return nil, err
		}

		if m.statsEnabled {
			m.stats.StepsExecuted++
			m.stats.OpCounts[inst.Op.String()]++
		}
		log.Debugf("%04d: %s", inst.Addr, inst)

		s, err := m.exec(inst)
		if err != nil {
			f := &Fault{Addr: inst.Addr, Word: inst.Word, Op: inst.Op, Params: len(inst.Params), Err: err}
			log.Infof("%v", f)
			return nil, f
		}

		switch s.kind {
		case stepHalt:
			return m.Memory(), nil
		case stepJump:
			if s.n < 0 || s.n >= len(m.memory) {
				f := &Fault{Addr: inst.Addr, Word: inst.Word, Op: inst.Op, Params: len(inst.Params),
					Err: fmt.Errorf("%w: jump target %d", ErrOutOfBounds, s.n)}
				log.Infof("%v", f)
				return nil, f
			}
			m.ip = s.n
		default:
			m.ip += 1 + s.n
		}
	}
}

// decode reads the instruction at addr and checks that its full parameter
// span lies inside memory.
func (m *Machine) decode(addr int) (Instruction, error) {
	word := m.memory[addr]
	op, modes, err := DecodeWord(word)
	n, _ := op.Params()
	if err != nil {
		return Instruction{}, m.faultWord(addr, word, op, n, err)
	}
	if addr+n >= len(m.memory) {
		return Instruction{}, m.faultWord(addr, word, op, n,
			fmt.Errorf("%w: operator needs %d words after it, memory ends at %d", ErrOutOfBounds, n, len(m.memory)-1))
	}
	params := make([]int64, n)
	copy(params, m.memory[addr+1:addr+1+n])
	return Instruction{
		Addr:   addr,
		Word:   word,
		Op:     op,
		Modes:  modes,
		Params: params,
	}, nil
}

// exec dispatches one instruction.
func (m *Machine) exec(inst Instruction) (step, error) {
	switch inst.Op {
	case OpAdd, OpMul, OpLessThan, OpEquals:
		a, err := m.operand(inst, 0)
		if err != nil {
			return step{}, err
		}
		b, err := m.operand(inst, 1)
		if err != nil {
			return step{}, err
		}
		var v int64
		switch inst.Op {
		case OpAdd:
			v = a + b
		case OpMul:
			v = a * b
		case OpLessThan:
			v = boolWord(a < b)
		case OpEquals:
			v = boolWord(a == b)
		}
		if err := m.store(inst, 2, v); err != nil {
			return step{}, err
		}
		return advance(3), nil

	case OpInput:
		if _, err := m.target(inst, 0); err != nil {
			return step{}, err
		}
		v, err := m.io.ReadInt()
		if err != nil {
			return step{}, fmt.Errorf("%w: %w", ErrInput, err)
		}
		if m.statsEnabled {
			m.stats.InputsRead++
		}
		if err := m.store(inst, 0, v); err != nil {
			return step{}, err
		}
		return advance(1), nil

	case OpOutput:
		// Mode 0 reads the cell at the parameter's address, it is not a
		// write target.
		v, err := m.operand(inst, 0)
		if err != nil {
			return step{}, err
		}
		if err := m.io.WriteInt(v); err != nil {
			return step{}, fmt.Errorf("%w: %w", ErrOutput, err)
		}
		if m.statsEnabled {
			m.stats.OutputsWritten++
		}
		return advance(1), nil

	case OpJumpIfTrue, OpJumpIfFalse:
		a, err := m.operand(inst, 0)
		if err != nil {
			return step{}, err
		}
		b, err := m.operand(inst, 1)
		if err != nil {
			return step{}, err
		}
		if (inst.Op == OpJumpIfTrue) == (a != 0) {
			return jumpTo(int(b)), nil
		}
		return advance(2), nil

	case OpHalt:
		return halt(), nil

	default:
		return step{}, fmt.Errorf("%w: %d", ErrUnknownOpcode, inst.Op)
	}
}

// operand resolves read parameter i according to its mode.
func (m *Machine) operand(inst Instruction, i int) (int64, error) {
	p := inst.Params[i]
	if inst.Modes[i] == ModeImmediate {
		return p, nil
	}
	if p < 0 || p >= int64(len(m.memory)) {
		return 0, fmt.Errorf("%w: parameter %d reads address %d", ErrOutOfBounds, i+1, p)
	}
	return m.memory[p], nil
}

// target returns write parameter i as an address. Its mode is ignored.
func (m *Machine) target(inst Instruction, i int) (int, error) {
	p := inst.Params[i]
	if p < 0 || p >= int64(len(m.memory)) {
		return 0, fmt.Errorf("%w: parameter %d writes address %d", ErrOutOfBounds, i+1, p)
	}
	return int(p), nil
}

func (m *Machine) store(inst Instruction, i int, v int64) error {
	addr, err := m.target(inst, i)
	if err != nil {
		return err
	}
	m.memory[addr] = v
	return nil
}

func (m *Machine) fault(addr int, err error) error {
	f := &Fault{Addr: addr, Err: err}
	if addr >= 0 && addr < len(m.memory) {
		f.Word = m.memory[addr]
		f.Op = Opcode(f.Word % 100)
	}
	log.Infof("%v", f)
	return f
}

func (m *Machine) faultWord(addr int, word int64, op Opcode, n int, err error) error {
	f := &Fault{Addr: addr, Word: word, Op: op, Params: n, Err: err}
	log.Infof("%v", f)
	return f
}

func boolWord(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
