package vm

// Opcode is the operation code held in the low two decimal digits of an
// opcode word.
type Opcode int64

const (
	OpAdd         Opcode = 1  // mem[c] = a + b
	OpMul         Opcode = 2  // mem[c] = a * b
	OpInput       Opcode = 3  // mem[a] = read from I/O channel
	OpOutput      Opcode = 4  // write a to I/O channel
	OpJumpIfTrue  Opcode = 5  // if a != 0 { ip = b }
	OpJumpIfFalse Opcode = 6  // if a == 0 { ip = b }
	OpLessThan    Opcode = 7  // mem[c] = a < b
	OpEquals      Opcode = 8  // mem[c] = a == b
	OpHalt        Opcode = 99 // stop execution
)

// MaxParams is the largest parameter count of any instruction.
const MaxParams = 3

// String returns the assembly mnemonic of an opcode.
func (o Opcode) String() string {
	switch o {
	case OpAdd:
		return "ADD"
	case OpMul:
		return "MUL"
	case OpInput:
		return "IN"
	case OpOutput:
		return "OUT"
	case OpJumpIfTrue:
		return "JT"
	case OpJumpIfFalse:
		return "JF"
	case OpLessThan:
		return "LT"
	case OpEquals:
		return "EQ"
	case OpHalt:
		return "HALT"
	default:
		return "UNKNOWN"
	}
}

// Params returns the number of parameter words following the opcode word.
// ok is false for codes outside the instruction set.
func (o Opcode) Params() (n int, ok bool) {
	switch o {
	case OpAdd, OpMul, OpLessThan, OpEquals:
		return 3, true
	case OpJumpIfTrue, OpJumpIfFalse:
		return 2, true
	case OpInput, OpOutput:
		return 1, true
	case OpHalt:
		return 0, true
	default:
		return 0, false
	}
}

// Writes reports whether the last parameter of the instruction is a write
// target. Write targets are always addresses, whatever their mode digit says.
func (o Opcode) Writes() bool {
	switch o {
	case OpAdd, OpMul, OpLessThan, OpEquals, OpInput:
		return true
	default:
		return false
	}
}

// OpcodeFromString returns the opcode for the given mnemonic.
func OpcodeFromString(s string) (Opcode, bool) {
	switch s {
	case "ADD":
		return OpAdd, true
	case "MUL":
		return OpMul, true
	case "IN":
		return OpInput, true
	case "OUT":
		return OpOutput, true
	case "JT":
		return OpJumpIfTrue, true
	case "JF":
		return OpJumpIfFalse, true
	case "LT":
		return OpLessThan, true
	case "EQ":
		return OpEquals, true
	case "HALT":
		return OpHalt, true
	default:
		return 0, false
	}
}
