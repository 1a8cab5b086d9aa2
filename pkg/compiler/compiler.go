// Package compiler assembles Intcode assembly source into a memory image.
//
// Syntax, one statement per line:
//
//	; comment
//	loop:                 ; label, resolves to the address of the next word
//	    IN    value       ; position operand (address)
//	    EQ    value, #8, flag
//	    JT    #1, #loop   ; immediate operand
//	    DATA  0, -1       ; raw words
//	value: DATA 0
//
// Mnemonics are case-insensitive. Write targets cannot be immediate.
package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/akhildatla/intcode/pkg/vm"
)

const dataDirective = "DATA"

var (
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrOperandCount   = errors.New("wrong operand count")
	ErrImmediateWrite = errors.New("write target cannot be immediate")
	ErrUndefinedLabel = errors.New("undefined label")
	ErrImmediateData  = errors.New("DATA operands cannot be immediate")
	ErrIllegalChar    = errors.New("illegal character")
)

// Compile assembles source code into a Program.
func Compile(source string) (vm.Program, error) {
	parser := NewParser(source)
	asmProgram, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	compiler := &Compiler{
		code:      vm.Program{},
		addresses: make([]int, len(asmProgram.Instructions)+1),
	}

	return compiler.compile(asmProgram)
}

// Compiler lays out parsed statements in memory and resolves labels.
type Compiler struct {
	code      vm.Program
	addresses []int // statement index -> address of its first word
	labels    map[string]int64
}

func (c *Compiler) compile(program *AsmProgram) (vm.Program, error) {
	// First pass: sizes and addresses.
	addr := 0
	for i, inst := range program.Instructions {
		c.addresses[i] = addr
		n, err := c.size(inst)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", inst.Line, err)
		}
		addr += n
	}
	c.addresses[len(program.Instructions)] = addr

	c.labels = make(map[string]int64, len(program.Labels))
	for name, idx := range program.Labels {
		c.labels[name] = int64(c.addresses[idx])
	}

	// Second pass: encode.
	for _, inst := range program.Instructions {
		if err := c.compileInstruction(inst); err != nil {
			return nil, fmt.Errorf("line %d: %w", inst.Line, err)
		}
	}

	return c.code, nil
}

func (c *Compiler) size(inst AsmInstruction) (int, error) {
	name := strings.ToUpper(inst.Opcode)
	if name == dataDirective {
		return len(inst.Operands), nil
	}
	op, ok := vm.OpcodeFromString(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownOpcode, inst.Opcode)
	}
	n, _ := op.Params()
	if len(inst.Operands) != n {
		return 0, fmt.Errorf("%w: %s expects %d operands, got %d", ErrOperandCount, op, n, len(inst.Operands))
	}
	return 1 + n, nil
}

func (c *Compiler) compileInstruction(inst AsmInstruction) error {
	name := strings.ToUpper(inst.Opcode)
	if name == dataDirective {
		return c.compileData(inst)
	}

	op, _ := vm.OpcodeFromString(name)
	modes := make([]vm.Mode, len(inst.Operands))
	params := make([]int64, len(inst.Operands))
	for i, operand := range inst.Operands {
		if operand.Immediate {
			if op.Writes() && i == len(inst.Operands)-1 {
				return fmt.Errorf("%w: %s operand %d", ErrImmediateWrite, op, i+1)
			}
			modes[i] = vm.ModeImmediate
		}
		v, err := c.resolve(operand)
		if err != nil {
			return err
		}
		params[i] = v
	}

	c.code = append(c.code, vm.EncodeWord(op, modes...))
	c.code = append(c.code, params...)
	return nil
}

func (c *Compiler) compileData(inst AsmInstruction) error {
	for _, operand := range inst.Operands {
		if operand.Immediate {
			return ErrImmediateData
		}
		v, err := c.resolve(operand)
		if err != nil {
			return err
		}
		c.code = append(c.code, v)
	}
	return nil
}

func (c *Compiler) resolve(operand Operand) (int64, error) {
	if operand.Type == OperandInt {
		return operand.IntVal, nil
	}
	addr, ok := c.labels[operand.Label]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUndefinedLabel, operand.Label)
	}
	return addr, nil
}
