package compiler

import (
	"fmt"
	"strconv"
)

// OperandType represents the type of an operand.
type OperandType uint8

const (
	OperandInt   OperandType = iota // Integer literal
	OperandLabel                    // Reference to a label's address
)

// Operand represents an instruction operand.
type Operand struct {
	Type      OperandType
	Immediate bool   // Written with a leading #
	IntVal    int64  // For integer literals
	Label     string // For label references
}

// AsmInstruction represents a parsed assembly statement: an instruction
// mnemonic or the DATA directive.
type AsmInstruction struct {
	Opcode   string
	Operands []Operand
	Line     int
}

// AsmProgram represents a parsed assembly program.
type AsmProgram struct {
	Instructions []AsmInstruction
	Labels       map[string]int // label -> index of the statement it precedes
}

// Parser parses Intcode assembly source code.
type Parser struct {
	tokens  []Token
	pos     int
	program *AsmProgram
}

// NewParser creates a new parser for the given input.
func NewParser(input string) *Parser {
	lexer := NewLexer(input)
	tokens := lexer.Tokenize()
	return &Parser{
		tokens: tokens,
		pos:    0,
		program: &AsmProgram{
			Instructions: []AsmInstruction{},
			Labels:       make(map[string]int),
		},
	}
}

// Parse parses the entire input and returns the program.
func (p *Parser) Parse() (*AsmProgram, error) {
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]

		switch tok.Type {
		case TokenEOF:
			return p.program, nil

		case TokenNewline:
			p.pos++

		case TokenIdent:
			if p.peek(1).Type == TokenColon {
				if _, dup := p.program.Labels[tok.Value]; dup {
					return nil, fmt.Errorf("line %d: duplicate label: %s", tok.Line, tok.Value)
				}
				p.program.Labels[tok.Value] = len(p.program.Instructions)
				p.pos += 2
				continue
			}
			inst, err := p.parseInstruction()
			if err != nil {
				return nil, err
			}
			p.program.Instructions = append(p.program.Instructions, inst)

		case TokenIllegal:
			return nil, illegal(tok)

		default:
			return nil, fmt.Errorf("line %d: unexpected token: %s", tok.Line, tok.Value)
		}
	}

	return p.program, nil
}

func (p *Parser) peek(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) parseInstruction() (AsmInstruction, error) {
	inst := AsmInstruction{
		Opcode:   p.tokens[p.pos].Value,
		Line:     p.tokens[p.pos].Line,
		Operands: []Operand{},
	}
	p.pos++ // Consume mnemonic

	// Parse operands until newline or EOF
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]

		if tok.Type == TokenNewline || tok.Type == TokenEOF {
			break
		}

		if tok.Type == TokenComma {
			p.pos++
			continue
		}

		operand, err := p.parseOperand()
		if err != nil {
			return inst, err
		}
		inst.Operands = append(inst.Operands, operand)
	}

	return inst, nil
}

func (p *Parser) parseOperand() (Operand, error) {
	immediate := false
	if p.tokens[p.pos].Type == TokenHash {
		immediate = true
		p.pos++
	}

	tok := p.tokens[p.pos]

	switch tok.Type {
	case TokenInt:
		intVal, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return Operand{}, fmt.Errorf("line %d: invalid integer: %s", tok.Line, tok.Value)
		}
		p.pos++
		return Operand{Type: OperandInt, Immediate: immediate, IntVal: intVal}, nil

	case TokenIdent:
		p.pos++
		return Operand{Type: OperandLabel, Immediate: immediate, Label: tok.Value}, nil

	case TokenIllegal:
		return Operand{}, illegal(tok)

	default:
		return Operand{}, fmt.Errorf("line %d: unexpected token: %s", tok.Line, tok.Value)
	}
}

func illegal(tok Token) error {
	return fmt.Errorf("line %d: %w %q", tok.Line, ErrIllegalChar, tok.Value)
}
