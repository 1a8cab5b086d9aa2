package compiler

import (
	"strings"
	"testing"
)

func TestParser_Instructions(t *testing.T) {
	program, err := NewParser("ADD 1, #2, 3\nOUT #7\nHALT").Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(program.Instructions) != 3 {
		t.Fatalf("expected 3 instructions, got %d", len(program.Instructions))
	}

	add := program.Instructions[0]
	if add.Opcode != "ADD" || len(add.Operands) != 3 {
		t.Fatalf("unexpected first instruction: %+v", add)
	}
	if add.Operands[0].Immediate || !add.Operands[1].Immediate {
		t.Errorf("unexpected immediate flags: %+v", add.Operands)
	}
	if add.Operands[1].IntVal != 2 {
		t.Errorf("expected 2, got %d", add.Operands[1].IntVal)
	}
	if program.Instructions[2].Line != 3 {
		t.Errorf("expected HALT on line 3, got %d", program.Instructions[2].Line)
	}
}

func TestParser_Labels(t *testing.T) {
	program, err := NewParser("start:\n  JT #1, #start\nend: HALT").Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if program.Labels["start"] != 0 {
		t.Errorf("expected start -> 0, got %d", program.Labels["start"])
	}
	if program.Labels["end"] != 1 {
		t.Errorf("expected end -> 1, got %d", program.Labels["end"])
	}

	op := program.Instructions[0].Operands[1]
	if op.Type != OperandLabel || op.Label != "start" || !op.Immediate {
		t.Errorf("unexpected label operand: %+v", op)
	}
}

func TestParser_IllegalCharacterLine(t *testing.T) {
	_, err := NewParser("HALT\nOUT 1\nADD 1, 2, @3").Parse()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(err.Error(), "line 3: ") || !strings.Contains(err.Error(), `"@"`) {
		t.Errorf("expected line 3 error naming @, got %v", err)
	}
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"duplicate label", "a: HALT\na: HALT"},
		{"stray integer", "42"},
		{"dangling hash", "OUT #"},
		{"bad integer", "OUT 99999999999999999999"},
		{"illegal character", "OUT $x9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewParser(tt.input).Parse(); err == nil {
				t.Error("expected error")
			}
		})
	}
}
