package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/akhildatla/intcode/internal/testutil"
	"github.com/akhildatla/intcode/pkg/vm"
)

func loadedREPL(t *testing.T, program string) *REPL {
	t.Helper()
	r := New()
	r.SetProgram(vm.MustParse(program))
	return r
}

func TestREPL_New(t *testing.T) {
	r := New()
	if r == nil {
		t.Fatal("New returned nil")
	}
	if r.mode != ModeText {
		t.Errorf("expected text mode, got %v", r.mode)
	}
	if r.loaded {
		t.Error("expected no program loaded")
	}
}

func TestREPL_SetMode(t *testing.T) {
	r := New()
	r.SetMode(ModeASM)
	if r.mode != ModeASM {
		t.Errorf("expected ASM mode, got %v", r.mode)
	}
	r.SetMode(ModeText)
	if r.mode != ModeText {
		t.Errorf("expected text mode, got %v", r.mode)
	}
}

func TestREPL_HandleCommand_Help(t *testing.T) {
	r := New()
	var out bytes.Buffer

	tests := []string{"help", "h", "?"}
	for _, cmd := range tests {
		out.Reset()
		handled := r.handleCommand(cmd, &out)
		if !handled {
			t.Errorf("expected help command '%s' to be handled", cmd)
		}
		if !strings.Contains(out.String(), "Intcode REPL Commands") {
			t.Errorf("expected help text, got: %s", out.String())
		}
	}
}

func TestREPL_HandleCommand_Quit(t *testing.T) {
	tests := []string{"quit", "exit", "q"}
	for _, cmd := range tests {
		r := New()
		var out bytes.Buffer
		handled := r.handleCommand(cmd, &out)
		if !handled {
			t.Errorf("expected quit command '%s' to be handled", cmd)
		}
		if !strings.Contains(out.String(), "Goodbye") {
			t.Errorf("expected goodbye message, got: %s", out.String())
		}
		if !r.done {
			t.Errorf("expected '%s' to stop the loop", cmd)
		}
	}
}

func TestREPL_HandleCommand_Mode(t *testing.T) {
	r := New()
	var out bytes.Buffer

	r.handleCommand("mode", &out)
	if !strings.Contains(out.String(), "text") {
		t.Errorf("expected current mode text, got: %s", out.String())
	}

	out.Reset()
	r.handleCommand("mode asm", &out)
	if r.mode != ModeASM {
		t.Error("expected ASM mode")
	}
	if !strings.Contains(out.String(), "assembly mode") {
		t.Errorf("expected switch confirmation, got: %s", out.String())
	}

	out.Reset()
	r.handleCommand("mode text", &out)
	if r.mode != ModeText {
		t.Error("expected text mode")
	}

	out.Reset()
	r.handleCommand("mode invalid", &out)
	if !strings.Contains(out.String(), "Unknown mode") {
		t.Errorf("expected error message, got: %s", out.String())
	}
}

func TestREPL_HandleCommand_NoProgram(t *testing.T) {
	for _, cmd := range []string{"run", "mem", "disasm", "program", "nounverb 1 2"} {
		r := New()
		var out bytes.Buffer
		r.handleCommand(cmd, &out)
		if !strings.Contains(out.String(), "No program loaded") {
			t.Errorf("%s: expected no program message, got: %s", cmd, out.String())
		}
	}
}

func TestREPL_HandleCommand_Empty(t *testing.T) {
	r := New()
	var out bytes.Buffer

	if !r.handleCommand("", &out) || !r.handleCommand("   ", &out) {
		t.Error("expected empty input to be handled")
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got: %s", out.String())
	}
}

func TestREPL_HandleCommand_Unknown(t *testing.T) {
	r := New()
	var out bytes.Buffer

	if r.handleCommand("1,0,0,0,99", &out) {
		t.Error("expected program text not to be handled as a command")
	}
}

func TestREPL_Run(t *testing.T) {
	r := loadedREPL(t, testutil.EqualsEight)
	var out bytes.Buffer

	r.handleCommand("run 8", &out)
	if !strings.Contains(out.String(), "out: 1") {
		t.Errorf("expected output 1, got: %s", out.String())
	}

	out.Reset()
	r.handleCommand("run 7", &out)
	if !strings.Contains(out.String(), "out: 0") {
		t.Errorf("expected output 0, got: %s", out.String())
	}

	out.Reset()
	r.handleCommand("run", &out)
	if !strings.Contains(out.String(), "Error:") || !strings.Contains(out.String(), "input error") {
		t.Errorf("expected input error, got: %s", out.String())
	}

	out.Reset()
	r.handleCommand("run x", &out)
	if !strings.Contains(out.String(), "not an integer") {
		t.Errorf("expected parse error, got: %s", out.String())
	}
}

func TestREPL_NounVerbAndMemory(t *testing.T) {
	r := loadedREPL(t, testutil.NounVerbSum)
	var out bytes.Buffer

	r.handleCommand("nounverb 5 6", &out)
	if !strings.Contains(out.String(), "Noun 5, verb 6") {
		t.Errorf("expected confirmation, got: %s", out.String())
	}

	out.Reset()
	r.handleCommand("run", &out)
	if !strings.Contains(out.String(), "=> 30") {
		t.Errorf("expected result 30, got: %s", out.String())
	}

	out.Reset()
	r.handleCommand("mem 0 3", &out)
	expected := "0000: 30\n0001: 5\n0002: 6\n"
	if out.String() != expected {
		t.Errorf("expected %q, got %q", expected, out.String())
	}

	out.Reset()
	r.handleCommand("mem 99", &out)
	if !strings.Contains(out.String(), "out of range") {
		t.Errorf("expected range error, got: %s", out.String())
	}

	out.Reset()
	r.handleCommand("nounverb 1", &out)
	if !strings.Contains(out.String(), "Usage") {
		t.Errorf("expected usage, got: %s", out.String())
	}
}

func TestREPL_Stats(t *testing.T) {
	r := loadedREPL(t, testutil.EqualsEight)
	var out bytes.Buffer

	r.handleCommand("stats", &out)
	if !strings.Contains(out.String(), "No statistics") {
		t.Errorf("expected no statistics, got: %s", out.String())
	}

	r.handleCommand("run 8", &out)
	out.Reset()
	r.handleCommand("stats", &out)
	for _, want := range []string{"Steps: 4", "Inputs: 1, outputs: 1", "EQ", "HALT"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in stats, got: %s", want, out.String())
		}
	}
}

func TestREPL_Disasm(t *testing.T) {
	r := loadedREPL(t, "1002,4,3,4,33")
	var out bytes.Buffer

	r.handleCommand("disasm", &out)
	if !strings.Contains(out.String(), "MUL 4, #3, 4") {
		t.Errorf("expected disassembly, got: %s", out.String())
	}
}

func TestREPL_Eval(t *testing.T) {
	r := New()
	var out bytes.Buffer

	r.eval("1,9,10,3,2,3,11,0,99,30,40,50", &out)
	if !strings.Contains(out.String(), "Loaded 12 words") {
		t.Errorf("expected load message, got: %s", out.String())
	}
	if len(r.history) != 1 {
		t.Errorf("expected 1 history entry, got %d", len(r.history))
	}

	out.Reset()
	r.eval("1,x", &out)
	if !strings.Contains(out.String(), "Error:") {
		t.Errorf("expected error, got: %s", out.String())
	}

	out.Reset()
	r.eval("   ", &out)
	if out.Len() != 0 || len(r.history) != 2 {
		t.Errorf("expected blank input to be ignored, got: %s", out.String())
	}
}

func TestREPL_Load(t *testing.T) {
	r := New()
	var out bytes.Buffer

	path := testutil.TempFile(t, testutil.EqualsEightAsm, ".asm")
	r.handleCommand("load "+path, &out)
	if !strings.Contains(out.String(), "Loaded 11 words") {
		t.Errorf("expected load message, got: %s", out.String())
	}

	out.Reset()
	r.handleCommand("load /nonexistent.txt", &out)
	if !strings.Contains(out.String(), "Error loading") {
		t.Errorf("expected load error, got: %s", out.String())
	}

	out.Reset()
	r.handleCommand("load", &out)
	if !strings.Contains(out.String(), "Usage") {
		t.Errorf("expected usage, got: %s", out.String())
	}
}

func TestREPL_Start_BasicInteraction(t *testing.T) {
	r := New()
	in := strings.NewReader("1,0,0,0,99\nrun\nquit\nrun\n")
	var out bytes.Buffer

	r.Start(in, &out)

	output := out.String()
	if !strings.Contains(output, "Intcode REPL") {
		t.Errorf("expected banner, got: %s", output)
	}
	if strings.Count(output, "=> 2") != 1 {
		t.Errorf("expected exactly one run before quit, got: %s", output)
	}
	if !strings.Contains(output, "Goodbye") {
		t.Errorf("expected goodbye, got: %s", output)
	}
}

func TestREPL_Start_MultilineAssembly(t *testing.T) {
	r := New()
	in := strings.NewReader("mode asm\nIN value \\\nOUT value\nHALT\nvalue: DATA 0\n\nrun 42\n")
	var out bytes.Buffer

	r.Start(in, &out)

	output := out.String()
	if !strings.Contains(output, promptCont) {
		t.Errorf("expected continuation prompt, got: %s", output)
	}
	if !strings.Contains(output, "Loaded 6 words") {
		t.Errorf("expected assembled program, got: %s", output)
	}
	if !strings.Contains(output, "out: 42") {
		t.Errorf("expected echoed input, got: %s", output)
	}
}

func TestREPL_History(t *testing.T) {
	r := New()
	var out bytes.Buffer

	r.eval("99", &out)
	r.eval("1,0,0,0,99", &out)

	out.Reset()
	r.handleCommand("history", &out)
	if !strings.Contains(out.String(), "  1: 99") || !strings.Contains(out.String(), "  2: 1,0,0,0,99") {
		t.Errorf("expected history entries, got: %s", out.String())
	}
}
