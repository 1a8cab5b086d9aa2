// Package repl implements an interactive monitor for Intcode programs.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/akhildatla/intcode/pkg/compiler"
	"github.com/akhildatla/intcode/pkg/loader"
	"github.com/akhildatla/intcode/pkg/vm"
)

const (
	promptText = "intcode> "
	promptASM  = "asm> "
	promptCont = "...> "
)

// Mode represents the REPL input mode.
type Mode int

const (
	ModeText Mode = iota // comma-separated program text
	ModeASM              // assembly source
)

// REPL provides an interactive Read-Eval-Print Loop around one machine.
type REPL struct {
	mode        Mode
	machine     *vm.Machine
	loaded      bool
	lastMemory  vm.Program
	history     []string
	multiline   strings.Builder
	inMultiline bool
	done        bool
}

// New creates a new REPL instance with no program loaded.
func New() *REPL {
	m := vm.NewMachine(nil)
	m.EnableStats()
	return &REPL{
		mode:    ModeText,
		machine: m,
		history: []string{},
	}
}

// SetMode sets the REPL input mode.
func (r *REPL) SetMode(mode Mode) {
	r.mode = mode
}

// SetMaxSteps limits every run started from the REPL.
func (r *REPL) SetMaxSteps(n int64) {
	r.machine.SetMaxSteps(n)
}

// SetProgram loads p as the current program.
func (r *REPL) SetProgram(p vm.Program) {
	r.machine.SetProgram(p)
	r.loaded = true
	r.lastMemory = nil
}

// Start runs the REPL loop until the input ends or quit is entered.
func (r *REPL) Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	fmt.Fprintln(out, "Intcode REPL")
	fmt.Fprintln(out, "Type 'help' for available commands, 'quit' to exit")
	fmt.Fprintln(out)

	for !r.done {
		if r.inMultiline {
			fmt.Fprint(out, promptCont)
		} else if r.mode == ModeText {
			fmt.Fprint(out, promptText)
		} else {
			fmt.Fprint(out, promptASM)
		}

		if !scanner.Scan() {
			break
		}

		line := scanner.Text()

		if r.inMultiline {
			if line == "" {
				r.inMultiline = false
				input := r.multiline.String()
				r.multiline.Reset()
				r.eval(input, out)
			} else {
				r.multiline.WriteString(strings.TrimSuffix(line, "\\"))
				r.multiline.WriteString("\n")
			}
			continue
		}

		if handled := r.handleCommand(line, out); handled {
			continue
		}

		if strings.HasSuffix(line, "\\") {
			r.inMultiline = true
			r.multiline.WriteString(strings.TrimSuffix(line, "\\"))
			r.multiline.WriteString("\n")
			continue
		}

		r.eval(line, out)
	}
}

func (r *REPL) handleCommand(line string, out io.Writer) bool {
	trimmed := strings.TrimSpace(line)
	parts := strings.Fields(trimmed)

	if len(parts) == 0 {
		return true
	}

	switch strings.ToLower(parts[0]) {
	case "quit", "exit", "q":
		fmt.Fprintln(out, "Goodbye!")
		r.done = true
		return true

	case "help", "h", "?":
		r.printHelp(out)
		return true

	case "mode":
		if len(parts) > 1 {
			switch parts[1] {
			case "text":
				r.mode = ModeText
				fmt.Fprintln(out, "Switched to text mode")
			case "asm":
				r.mode = ModeASM
				fmt.Fprintln(out, "Switched to assembly mode")
			default:
				fmt.Fprintln(out, "Unknown mode. Use 'text' or 'asm'")
			}
		} else {
			if r.mode == ModeText {
				fmt.Fprintln(out, "Current mode: text")
			} else {
				fmt.Fprintln(out, "Current mode: ASM")
			}
		}
		return true

	case "load":
		if len(parts) != 2 {
			fmt.Fprintln(out, "Usage: load <path>")
			return true
		}
		r.loadFile(parts[1], out)
		return true

	case "run":
		r.run(parts[1:], out)
		return true

	case "nounverb":
		r.setNounVerb(parts[1:], out)
		return true

	case "mem":
		r.printMemory(parts[1:], out)
		return true

	case "program":
		if r.requireProgram(out) {
			fmt.Fprintln(out, r.machine.Program())
		}
		return true

	case "disasm":
		if r.requireProgram(out) {
			fmt.Fprint(out, vm.Disassemble(r.machine.Program()))
		}
		return true

	case "stats":
		r.printStats(out)
		return true

	case "history":
		for i, cmd := range r.history {
			fmt.Fprintf(out, "%3d: %s\n", i+1, cmd)
		}
		return true
	}

	return false
}

// eval loads input as the current program.
func (r *REPL) eval(input string, out io.Writer) {
	if strings.TrimSpace(input) == "" {
		return
	}

	r.history = append(r.history, input)

	var p vm.Program
	var err error
	if r.mode == ModeText {
		p, err = vm.Parse(input)
	} else {
		p, err = compiler.Compile(input)
	}
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}

	r.SetProgram(p)
	fmt.Fprintf(out, "Loaded %d words\n", len(p))
}

func (r *REPL) loadFile(path string, out io.Writer) {
	p, err := loader.LoadProgram(path)
	if err != nil {
		fmt.Fprintf(out, "Error loading %s: %v\n", path, err)
		return
	}
	r.SetProgram(p)
	fmt.Fprintf(out, "Loaded %d words from %s\n", len(p), path)
}

func (r *REPL) requireProgram(out io.Writer) bool {
	if !r.loaded {
		fmt.Fprintln(out, "No program loaded")
		return false
	}
	return true
}

func (r *REPL) run(args []string, out io.Writer) {
	if !r.requireProgram(out) {
		return
	}

	inputs, err := parseInts(args)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}

	sio := vm.NewScriptedIO(inputs...)
	r.machine.SetIO(sio)
	mem, err := r.machine.Execute()
	for _, v := range sio.Outputs {
		fmt.Fprintf(out, "out: %d\n", v)
	}
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}

	r.lastMemory = mem
	fmt.Fprintf(out, "=> %d\n", mem[0])
}

func (r *REPL) setNounVerb(args []string, out io.Writer) {
	if len(args) != 2 {
		fmt.Fprintln(out, "Usage: nounverb <noun> <verb>")
		return
	}
	if !r.requireProgram(out) {
		return
	}
	vals, err := parseInts(args)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	if err := r.machine.SetNounVerb(vals[0], vals[1]); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	r.lastMemory = nil
	fmt.Fprintf(out, "Noun %d, verb %d\n", vals[0], vals[1])
}

// printMemory shows the memory of the last run, or the program if it has
// not run since it was loaded. Optional arguments are start and count.
func (r *REPL) printMemory(args []string, out io.Writer) {
	if !r.requireProgram(out) {
		return
	}
	mem := r.lastMemory
	if mem == nil {
		mem = r.machine.Program()
	}

	start, count := 0, len(mem)
	if len(args) > 0 {
		vals, err := parseInts(args)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		start = int(vals[0])
		count = 1
		if len(vals) > 1 {
			count = int(vals[1])
		}
	}
	if start < 0 || start >= len(mem) {
		fmt.Fprintf(out, "Error: address %d out of range 0-%d\n", start, len(mem)-1)
		return
	}

	end := start + count
	if end > len(mem) {
		end = len(mem)
	}
	for addr := start; addr < end; addr++ {
		fmt.Fprintf(out, "%04d: %d\n", addr, mem[addr])
	}
}

func (r *REPL) printStats(out io.Writer) {
	stats := r.machine.Stats()
	if stats == nil || stats.StepsExecuted == 0 {
		fmt.Fprintln(out, "No statistics yet")
		return
	}

	fmt.Fprintf(out, "Steps: %d\n", stats.StepsExecuted)
	fmt.Fprintf(out, "Time: %dns\n", stats.ExecutionTimeNs)
	fmt.Fprintf(out, "Inputs: %d, outputs: %d\n", stats.InputsRead, stats.OutputsWritten)

	ops := make([]string, 0, len(stats.OpCounts))
	for op := range stats.OpCounts {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	for _, op := range ops {
		fmt.Fprintf(out, "  %-5s %d\n", op, stats.OpCounts[op])
	}
}

func parseInts(args []string) ([]int64, error) {
	vals := make([]int64, 0, len(args))
	for _, a := range args {
		for _, f := range strings.Split(a, ",") {
			if f == "" {
				continue
			}
			v, err := strconv.ParseInt(f, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("not an integer: %q", f)
			}
			vals = append(vals, v)
		}
	}
	return vals, nil
}

func (r *REPL) printHelp(out io.Writer) {
	help := `
Intcode REPL Commands:
  help, h, ?          Show this help message
  quit, exit, q       Exit the REPL
  mode [text|asm]     Show or set input mode
  load <path>         Load a program file (.txt, .asm, .icb)
  run [inputs...]     Run the program with the given inputs
  nounverb <n> <v>    Set the words at addresses 1 and 2
  mem [start [count]] Show memory after the last run
  program             Show the current program
  disasm              Disassemble the current program
  stats               Show statistics of the last run
  history             Show entered programs

Text mode example:
  1,9,10,3,2,3,11,0,99,30,40,50
  run

ASM mode example:
  IN value \
  OUT value
  HALT
  value: DATA 0
  (empty line)
  run 42

Tips:
  - End a line with \ for multiline input
  - Press Enter on an empty line to finish multiline input
`
	fmt.Fprint(out, help)
}
