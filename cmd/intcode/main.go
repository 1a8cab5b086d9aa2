// Package main provides the CLI entry point for the Intcode toolchain.
//
// Usage:
//
//	intcode run program.txt              # Execute a program
//	intcode run -input 8 program.asm     # Execute with scripted inputs
//	intcode compile program.asm          # Compile to an image (.icb)
//	intcode exec program.icb             # Execute a compiled image
//	intcode disasm program.icb           # Disassemble a program
//	intcode sweep program.txt            # Search for the noun and verb
//	intcode batch program.txt cases.csv  # Run a table of cases
//	intcode solve fuel modules.txt       # Solve a companion puzzle
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/akhildatla/intcode/internal/config"
	"github.com/akhildatla/intcode/pkg/compiler"
	"github.com/akhildatla/intcode/pkg/embed"
	"github.com/akhildatla/intcode/pkg/loader"
	"github.com/akhildatla/intcode/pkg/repl"
	"github.com/akhildatla/intcode/pkg/vm"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var log = commonlog.GetLogger("intcode.cli")

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return printUsage()
	}

	cmd := os.Args[1]

	switch cmd {
	case "run":
		return runCommand(os.Args[2:])
	case "compile":
		return compileCommand(os.Args[2:])
	case "exec":
		return execCommand(os.Args[2:])
	case "disasm":
		return disasmCommand(os.Args[2:])
	case "sweep":
		return sweepCommand(os.Args[2:])
	case "batch":
		return batchCommand(os.Args[2:])
	case "solve":
		return solveCommand(os.Args[2:])
	case "repl":
		return replCommand(os.Args[2:])
	case "version":
		fmt.Printf("intcode version %s\n", version)
		if commit != "none" {
			fmt.Printf("  commit: %s\n", commit)
		}
		if date != "unknown" {
			fmt.Printf("  built:  %s\n", date)
		}
		return nil
	case "help", "-h", "--help":
		return printUsage()
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// commonFlags are accepted by every subcommand that runs programs.
type commonFlags struct {
	configPath *string
	verbose    *bool
	logFile    *string
	maxSteps   *int64
	stats      *bool
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	return &commonFlags{
		configPath: fs.String("config", "", "config file (default: nearest "+config.FileName+")"),
		verbose:    fs.Bool("v", false, "verbose output"),
		logFile:    fs.String("log", "", "log file (default: stderr)"),
		maxSteps:   fs.Int64("max-steps", -1, "instruction limit per run, 0 for unlimited"),
		stats:      fs.Bool("stats", false, "print execution statistics"),
	}
}

// setup loads the configuration, applies flag overrides and configures
// logging. Call it after fs.Parse.
func (c *commonFlags) setup(fs *flag.FlagSet) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if *c.configPath != "" {
		cfg, err = config.Load(*c.configPath)
	} else {
		cfg, err = config.FindAndLoad(".")
	}
	if err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":
			if *c.verbose {
				cfg.Log.Verbosity++
			}
		case "log":
			cfg.Log.File = *c.logFile
		case "max-steps":
			cfg.Machine.MaxSteps = *c.maxSteps
		case "stats":
			cfg.Machine.Stats = *c.stats
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	commonlog.Configure(cfg.Log.Verbosity, cfg.LogPath())
	if cfg.Path != "" {
		log.Infof("using config %s", cfg.Path)
	}
	return cfg, nil
}

// parseInputs reads a comma- or space-separated list of integers.
func parseInputs(s string) ([]int64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	inputs := make([]int64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad input %q", f)
		}
		inputs = append(inputs, v)
	}
	return inputs, nil
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	common := addCommonFlags(fs)
	input := fs.String("input", "", "scripted inputs, comma separated (default: read stdin)")
	noun := fs.Int64("noun", 0, "replace the word at address 1")
	verb := fs.Int64("verb", 0, "replace the word at address 2")
	dump := fs.Bool("dump", false, "print the final memory")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: intcode run <program>")
	}

	cfg, err := common.setup(fs)
	if err != nil {
		return err
	}

	path := fs.Arg(0)
	if *common.verbose {
		fmt.Printf("Executing: %s\n", path)
	}

	p, err := loader.LoadProgram(path)
	if err != nil {
		return err
	}
	var nv *[2]int64
	set := setFlags(fs)
	if set["noun"] != set["verb"] {
		return fmt.Errorf("-noun and -verb must be given together")
	}
	if set["noun"] {
		nv = &[2]int64{*noun, *verb}
	}
	return execute(p, cfg, *input, nv, *dump)
}

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// execute runs p. A non-nil nounVerb replaces the words at addresses 1 and 2.
func execute(p vm.Program, cfg *config.Config, input string, nounVerb *[2]int64, dump bool) error {
	opts := []embed.Option{embed.WithMaxSteps(cfg.Machine.MaxSteps)}
	if cfg.Machine.Stats {
		opts = append(opts, embed.WithStats())
	}
	if nounVerb != nil {
		opts = append(opts, embed.WithNounVerb(nounVerb[0], nounVerb[1]))
	}

	scripted := input != ""
	if scripted {
		inputs, err := parseInputs(input)
		if err != nil {
			return err
		}
		opts = append(opts, embed.WithInputs(inputs...))
	} else {
		lio := vm.NewLineIO(os.Stdin, os.Stdout)
		lio.SetPrompt(cfg.IO.Prompt)
		opts = append(opts, embed.WithIO(lio))
	}

	result, err := embed.ExecuteProgram(p, opts...)
	if err != nil {
		return fmt.Errorf("executing: %w", err)
	}

	for _, v := range result.Outputs {
		fmt.Println(v)
	}
	if dump {
		fmt.Println(result.Memory)
	}
	if result.Stats != nil {
		printStats(result.Stats)
	}
	return nil
}

func printStats(s *vm.ExecutionStats) {
	fmt.Fprintf(os.Stderr, "steps: %d, time: %dns, inputs: %d, outputs: %d\n",
		s.StepsExecuted, s.ExecutionTimeNs, s.InputsRead, s.OutputsWritten)
}

func compileCommand(args []string) error {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	output := fs.String("o", "", "output file (default: input with "+loader.ExtImage+" extension)")
	verbose := fs.Bool("v", false, "verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: intcode compile <file.asm> [-o output.icb]")
	}

	inputPath := fs.Arg(0)
	outputPath := *output

	if outputPath == "" {
		ext := filepath.Ext(inputPath)
		outputPath = strings.TrimSuffix(inputPath, ext) + loader.ExtImage
	}

	if *verbose {
		fmt.Printf("Compiling: %s -> %s\n", inputPath, outputPath)
	}

	source, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	var program vm.Program
	if strings.EqualFold(filepath.Ext(inputPath), loader.ExtAssembly) {
		program, err = compiler.Compile(string(source))
	} else {
		program, err = vm.Parse(string(source))
	}
	if err != nil {
		return fmt.Errorf("compiling: %w", err)
	}

	image, err := vm.SerializeProgram(program)
	if err != nil {
		return fmt.Errorf("serializing: %w", err)
	}

	if err := os.WriteFile(outputPath, image, 0644); err != nil {
		return fmt.Errorf("writing image: %w", err)
	}

	if *verbose {
		fmt.Printf("Compiled %d words\n", len(program))
		fmt.Printf("Output: %s (%d bytes)\n", outputPath, len(image))
	} else {
		fmt.Printf("Compiled: %s\n", outputPath)
	}

	return nil
}

func execCommand(args []string) error {
	fs := flag.NewFlagSet("exec", flag.ExitOnError)
	common := addCommonFlags(fs)
	input := fs.String("input", "", "scripted inputs, comma separated (default: read stdin)")
	dump := fs.Bool("dump", false, "print the final memory")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: intcode exec <file.icb>")
	}

	cfg, err := common.setup(fs)
	if err != nil {
		return err
	}

	path := fs.Arg(0)
	if *common.verbose {
		fmt.Printf("Executing image: %s\n", path)
	}

	image, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}

	program, err := vm.DeserializeProgram(image)
	if err != nil {
		return fmt.Errorf("deserializing: %w", err)
	}

	if *common.verbose {
		fmt.Printf("Loaded %d words\n", len(program))
	}

	return execute(program, cfg, *input, nil, *dump)
}

func disasmCommand(args []string) error {
	fs := flag.NewFlagSet("disasm", flag.ExitOnError)
	output := fs.String("o", "", "output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: intcode disasm <program> [-o output.asm]")
	}

	program, err := loader.LoadProgram(fs.Arg(0))
	if err != nil {
		return err
	}

	asm := vm.Disassemble(program)

	if *output != "" {
		if err := os.WriteFile(*output, []byte(asm), 0644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		fmt.Printf("Disassembled to: %s\n", *output)
	} else {
		fmt.Print(asm)
	}

	return nil
}

func replCommand(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	common := addCommonFlags(fs)
	asmMode := fs.Bool("asm", false, "start in assembly mode (default: text mode)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.setup(fs)
	if err != nil {
		return err
	}

	r := repl.New()
	r.SetMaxSteps(cfg.Machine.MaxSteps)

	if *asmMode {
		r.SetMode(repl.ModeASM)
	}

	if fs.NArg() > 0 {
		p, err := loader.LoadProgram(fs.Arg(0))
		if err != nil {
			return err
		}
		r.SetProgram(p)
	}

	r.Start(os.Stdin, os.Stdout)
	return nil
}

func printUsage() error {
	fmt.Println(`Intcode - toolchain for the Intcode virtual machine

Usage:
  intcode <command> [arguments]

Commands:
  run <program>               Execute a program (.txt, .asm or .icb)
  compile <program>           Compile text or assembly to an image (.icb)
  exec <file.icb>             Execute a compiled image
  disasm <program>            Disassemble a program
  sweep <program>             Search noun and verb for a target result
  batch <program> <cases>     Run a table of cases (.csv, .json, .parquet)
  solve <puzzle> <input>      Solve fuel, wires, passwords or orbits
  repl [program]              Start interactive REPL
  version                     Print version information
  help                        Show this help message

Common Options (run, exec, sweep, batch, repl):
  -config <file>              Config file (default: nearest intcode.toml)
  -v                          Verbose output
  -log <file>                 Log file (default: stderr)
  -max-steps <n>              Instruction limit per run, 0 for unlimited
  -stats                      Print execution statistics

Run and Exec Options:
  -input <list>               Scripted inputs (default: read stdin)
  -noun <n> -verb <n>         Replace the words at addresses 1 and 2 (run only)
  -dump                       Print the final memory

Compile and Disasm Options:
  -o <file>                   Output file

Sweep Options:
  -target <n>                 Result to search for at address 0
  -max-noun <n> -max-verb <n> Search bounds (default 99)
  -workers <n>                Parallel runs
  -grid                       Output every result as a table
  -format csv|json            Table format (default csv)

REPL Options:
  -asm                        Start in assembly mode (default: text mode)

Examples:
  intcode run -noun 12 -verb 2 -dump gravity.txt
  intcode run -input 5 diagnostics.txt
  intcode compile -o program.icb program.asm
  intcode exec program.icb
  intcode sweep -target 19690720 gravity.txt
  intcode batch diagnostics.txt cases.csv
  intcode solve passwords 278384-824795
  intcode repl -asm`)
	return nil
}
