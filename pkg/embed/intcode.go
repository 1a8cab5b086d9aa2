// Package embed provides the Go embedding API for Intcode.
//
// Pass a program, get its final memory and outputs.
//
// Basic usage:
//
//	result, err := embed.Execute("1,9,10,3,2,3,11,0,99,30,40,50")
//	// result.Memory[0] == 3500
//
// With inputs:
//
//	result, err := embed.Execute("3,9,8,9,10,9,4,9,99,-1,8", embed.WithInputs(8))
//	// result.Outputs == []int64{1}
package embed

import (
	"github.com/akhildatla/intcode/pkg/loader"
	"github.com/akhildatla/intcode/pkg/vm"
)

// Options configures execution behavior.
type Options struct {
	// Inputs are served to the input instruction in order.
	Inputs []int64

	// Noun and Verb replace the words at addresses 1 and 2 when SetNounVerb
	// is true.
	Noun, Verb  int64
	SetNounVerb bool

	// MaxSteps limits the number of instructions executed.
	// Zero means unlimited.
	MaxSteps int64

	// IO replaces the scripted channel built from Inputs. Outputs written
	// to it are not captured in Result.
	IO vm.IO

	// Stats enables execution statistics.
	Stats bool
}

// Option is a functional option for configuring execution.
type Option func(*Options)

// WithInputs sets the values served to the input instruction.
func WithInputs(inputs ...int64) Option {
	return func(o *Options) {
		o.Inputs = inputs
	}
}

// WithNounVerb replaces the program's noun and verb before running.
func WithNounVerb(noun, verb int64) Option {
	return func(o *Options) {
		o.Noun, o.Verb = noun, verb
		o.SetNounVerb = true
	}
}

// WithMaxSteps sets the instruction limit.
func WithMaxSteps(n int64) Option {
	return func(o *Options) {
		o.MaxSteps = n
	}
}

// WithIO sets a custom I/O channel.
func WithIO(io vm.IO) Option {
	return func(o *Options) {
		o.IO = io
	}
}

// WithStats enables execution statistics in the Result.
func WithStats() Option {
	return func(o *Options) {
		o.Stats = true
	}
}

// Result is the outcome of a successful run.
type Result struct {
	Memory  vm.Program         // final memory image
	Outputs []int64            // values written by the output instruction
	Stats   *vm.ExecutionStats // nil unless WithStats was given
}

// Execute parses comma-separated program text and runs it.
func Execute(program string, opts ...Option) (*Result, error) {
	p, err := vm.Parse(program)
	if err != nil {
		return nil, err
	}
	return ExecuteProgram(p, opts...)
}

// ExecuteFile loads a program file (text, .asm or .icb) and runs it.
func ExecuteFile(path string, opts ...Option) (*Result, error) {
	p, err := loader.LoadProgram(path)
	if err != nil {
		return nil, err
	}
	return ExecuteProgram(p, opts...)
}

// ExecuteProgram runs an already parsed program.
func ExecuteProgram(p vm.Program, opts ...Option) (*Result, error) {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	machine := vm.NewMachine(p)
	if options.SetNounVerb {
		if err := machine.SetNounVerb(options.Noun, options.Verb); err != nil {
			return nil, err
		}
	}
	machine.SetMaxSteps(options.MaxSteps)
	if options.Stats {
		machine.EnableStats()
	}

	var scripted *vm.ScriptedIO
	if options.IO != nil {
		machine.SetIO(options.IO)
	} else {
		scripted = vm.NewScriptedIO(options.Inputs...)
		machine.SetIO(scripted)
	}

	mem, err := machine.Execute()
	if err != nil {
		return nil, err
	}

	result := &Result{Memory: mem, Stats: machine.Stats()}
	if scripted != nil {
		result.Outputs = scripted.Outputs
	}
	return result, nil
}
