// Package loader reads Intcode programs and batch case tables from disk.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/akhildatla/intcode/pkg/compiler"
	"github.com/akhildatla/intcode/pkg/vm"
)

// File extensions recognised by LoadProgram.
const (
	ExtAssembly = ".asm"
	ExtImage    = ".icb"
)

// LoadProgram reads a program file. Assembly (.asm) is assembled, compiled
// images (.icb) are decoded, and anything else is parsed as comma-separated
// program text.
func LoadProgram(path string) (vm.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ExtAssembly:
		p, err := compiler.Compile(string(data))
		if err != nil {
			return nil, fmt.Errorf("assembling %s: %w", path, err)
		}
		return p, nil
	case ExtImage:
		p, err := vm.DeserializeProgram(data)
		if err != nil {
			return nil, fmt.Errorf("reading image %s: %w", path, err)
		}
		return p, nil
	default:
		p, err := vm.Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return p, nil
	}
}

// LoadTable reads a case table, choosing the format by file extension.
func LoadTable(path string) (*dataframe.DataFrame, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return LoadCSV(path)
	case ".json":
		return LoadJSON(path)
	case ".parquet":
		return LoadParquet(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
