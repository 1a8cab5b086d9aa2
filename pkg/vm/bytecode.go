package vm

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Compiled image format: a CBOR map
//
//	{1: magic "ICBC", 2: version, 3: memory words}
//
// encoded in canonical mode so equal programs produce equal bytes.

const (
	ImageMagic   = "ICBC"
	ImageVersion = 1
)

var (
	ErrInvalidMagic   = errors.New("invalid image magic")
	ErrInvalidVersion = errors.New("unsupported image version")
)

type image struct {
	Magic   string  `cbor:"1,keyasint"`
	Version uint16  `cbor:"2,keyasint"`
	Memory  []int64 `cbor:"3,keyasint"`
}

var imageEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("vm: failed to create CBOR enc mode: %v", err))
	}
	imageEncMode = em
}

// SerializeProgram encodes a Program as a compiled image.
func SerializeProgram(p Program) ([]byte, error) {
	data, err := imageEncMode.Marshal(image{Magic: ImageMagic, Version: ImageVersion, Memory: p})
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return data, nil
}

// DeserializeProgram decodes a compiled image.
func DeserializeProgram(data []byte) (Program, error) {
	var img image
	if err := cbor.Unmarshal(data, &img); err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	if img.Magic != ImageMagic {
		return nil, ErrInvalidMagic
	}
	if img.Version != ImageVersion {
		return nil, ErrInvalidVersion
	}
	if img.Memory == nil {
		return Program{}, nil
	}
	return Program(img.Memory), nil
}

// Disassemble renders a Program as assembly source that the compiler
// package reassembles to the same words. Words that do not decode to a
// complete instruction are emitted as DATA.
func Disassemble(p Program) string {
	var buf bytes.Buffer

	buf.WriteString("; Disassembled from Intcode\n")
	buf.WriteString(fmt.Sprintf("; %d words\n\n", len(p)))

	for addr := 0; addr < len(p); {
		inst, ok := disassembleAt(p, addr)
		if !ok {
			buf.WriteString(fmt.Sprintf("%-24s ; %04d\n", fmt.Sprintf("DATA %d", p[addr]), addr))
			addr++
			continue
		}
		buf.WriteString(fmt.Sprintf("%-24s ; %04d\n", inst.String(), addr))
		addr += 1 + len(inst.Params)
	}

	return buf.String()
}

func disassembleAt(p Program, addr int) (Instruction, bool) {
	word := p[addr]
	op, modes, err := DecodeWord(word)
	if err != nil {
		return Instruction{}, false
	}
	n, _ := op.Params()
	if addr+n >= len(p) {
		return Instruction{}, false
	}
	// Only words the assembler would produce, so the listing round-trips.
	if EncodeWord(op, modes[:n]...) != word {
		return Instruction{}, false
	}
	if op.Writes() && modes[n-1] != ModePosition {
		return Instruction{}, false
	}
	return Instruction{
		Addr:   addr,
		Word:   word,
		Op:     op,
		Modes:  modes,
		Params: append([]int64(nil), p[addr+1:addr+1+n]...),
	}, true
}
