package shader

import (
	"errors"
	"fmt"

	"github.com/gogpu/naga"
)

// CompileError reports a WGSL source that failed to compile.
type CompileError struct {
	// Label names the shader variant.
	Label string
	Err   error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader: compile %s: %v", e.Label, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Compile compiles WGSL source to SPIR-V words.
// Failures are returned as *CompileError.
func Compile(label, wgslSource string) ([]uint32, error) {
	if wgslSource == "" {
		return nil, &CompileError{Label: label, Err: errors.New("empty source")}
	}

	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, &CompileError{Label: label, Err: err}
	}
	if len(spirvBytes)%4 != 0 {
		return nil, &CompileError{Label: label, Err: fmt.Errorf("SPIR-V size %d is not word aligned", len(spirvBytes))}
	}

	// SPIR-V is little-endian 32-bit words
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	return spirvCode, nil
}
