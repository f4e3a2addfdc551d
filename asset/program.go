package asset

import (
	"fmt"
	"io"
	"path/filepath"
)

// Opencl program source text.
type ProgramSource struct {
	// Where the source was loaded from.
	Path string

	Source string

	// Directory searched for #include directives. Empty for remote sources.
	IncludeDir string
}

// Load a program from a local file or a http/https URL.
func LoadProgram(pathToProgram string) (*ProgramSource, error) {
	res, err := NewResource(pathToProgram)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	data, err := io.ReadAll(res)
	if err != nil {
		return nil, fmt.Errorf("resource: could not read '%s': %s", res.Path(), err)
	}

	ps := &ProgramSource{
		Path:   res.Path(),
		Source: string(data),
	}

	if !res.IsRemote() {
		absPath, err := filepath.Abs(pathToProgram)
		if err != nil {
			return nil, err
		}
		ps.IncludeDir = filepath.Dir(absPath)
	}

	return ps, nil
}

// Get the compiler options for building this program.
func (ps *ProgramSource) BuildOptions() string {
	if ps.IncludeDir == "" {
		return ""
	}
	return fmt.Sprintf("-I %s", ps.IncludeDir)
}
