// Package assembly builds the in-memory model of a loaded assembly that a
// debugger queries for identity, modules and types.
package assembly

import (
	"github.com/wnxd/dmd/internal/assembly"
	"github.com/wnxd/dmd/metadata"
)

type Assembly interface {
	metadata.Assembly
	Add(module metadata.Module) error
	Remove(module metadata.Module) error
	ApproximateSimpleName() string
	TypeByRef(ref metadata.TypeRef, ignoreCase bool) (metadata.Type, bool)
}

type (
	Config = assembly.Config
	Option = assembly.Option
)

var (
	DefaultConfig = assembly.DefaultConfig
	WithInMemory  = assembly.WithInMemory
	WithDynamic   = assembly.WithDynamic
	WithStrict    = assembly.WithStrict
	WithLogger    = assembly.WithLogger
)

// New creates the model for the assembly read by reader and owned by domain.
// location is empty for assemblies without a backing file.
func New(domain metadata.Domain, reader metadata.Reader, location string, opts ...Option) (Assembly, error) {
	asm, err := assembly.New(domain, reader, location, opts...)
	if err != nil {
		return nil, err
	}
	return asm, nil
}

// ProcessorArchitecture derives the processor architecture name flag from PE
// header facts.
func ProcessorArchitecture(kind metadata.PEKind, machine metadata.ImageFileMachine) metadata.AssemblyNameFlags {
	return assembly.ProcessorArchitecture(kind, machine)
}

func IsTypeForwarder(typ metadata.Type) bool {
	return assembly.IsTypeForwarder(typ)
}
