package assembly

import (
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/wnxd/dmd/metadata"
)

// Metadata stream versions before 1.0 carry no usable PE kind.
const minPEKindStreamVersion = 0x00010000

type nameResolver struct {
	reader metadata.Reader
	logger *log.Logger
	name   atomic.Pointer[metadata.AssemblyName]
}

func (nr *nameResolver) ctor(reader metadata.Reader, logger *log.Logger) {
	nr.reader = reader
	nr.logger = logger
}

// Name returns a copy of the assembly name. The first call computes it; racing
// first callers may each compute it, and the first store wins. The result is a
// pure function of the reader's facts, so the losers' work is discarded.
func (nr *nameResolver) Name() *metadata.AssemblyName {
	if name := nr.name.Load(); name != nil {
		return name.Clone()
	}
	name := nr.computeName()
	if !nr.name.CompareAndSwap(nil, name) {
		name = nr.name.Load()
	}
	return name.Clone()
}

func (nr *nameResolver) FullName() string {
	return nr.Name().String()
}

func (nr *nameResolver) computeName() *metadata.AssemblyName {
	name := nr.reader.Name().Clone()
	if name == nil {
		name = new(metadata.AssemblyName)
	}
	name.Flags |= metadata.AssemblyNamePublicKey
	if name.PublicKeyToken == nil && len(name.PublicKey) == 0 {
		// the assembly's own identity is complete: no key means unsigned
		name.PublicKeyToken = []byte{}
	}
	if nr.reader.MetadataStreamVersion() >= minPEKindStreamVersion {
		kind, machine := nr.reader.PEKind()
		if name.Flags&metadata.PA_FullMask == metadata.PA_NoPlatform {
			name.Flags = name.Flags.WithProcessorArchitecture(metadata.PA_None)
		} else {
			name.Flags = name.Flags.WithProcessorArchitecture(ProcessorArchitecture(kind, machine))
		}
	}
	nr.logger.Debug("assembly name computed", "name", name)
	return name
}

// ProcessorArchitecture derives the PA flag of an assembly name from its PE
// header kind and machine.
func ProcessorArchitecture(kind metadata.PEKind, machine metadata.ImageFileMachine) metadata.AssemblyNameFlags {
	if !kind.Has(metadata.PE32Plus) {
		switch machine {
		case metadata.MachineI386:
			if kind.Has(metadata.Required32Bit) {
				return metadata.PA_x86
			} else if kind.Has(metadata.ILOnly) {
				return metadata.PA_MSIL
			}
			return metadata.PA_x86
		case metadata.MachineARM:
			return metadata.PA_ARM
		}
	} else {
		switch machine {
		case metadata.MachineI386:
			if kind.Has(metadata.ILOnly) {
				return metadata.PA_MSIL
			}
		case metadata.MachineAMD64:
			return metadata.PA_AMD64
		case metadata.MachineIA64:
			return metadata.PA_IA64
		}
	}
	return metadata.PA_None
}
