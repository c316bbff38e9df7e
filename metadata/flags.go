package metadata

import "golang.org/x/exp/constraints"

type AssemblyNameFlags uint32

const (
	AssemblyNameNone                      AssemblyNameFlags = 0x0000
	AssemblyNamePublicKey                 AssemblyNameFlags = 0x0001
	AssemblyNameRetargetable              AssemblyNameFlags = 0x0100
	AssemblyNameEnableJITcompileOptimizer AssemblyNameFlags = 0x4000
	AssemblyNameEnableJITcompileTracking  AssemblyNameFlags = 0x8000

	PA_None       AssemblyNameFlags = 0x0000
	PA_MSIL       AssemblyNameFlags = 0x0010
	PA_x86        AssemblyNameFlags = 0x0020
	PA_IA64       AssemblyNameFlags = 0x0030
	PA_AMD64      AssemblyNameFlags = 0x0040
	PA_ARM        AssemblyNameFlags = 0x0050
	PA_NoPlatform AssemblyNameFlags = 0x0070
	PA_Specified  AssemblyNameFlags = 0x0080
	PA_Mask       AssemblyNameFlags = 0x0070
	PA_FullMask   AssemblyNameFlags = 0x00F0

	ContentTypeDefault        AssemblyNameFlags = 0x0000
	ContentTypeWindowsRuntime AssemblyNameFlags = 0x0200
	ContentTypeMask           AssemblyNameFlags = 0x0E00
)

func (f AssemblyNameFlags) Has(flag AssemblyNameFlags) bool {
	return hasFlag(f, flag)
}

// ProcessorArchitecture returns the PA sub-field without the specified bit.
func (f AssemblyNameFlags) ProcessorArchitecture() AssemblyNameFlags {
	return f & PA_Mask
}

func (f AssemblyNameFlags) WithProcessorArchitecture(pa AssemblyNameFlags) AssemblyNameFlags {
	return f&^PA_FullMask | pa&PA_FullMask
}

type AssemblyHashAlgorithm uint32

const (
	HashNone   AssemblyHashAlgorithm = 0x0000
	HashMD5    AssemblyHashAlgorithm = 0x8003
	HashSHA1   AssemblyHashAlgorithm = 0x8004
	HashSHA256 AssemblyHashAlgorithm = 0x800C
	HashSHA384 AssemblyHashAlgorithm = 0x800D
	HashSHA512 AssemblyHashAlgorithm = 0x800E
)

type BindingFlags uint32

const (
	BindingDefault    BindingFlags = 0x00
	BindingIgnoreCase BindingFlags = 0x01
	BindingPublic     BindingFlags = 0x10
	BindingNonPublic  BindingFlags = 0x20
)

func (f BindingFlags) Has(flag BindingFlags) bool {
	return hasFlag(f, flag)
}

type GetTypeOptions uint32

const (
	GetTypeNone         GetTypeOptions = 0x0
	GetTypeThrowOnError GetTypeOptions = 0x1
	GetTypeIgnoreCase   GetTypeOptions = 0x2
)

func (o GetTypeOptions) Has(flag GetTypeOptions) bool {
	return hasFlag(o, flag)
}

func hasFlag[F constraints.Unsigned](v, flag F) bool {
	return v&flag == flag && flag != 0
}
