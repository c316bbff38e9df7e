package metadata

import "debug/pe"

type PEKind uint32

const (
	ILOnly         PEKind = 0x0001
	Required32Bit  PEKind = 0x0002
	PE32Plus       PEKind = 0x0004
	Unmanaged32Bit PEKind = 0x0008
	Preferred32Bit PEKind = 0x0010
)

type ImageFileMachine uint16

const (
	MachineI386  ImageFileMachine = pe.IMAGE_FILE_MACHINE_I386
	MachineIA64  ImageFileMachine = pe.IMAGE_FILE_MACHINE_IA64
	MachineAMD64 ImageFileMachine = pe.IMAGE_FILE_MACHINE_AMD64
	MachineARM   ImageFileMachine = pe.IMAGE_FILE_MACHINE_ARMNT
)

func (k PEKind) Has(flag PEKind) bool {
	return hasFlag(k, flag)
}
