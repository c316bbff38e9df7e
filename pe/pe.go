// Package pe derives the PE kind and machine of a managed image from its
// COFF, optional and CLI headers, for metadata readers answering PEKind.
package pe

import (
	dpe "debug/pe"
	"fmt"

	"github.com/wnxd/dmd/encoding"
	"github.com/wnxd/dmd/metadata"
)

const (
	optionalHeader32Magic = 0x010B
	optionalHeader64Magic = 0x020B
)

const (
	COMImageFlagsILOnly           uint32 = 0x00000001
	COMImageFlags32BitRequired    uint32 = 0x00000002
	COMImageFlagsILLibrary        uint32 = 0x00000004
	COMImageFlagsStrongNameSigned uint32 = 0x00000008
	COMImageFlagsNativeEntryPoint uint32 = 0x00000010
	COMImageFlagsTrackDebugData   uint32 = 0x00010000
	COMImageFlags32BitPreferred   uint32 = 0x00020000
)

// CLIHeader is IMAGE_COR20_HEADER.
type CLIHeader struct {
	Cb                      uint32
	MajorRuntimeVersion     uint16
	MinorRuntimeVersion     uint16
	MetaData                dpe.DataDirectory
	Flags                   uint32
	EntryPointToken         uint32
	Resources               dpe.DataDirectory
	StrongNameSignature     dpe.DataDirectory
	CodeManagerTable        dpe.DataDirectory
	VTableFixups            dpe.DataDirectory
	ExportAddressTableJumps dpe.DataDirectory
	ManagedNativeHeader     dpe.DataDirectory
}

func DecodeFileHeader(stream encoding.Stream) (dpe.FileHeader, error) {
	var fh dpe.FileHeader
	if err := encoding.Decode(stream, &fh); err != nil {
		return fh, fmt.Errorf("file header: %w", err)
	}
	return fh, nil
}

// DecodeOptionalHeaderMagic reads the first field of the optional header.
func DecodeOptionalHeaderMagic(stream encoding.Stream) (uint16, error) {
	var magic uint16
	if err := encoding.Decode(stream, &magic); err != nil {
		return 0, fmt.Errorf("optional header: %w", err)
	}
	if magic != optionalHeader32Magic && magic != optionalHeader64Magic {
		return 0, fmt.Errorf("optional header: bad magic %#04x", magic)
	}
	return magic, nil
}

func DecodeCLIHeader(stream encoding.Stream) (CLIHeader, error) {
	var cli CLIHeader
	if err := encoding.Decode(stream, &cli); err != nil {
		return cli, fmt.Errorf("cli header: %w", err)
	}
	return cli, nil
}

// Kind maps header facts to the kind and machine reported by
// Module.GetPEKind in the runtime.
func Kind(magic uint16, cli CLIHeader, machine uint16) (metadata.PEKind, metadata.ImageFileMachine) {
	var kind metadata.PEKind
	if cli.Flags&COMImageFlagsILOnly != 0 {
		kind |= metadata.ILOnly
	}
	if magic == optionalHeader64Magic {
		kind |= metadata.PE32Plus
	} else if cli.Flags&COMImageFlags32BitRequired != 0 {
		kind |= metadata.Required32Bit
	}
	if cli.Flags&COMImageFlags32BitPreferred != 0 {
		kind |= metadata.Preferred32Bit
	}
	if kind == 0 {
		kind = metadata.Unmanaged32Bit
	}
	return kind, metadata.ImageFileMachine(machine)
}

// ReadKind decodes the three headers from their streams and derives the kind.
func ReadKind(fileHeader, optionalHeader, cliHeader encoding.Stream) (metadata.PEKind, metadata.ImageFileMachine, error) {
	fh, err := DecodeFileHeader(fileHeader)
	if err != nil {
		return 0, 0, err
	}
	magic, err := DecodeOptionalHeaderMagic(optionalHeader)
	if err != nil {
		return 0, 0, err
	}
	cli, err := DecodeCLIHeader(cliHeader)
	if err != nil {
		return 0, 0, err
	}
	kind, machine := Kind(magic, cli, fh.Machine)
	return kind, machine, nil
}
