package assembly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/wnxd/dmd/metadata"
)

func TestProcessorArchitecture(t *testing.T) {
	const (
		pe32Plus = metadata.PE32Plus
		req32    = metadata.Required32Bit
		ilOnly   = metadata.ILOnly
	)
	tests := []struct {
		name    string
		kind    metadata.PEKind
		machine metadata.ImageFileMachine
		want    metadata.AssemblyNameFlags
	}{
		{"x86 required32", req32, metadata.MachineI386, metadata.PA_x86},
		{"x86 required32 ilonly", req32 | ilOnly, metadata.MachineI386, metadata.PA_x86},
		{"x86 ilonly", ilOnly, metadata.MachineI386, metadata.PA_MSIL},
		{"x86 native", 0, metadata.MachineI386, metadata.PA_x86},
		{"arm", 0, metadata.MachineARM, metadata.PA_ARM},
		{"arm ilonly", ilOnly, metadata.MachineARM, metadata.PA_ARM},
		{"pe32 amd64", ilOnly, metadata.MachineAMD64, metadata.PA_None},
		{"pe32 ia64", 0, metadata.MachineIA64, metadata.PA_None},
		{"pe32+ x86 ilonly", pe32Plus | ilOnly, metadata.MachineI386, metadata.PA_MSIL},
		{"pe32+ x86 native", pe32Plus, metadata.MachineI386, metadata.PA_None},
		{"pe32+ x86 required32", pe32Plus | req32, metadata.MachineI386, metadata.PA_None},
		{"pe32+ amd64", pe32Plus, metadata.MachineAMD64, metadata.PA_AMD64},
		{"pe32+ amd64 ilonly", pe32Plus | ilOnly, metadata.MachineAMD64, metadata.PA_AMD64},
		{"pe32+ ia64", pe32Plus, metadata.MachineIA64, metadata.PA_IA64},
		{"pe32+ arm", pe32Plus, metadata.MachineARM, metadata.PA_None},
		{"unknown", ilOnly, 0x5032, metadata.PA_None},
		{"pe32+ unknown", pe32Plus | ilOnly, 0xAA64, metadata.PA_None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProcessorArchitecture(tt.kind, tt.machine))
		})
	}
}

func TestName(t *testing.T) {
	reader := newReader("Foo")
	reader.name.Flags = metadata.PA_x86 | metadata.PA_Specified
	reader.kind = metadata.PE32Plus
	reader.machine = metadata.MachineAMD64
	asm := newAssembly(t, &fakeDomain{}, reader, `C:\app\Foo.dll`)

	name := asm.Name()
	assert.Equal(t, "Foo", name.Name)
	assert.True(t, name.Flags.Has(metadata.AssemblyNamePublicKey))
	assert.Equal(t, metadata.PA_AMD64, name.ProcessorArchitecture())
	assert.False(t, name.Flags.Has(metadata.PA_Specified))
	assert.NotNil(t, name.PublicKeyToken)
	assert.Empty(t, name.PublicKeyToken)
	assert.Equal(t, "Foo, Version=1.0.0.0, Culture=neutral, PublicKeyToken=null", asm.FullName())

	// the reader's value is left alone
	assert.Equal(t, metadata.PA_x86|metadata.PA_Specified, reader.name.Flags)
	assert.Nil(t, reader.name.PublicKeyToken)
}

func TestNameCopies(t *testing.T) {
	reader := newReader("Foo")
	reader.name.PublicKeyToken = []byte{1, 2, 3}
	asm := newAssembly(t, &fakeDomain{}, reader, "Foo.dll")

	first := asm.Name()
	first.Name = "Evil"
	first.Version.Major = 9
	first.PublicKeyToken[0] = 0xff

	second := asm.Name()
	assert.Equal(t, "Foo", second.Name)
	assert.Equal(t, uint16(1), second.Version.Major)
	assert.Equal(t, []byte{1, 2, 3}, second.PublicKeyToken)
	assert.NotSame(t, first, second)
	assert.Equal(t, int32(1), reader.nameCalls.Load())
}

func TestNameOldStreamVersion(t *testing.T) {
	reader := newReader("Foo")
	reader.streamVersion = 0x00000100
	reader.name.Flags = metadata.PA_x86
	reader.machine = metadata.MachineAMD64
	reader.kind = metadata.PE32Plus
	asm := newAssembly(t, &fakeDomain{}, reader, "Foo.dll")
	assert.Equal(t, metadata.PA_x86, asm.Name().ProcessorArchitecture())
}

func TestNameNoPlatform(t *testing.T) {
	reader := newReader("Foo")
	reader.name.Flags = metadata.PA_NoPlatform
	reader.kind = metadata.PE32Plus
	reader.machine = metadata.MachineAMD64
	asm := newAssembly(t, &fakeDomain{}, reader, "Foo.dll")
	assert.Equal(t, metadata.PA_None, asm.Name().ProcessorArchitecture())
}

func TestNameNilFromReader(t *testing.T) {
	reader := newReader("")
	reader.name = nil
	asm := newAssembly(t, &fakeDomain{}, reader, "")
	name := asm.Name()
	require.NotNil(t, name)
	assert.True(t, name.Flags.Has(metadata.AssemblyNamePublicKey))
}

func TestNameConcurrent(t *testing.T) {
	reader := newReader("Foo")
	asm := newAssembly(t, &fakeDomain{}, reader, "Foo.dll")
	names := make([]*metadata.AssemblyName, 32)
	var g errgroup.Group
	for i := range names {
		g.Go(func() error {
			names[i] = asm.Name()
			return nil
		})
	}
	require.NoError(t, g.Wait())
	for _, name := range names {
		assert.Equal(t, names[0], name)
	}
	assert.GreaterOrEqual(t, reader.nameCalls.Load(), int32(1))
}
