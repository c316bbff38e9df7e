package assembly

import (
	"io"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/wnxd/dmd/metadata"
)

type fakeModule struct {
	name string
}

func (m *fakeModule) ScopeName() string { return m.name }

type fakeType struct {
	namespace string
	name      string
	decl      *fakeType
	scope     metadata.TypeScope
	visible   bool
	nested    []*fakeType
}

func newType(namespace, name string) *fakeType {
	return &fakeType{namespace: namespace, name: name, visible: true, scope: metadata.TypeScope{Kind: metadata.TypeScopeModule}}
}

func (t *fakeType) nest(name string) *fakeType {
	n := &fakeType{name: name, decl: t, visible: true, scope: t.scope}
	t.nested = append(t.nested, n)
	return n
}

func (t *fakeType) Namespace() string { return t.namespace }
func (t *fakeType) Name() string      { return t.name }

func (t *fakeType) FullName() string {
	if t.decl != nil {
		return t.decl.FullName() + "+" + t.name
	} else if t.namespace == "" {
		return t.name
	}
	return t.namespace + "." + t.name
}

func (t *fakeType) DeclaringType() metadata.Type {
	if t.decl == nil {
		return nil
	}
	return t.decl
}

func (t *fakeType) TypeScope() metadata.TypeScope { return t.scope }
func (t *fakeType) IsVisible() bool               { return t.visible }

func (t *fakeType) NestedType(name string, flags metadata.BindingFlags) (metadata.Type, bool) {
	for _, n := range t.nested {
		if n.name == name || flags.Has(metadata.BindingIgnoreCase) && strings.EqualFold(n.name, name) {
			return n, true
		}
	}
	return nil, false
}

type fakeDomain struct {
	types   []*fakeType
	lookups atomic.Int32
}

func (d *fakeDomain) TryLookup(asm metadata.Assembly, ref metadata.TypeRef, ignoreCase bool) (metadata.Type, bool) {
	d.lookups.Add(1)
	if ref.Module == nil {
		return nil, false
	}
	eq := func(a, b string) bool {
		if ignoreCase {
			return strings.EqualFold(a, b)
		}
		return a == b
	}
	for _, t := range d.types {
		if eq(t.namespace, ref.Namespace) && eq(t.name, ref.Name) {
			return t, true
		}
	}
	return nil, false
}

type fakeReader struct {
	name          *metadata.AssemblyName
	kind          metadata.PEKind
	machine       metadata.ImageFileMachine
	streamVersion uint32
	types         []metadata.Type
	exported      []metadata.Type
	refs          []*metadata.AssemblyName
	attributes    []metadata.CustomAttributeData
	entryPoint    metadata.Method

	nameCalls      atomic.Int32
	attributeCalls atomic.Int32
}

func newReader(name string) *fakeReader {
	return &fakeReader{
		name:          &metadata.AssemblyName{Name: name, Version: &metadata.Version{Major: 1}},
		kind:          metadata.ILOnly,
		machine:       metadata.MachineI386,
		streamVersion: 0x00020000,
	}
}

func (r *fakeReader) Name() *metadata.AssemblyName {
	r.nameCalls.Add(1)
	return r.name
}

func (r *fakeReader) PEKind() (metadata.PEKind, metadata.ImageFileMachine) { return r.kind, r.machine }
func (r *fakeReader) MetadataStreamVersion() uint32                        { return r.streamVersion }
func (r *fakeReader) Types() []metadata.Type                               { return r.types }
func (r *fakeReader) ExportedTypes() []metadata.Type                       { return r.exported }
func (r *fakeReader) ReferencedAssemblies() []*metadata.AssemblyName       { return r.refs }
func (r *fakeReader) EntryPoint() metadata.Method                          { return r.entryPoint }
func (r *fakeReader) ImageRuntimeVersion() string                          { return "v4.0.30319" }

func (r *fakeReader) ReadCustomAttributes(token uint32) []metadata.CustomAttributeData {
	r.attributeCalls.Add(1)
	if token != metadata.AssemblyToken {
		return nil
	}
	return r.attributes
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func newAssembly(t interface{ Fatalf(string, ...any) }, domain metadata.Domain, reader metadata.Reader, location string, opts ...Option) *Assembly {
	asm, err := New(domain, reader, location, append([]Option{WithLogger(discardLogger())}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return asm
}
