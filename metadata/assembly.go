package metadata

type Module interface {
	ScopeName() string
}

type Method interface {
	Name() string
	DeclaringType() Type
}

// Domain is the owner of loaded assemblies; it resolves type references.
type Domain interface {
	TryLookup(assembly Assembly, ref TypeRef, ignoreCase bool) (Type, bool)
}

// Reader supplies raw facts parsed from an assembly's metadata tables.
type Reader interface {
	Name() *AssemblyName
	PEKind() (PEKind, ImageFileMachine)
	MetadataStreamVersion() uint32
	Types() []Type
	ExportedTypes() []Type
	ReferencedAssemblies() []*AssemblyName
	ReadCustomAttributes(token uint32) []CustomAttributeData
	EntryPoint() Method
	ImageRuntimeVersion() string
}

type Assembly interface {
	Domain() Domain
	Location() string
	IsInMemory() bool
	IsDynamic() bool
	ImageRuntimeVersion() string
	EntryPoint() (Method, bool)
	Name() *AssemblyName
	FullName() string
	ManifestModule() (Module, bool)
	Modules() []Module
	LoadedModules() []Module
	Module(name string) (Module, bool)
	ExportedTypes() []Type
	ReferencedAssemblies() []*AssemblyName
	Type(typeName string, options GetTypeOptions) (Type, bool, error)
	CustomAttributesData() []CustomAttributeData
}
