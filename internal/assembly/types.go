package assembly

import (
	"fmt"

	"github.com/wnxd/dmd/metadata"
	"github.com/wnxd/dmd/metadata/typename"
)

// ExportedTypes returns the visible types defined here followed by the
// exported types that are not forwarders to another assembly.
func (asm *Assembly) ExportedTypes() []metadata.Type {
	var list []metadata.Type
	for _, typ := range asm.reader.Types() {
		if typ.IsVisible() {
			list = append(list, typ)
		}
	}
	for _, typ := range asm.reader.ExportedTypes() {
		if !IsTypeForwarder(typ) {
			list = append(list, typ)
		}
	}
	return list
}

// IsTypeForwarder reports whether the outermost declaring type of typ is
// scoped to a referenced assembly.
func IsTypeForwarder(typ metadata.Type) bool {
	nonNested := metadata.NonNestedType(typ)
	if nonNested == nil {
		return false
	}
	return nonNested.TypeScope().Kind == metadata.TypeScopeAssemblyRef
}

func (asm *Assembly) ReferencedAssemblies() []*metadata.AssemblyName {
	return asm.reader.ReferencedAssemblies()
}

// TypeByRef resolves a top-level type reference through the owning domain.
func (asm *Assembly) TypeByRef(ref metadata.TypeRef, ignoreCase bool) (metadata.Type, bool) {
	return asm.domain.TryLookup(asm, ref, ignoreCase)
}

// Type resolves a type name such as "Ns.Outer+Inner" or
// "Ns.Outer+Inner, Assembly, Version=1.0.0.0". A failed lookup returns
// false, or a *metadata.TypeNotFoundError when ThrowOnError is set.
func (asm *Assembly) Type(typeName string, options metadata.GetTypeOptions) (metadata.Type, bool, error) {
	if typeName == "" {
		return nil, false, fmt.Errorf("type name: %w", metadata.ErrArgumentInvalid)
	}
	resolver := typeDefResolver{
		assembly:   asm,
		ignoreCase: options.Has(metadata.GetTypeIgnoreCase),
	}
	typ, ok, err := typename.Parse(resolver, typeName)
	if ok {
		return typ, true, nil
	}
	asm.logger.Debug("type not resolved", "assembly", asm.ApproximateSimpleName(), "type", typeName, "err", err)
	if options.Has(metadata.GetTypeThrowOnError) {
		return nil, false, &metadata.TypeNotFoundError{TypeName: typeName, Err: err}
	}
	return nil, false, nil
}

type typeDefResolver struct {
	assembly   *Assembly
	ignoreCase bool
}

func (r typeDefResolver) TypeDef(assemblyName *metadata.AssemblyName, typeNames []string) (metadata.Type, bool) {
	if len(typeNames) == 0 {
		return nil, false
	}
	if assemblyName != nil && !metadata.AssemblyNameEqual(r.assembly.Name(), assemblyName) {
		return nil, false
	}
	module, ok := r.assembly.ManifestModule()
	if !ok {
		return nil, false
	}
	ns, name := metadata.SplitFullName(typeNames[0])
	typ, ok := r.assembly.TypeByRef(metadata.TypeRef{Module: module, Namespace: ns, Name: name}, r.ignoreCase)
	if !ok {
		return nil, false
	}
	flags := metadata.BindingPublic | metadata.BindingNonPublic
	if r.ignoreCase {
		flags |= metadata.BindingIgnoreCase
	}
	for _, nested := range typeNames[1:] {
		typ, ok = typ.NestedType(nested, flags)
		if !ok {
			return nil, false
		}
	}
	return typ, true
}
