package metadata

import "github.com/modern-go/reflect2"

type TypeScopeKind int

const (
	TypeScopeInvalid TypeScopeKind = iota
	TypeScopeModule
	TypeScopeModuleRef
	TypeScopeAssemblyRef
)

func (k TypeScopeKind) String() string {
	switch k {
	case TypeScopeModule:
		return "Module"
	case TypeScopeModuleRef:
		return "ModuleRef"
	case TypeScopeAssemblyRef:
		return "AssemblyRef"
	default:
		return "Invalid"
	}
}

type TypeScope struct {
	Kind         TypeScopeKind
	Module       Module
	ModuleName   string
	AssemblyName *AssemblyName
}

type Type interface {
	Namespace() string
	Name() string
	FullName() string
	// DeclaringType returns the enclosing type, or nil for a top-level type.
	// A typed nil pointer is treated as nil too.
	DeclaringType() Type
	TypeScope() TypeScope
	IsVisible() bool
	NestedType(name string, flags BindingFlags) (Type, bool)
}

// TypeRef names a top-level type to be looked up in a module.
type TypeRef struct {
	Module    Module
	Namespace string
	Name      string
}

// NonNestedType walks the declaring type chain up to the outermost type.
func NonNestedType(typ Type) Type {
	if isNil(typ) {
		return nil
	}
	for {
		decl := typ.DeclaringType()
		if isNil(decl) {
			return typ
		}
		typ = decl
	}
}

func isNil(typ Type) bool {
	return typ == nil || reflect2.IsNil(typ)
}

// SplitFullName splits "A.B.C" into namespace "A.B" and name "C". A dot
// escaped with a backslash (`A.B\.C`) is part of the name, not a separator;
// escapes are removed from both results.
func SplitFullName(fullName string) (namespace, name string) {
	split := -1
	for i := 0; i < len(fullName); i++ {
		switch fullName[i] {
		case '\\':
			i++
		case '.':
			split = i
		}
	}
	if split < 0 {
		return "", unescapeName(fullName)
	}
	return unescapeName(fullName[:split]), unescapeName(fullName[split+1:])
}

func unescapeName(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b = append(b, s[i])
	}
	return string(b)
}
